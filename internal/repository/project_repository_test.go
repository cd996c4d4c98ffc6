package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemberRows_StampsFreshJoinedAt(t *testing.T) {
	// Member replacement deletes all rows and rebuilds them through memberRows,
	// so every row — including one for a member that was already on the team —
	// carries the replacement time, not the original join time.
	originalJoin := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	replacedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	rows := memberRows(1, []uint{20, 30}, replacedAt)

	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, uint(1), row.ProjectID)
		assert.Equal(t, replacedAt, row.JoinedAt)
		assert.NotEqual(t, originalJoin, row.JoinedAt)
	}
	assert.Equal(t, uint(20), rows[0].EmployeeID)
	assert.Equal(t, uint(30), rows[1].EmployeeID)
}

func TestMemberRows_EmptyMemberList(t *testing.T) {
	assert.Empty(t, memberRows(1, nil, time.Now()))
	assert.Empty(t, memberRows(1, []uint{}, time.Now()))
}
