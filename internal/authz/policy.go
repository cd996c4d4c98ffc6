// Package authz holds the pure authorization policy consulted before every
// mutation. Rules key on the acting identity versus ownership of the target;
// they never touch the store.
package authz

// Actor is the authenticated identity resolved from the session token.
type Actor struct {
	UserID     uint
	EmployeeID uint
}

// Action enumerates the guarded operations.
type Action string

const (
	ActionUpdateProject    Action = "project:update"
	ActionDeleteProject    Action = "project:delete"
	ActionManageMilestones Action = "milestone:manage"
	ActionManageMembers    Action = "member:manage"
	ActionCreateTask       Action = "task:create"
	ActionUpdateTask       Action = "task:update"
	ActionDeleteTask       Action = "task:delete"
	ActionUpdateEmployee   Action = "employee:update"
	ActionViewListings     Action = "listing:view"
)

// Target carries the ownership facts a rule may consult. Zero values mean
// the fact is not applicable to the action.
type Target struct {
	// ProjectOwnerID is the owning employee of the project the action touches
	// (for tasks, the owner of the task's project).
	ProjectOwnerID uint
	// EmployeeUserID is the user owning the employee profile the action touches.
	EmployeeUserID uint
}

// Can reports whether the actor may perform the action on the target.
//
// Task create/update deliberately require only authentication, not project
// ownership or membership; task delete is owner-only. The asymmetry matches
// current product behavior.
func Can(actor Actor, action Action, target Target) bool {
	authenticated := actor.UserID != 0

	switch action {
	case ActionUpdateProject, ActionDeleteProject, ActionManageMilestones, ActionManageMembers, ActionDeleteTask:
		return actor.EmployeeID != 0 && actor.EmployeeID == target.ProjectOwnerID
	case ActionCreateTask, ActionUpdateTask, ActionViewListings:
		return authenticated
	case ActionUpdateEmployee:
		return authenticated && actor.UserID == target.EmployeeUserID
	}
	return false
}
