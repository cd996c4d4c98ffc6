package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// MilestoneRepository defines milestone persistence operations.
type MilestoneRepository interface {
	Create(ctx context.Context, milestone *model.Milestone) error
	FindByID(ctx context.Context, id uint) (*model.Milestone, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Milestone, error)
	Update(ctx context.Context, milestone *model.Milestone) error
	Delete(ctx context.Context, id uint) error
}

type milestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository builds a GORM-backed repository.
func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) Create(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

func (r *milestoneRepository) FindByID(ctx context.Context, id uint) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := r.db.WithContext(ctx).First(&milestone, id).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *milestoneRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("due_date asc").
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *milestoneRepository) Update(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Save(milestone).Error
}

func (r *milestoneRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Milestone{}, id).Error
}
