package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/truest-construction/site-backend/errs"
	"github.com/truest-construction/site-backend/models"
	"gorm.io/gorm"
)

type ContactSubmissionRepo struct {
	db *gorm.DB
}

func NewContactSubmissionRepo(db *gorm.DB) *ContactSubmissionRepo {
	return &ContactSubmissionRepo{db}
}

// FindAll returns submissions newest first, optionally only those in one status
func (r *ContactSubmissionRepo) FindAll(ctx context.Context, status models.ContactStatus) ([]*models.ContactSubmission, error) {
	var submissions []*models.ContactSubmission
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&submissions).Error
	return submissions, err
}

// CountByStatus returns how many submissions sit in each status
func (r *ContactSubmissionRepo) CountByStatus(ctx context.Context) (map[models.ContactStatus]int64, error) {
	var rows []struct {
		Status models.ContactStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.ContactSubmission{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ContactStatus]int64, len(models.ContactStatuses))
	for _, status := range models.ContactStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FindByID returns a submission by its ID, or nil if there is none
func (r *ContactSubmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// Add stores a new submission; its status always starts as new
func (r *ContactSubmissionRepo) Add(ctx context.Context, submission *models.ContactSubmission) error {
	submission.Status = models.ContactStatusNew
	return r.db.WithContext(ctx).Create(submission).Error
}

// UpdateStatus moves a submission to status if the lifecycle allows it.
// Returns nil if there is no such submission and an invalid-transition error if the move is not allowed.
func (r *ContactSubmissionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContactStatus) (*models.ContactSubmission, error) {
	submission, err := r.FindByID(ctx, id)
	if err != nil || submission == nil {
		return nil, err
	}

	if !submission.Status.CanTransitionTo(status) {
		return nil, errs.NewInvalidTransitionError("contact submission", string(submission.Status), string(status))
	}
	if submission.Status == status {
		return submission, nil
	}

	err = r.db.WithContext(ctx).Model(submission).Update("status", status).Error
	if err != nil {
		return nil, err
	}
	return submission, nil
}

// Delete removes a submission by id and reports whether a row was removed
func (r *ContactSubmissionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactSubmission{})
	return result.RowsAffected > 0, result.Error
}
