package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/truest-construction/site-backend/models"
	"gorm.io/gorm"
)

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

// FindAll returns every testimonial, newest first
func (r *TestimonialRepo) FindAll(ctx context.Context) ([]*models.Testimonial, error) {
	var testimonials []*models.Testimonial
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&testimonials).Error
	return testimonials, err
}

// FindFeatured returns featured testimonials, newest first; limit <= 0 means no limit
func (r *TestimonialRepo) FindFeatured(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	var testimonials []*models.Testimonial
	query := r.db.WithContext(ctx).Where("is_featured = ?", true).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&testimonials).Error
	return testimonials, err
}

// FindByID returns a testimonial by its ID, or nil if there is none
func (r *TestimonialRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&testimonial).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// Add inserts a new testimonial; the rating is clamped by the model's save hook
func (r *TestimonialRepo) Add(ctx context.Context, testimonial *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(testimonial).Error
}

// Update merges the patch into the stored testimonial; fields the patch leaves nil keep their values.
// Returns nil if there is no such testimonial.
func (r *TestimonialRepo) Update(ctx context.Context, id uuid.UUID, patch models.TestimonialPatch) (*models.Testimonial, error) {
	testimonial, err := r.FindByID(ctx, id)
	if err != nil || testimonial == nil {
		return nil, err
	}

	patch.Apply(testimonial)
	if err := r.db.WithContext(ctx).Save(testimonial).Error; err != nil {
		return nil, err
	}
	return testimonial, nil
}

// SetFeatured flips the featured flag and returns the updated testimonial, or nil if there is none
func (r *TestimonialRepo) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.Testimonial, error) {
	result := r.db.WithContext(ctx).Model(&models.Testimonial{}).Where("id = ?", id).Update("is_featured", featured)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes a testimonial by id and reports whether a row was removed
func (r *TestimonialRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Testimonial{})
	return result.RowsAffected > 0, result.Error
}
