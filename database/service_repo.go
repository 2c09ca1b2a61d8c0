package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/truest-construction/site-backend/models"
	"gorm.io/gorm"
)

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

// FindAll returns every service in display order
func (r *ServiceRepo) FindAll(ctx context.Context) ([]*models.Service, error) {
	var services []*models.Service
	err := r.db.WithContext(ctx).Order("order_index ASC").Order("created_at ASC").Find(&services).Error
	return services, err
}

// FindFeatured returns featured services in display order; limit <= 0 means no limit
func (r *ServiceRepo) FindFeatured(ctx context.Context, limit int) ([]*models.Service, error) {
	var services []*models.Service
	query := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("order_index ASC").Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&services).Error
	return services, err
}

// Count returns the number of stored services
func (r *ServiceRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).Count(&count).Error
	return count, err
}

// FindByID returns a service by its ID, or nil if there is none
func (r *ServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Add inserts a new service into the database
func (r *ServiceRepo) Add(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// Update merges the patch into the stored service; fields the patch leaves nil keep their values.
// Returns nil if there is no such service.
func (r *ServiceRepo) Update(ctx context.Context, id uuid.UUID, patch models.ServicePatch) (*models.Service, error) {
	service, err := r.FindByID(ctx, id)
	if err != nil || service == nil {
		return nil, err
	}

	patch.Apply(service)
	if err := r.db.WithContext(ctx).Save(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// SetFeatured flips the featured flag and returns the updated service, or nil if there is none
func (r *ServiceRepo) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.Service, error) {
	result := r.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Update("is_featured", featured)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes a service by id and reports whether a row was removed
func (r *ServiceRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{})
	return result.RowsAffected > 0, result.Error
}
