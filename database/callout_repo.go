package database

import (
	"context"
	"errors"

	"github.com/truest-construction/site-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CalloutRepo struct {
	db *gorm.DB
}

func NewCalloutRepo(db *gorm.DB) *CalloutRepo {
	return &CalloutRepo{db}
}

// FindByPageID returns the callout attached to a page, or nil if it has none
func (r *CalloutRepo) FindByPageID(ctx context.Context, pageID string) (*models.Callout, error) {
	var callout models.Callout
	err := r.db.WithContext(ctx).Where("page_id = ?", pageID).First(&callout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &callout, nil
}

// Upsert replaces the page's callout, creating it if the page has none yet
func (r *CalloutRepo) Upsert(ctx context.Context, pageID, title string, items []models.CalloutItem) (*models.Callout, error) {
	callout := models.Callout{
		PageID: pageID,
		Title:  title,
		Items:  datatypes.NewJSONSlice(items),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "items", "updated_at"}),
	}).Create(&callout).Error
	if err != nil {
		return nil, err
	}
	return r.FindByPageID(ctx, pageID)
}
