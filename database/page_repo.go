package database

import (
	"context"
	"errors"
	"time"

	"github.com/truest-construction/site-backend/content"
	"github.com/truest-construction/site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PageRepo struct {
	db *gorm.DB
}

func NewPageRepo(db *gorm.DB) *PageRepo {
	return &PageRepo{db}
}

// FindAll returns every page keyed by id
func (r *PageRepo) FindAll(ctx context.Context) (map[string]*models.Page, error) {
	var pages []*models.Page
	if err := r.db.WithContext(ctx).Order("id").Find(&pages).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Page, len(pages))
	for _, page := range pages {
		byID[page.ID] = page
	}
	return byID, nil
}

// FindByID returns a page by its slug, or nil if it has never been saved
func (r *PageRepo) FindByID(ctx context.Context, id string) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Upsert writes a page in one statement, creating the row when the id has not been saved before.
// An empty title keeps the stored one, or is derived from the id for a new page.
func (r *PageRepo) Upsert(ctx context.Context, id, title, body string) (*models.Page, error) {
	updates := []string{"title", "content", "last_updated"}
	if title == "" {
		title = content.TitleFromID(id)
		updates = updates[1:]
	}
	page := models.Page{
		ID:          id,
		Title:       title,
		Content:     body,
		LastUpdated: time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}, clause.Returning{}).Create(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// EnsureDefault inserts a page only if the id is not present yet and returns the stored row.
func (r *PageRepo) EnsureDefault(ctx context.Context, id, title, body string) (*models.Page, error) {
	page := models.Page{
		ID:          id,
		Title:       title,
		Content:     body,
		LastUpdated: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&page).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
