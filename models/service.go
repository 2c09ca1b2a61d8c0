package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeaturedDisplayLimit caps how many featured services or testimonials a public page renders.
const FeaturedDisplayLimit = 3

// Service is one offering shown on the home and services pages, ordered by OrderIndex.
type Service struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description string                      `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Icon        string                      `json:"icon" db:"icon" gorm:"type:text;not null;default:''"`
	Features    datatypes.JSONSlice[string] `json:"features" db:"features"`
	OrderIndex  int                         `json:"orderIndex" db:"order_index" gorm:"not null;default:0;index"`
	IsFeatured  bool                        `json:"isFeatured" db:"is_featured" gorm:"not null;default:false;index"`
	CreatedAt   time.Time                   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time                   `json:"updatedAt" db:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	if s.Features == nil {
		s.Features = datatypes.JSONSlice[string]{}
	}
	return nil
}

// ServicePatch carries the fields of a partial update; nil fields are left unchanged.
type ServicePatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	Features    *[]string `json:"features"`
	OrderIndex  *int      `json:"orderIndex"`
	IsFeatured  *bool     `json:"isFeatured"`
}

// Apply merges the non-nil fields of the patch into s.
func (p ServicePatch) Apply(s *Service) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Icon != nil {
		s.Icon = *p.Icon
	}
	if p.Features != nil {
		s.Features = datatypes.NewJSONSlice(*p.Features)
	}
	if p.OrderIndex != nil {
		s.OrderIndex = *p.OrderIndex
	}
	if p.IsFeatured != nil {
		s.IsFeatured = *p.IsFeatured
	}
}
