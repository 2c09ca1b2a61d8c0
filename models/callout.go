package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CalloutItem is one column of a "why choose us" style block.
type CalloutItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Callout is the repeated-item block attached to a page; there is at most one per page.
type Callout struct {
	ID        uuid.UUID                        `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PageID    string                           `json:"pageId" db:"page_id" gorm:"type:text;not null;uniqueIndex"`
	Title     string                           `json:"title" db:"title" gorm:"type:text;not null;default:''"`
	Items     datatypes.JSONSlice[CalloutItem] `json:"items" db:"items"`
	CreatedAt time.Time                        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time                        `json:"updatedAt" db:"updated_at"`
}

func (c *Callout) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Callout) BeforeSave(tx *gorm.DB) error {
	if c.Items == nil {
		c.Items = datatypes.JSONSlice[CalloutItem]{}
	}
	return nil
}
