package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost is a post on the public blog. Content is trusted raw HTML and Date is a display
// string, not a parsed timestamp.
type BlogPost struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title      string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug       string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	SlugEdited bool      `json:"slugEdited" db:"slug_edited" gorm:"not null;default:false"`
	Excerpt    string    `json:"excerpt" db:"excerpt" gorm:"type:text;not null;default:''"`
	Content    string    `json:"content" db:"content" gorm:"type:text;not null"`
	Date       string    `json:"date" db:"date" gorm:"type:text;not null;default:'';index"`
	Published  bool      `json:"published" db:"published" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BlogPostPatch carries the fields of an update request; nil fields are left unchanged.
type BlogPostPatch struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Date      *string `json:"date"`
	Published *bool   `json:"published"`
}
