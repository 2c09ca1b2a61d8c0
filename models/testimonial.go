package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = MaxRating
)

// Testimonial is a client quote. Rating is always within [MinRating, MaxRating].
type Testimonial struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Role        string    `json:"role" db:"role" gorm:"type:text;not null;default:''"`
	Quote       string    `json:"quote" db:"quote" gorm:"type:text;not null"`
	Rating      int       `json:"rating" db:"rating" gorm:"not null"`
	ProjectType string    `json:"projectType" db:"project_type" gorm:"type:text;not null;default:''"`
	ImagePath   string    `json:"imagePath" db:"image_path" gorm:"type:text;not null;default:''"`
	IsFeatured  bool      `json:"isFeatured" db:"is_featured" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ClampRating pulls an out-of-range rating to the nearest bound instead of rejecting it.
func ClampRating(rating int) int {
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Testimonial) BeforeSave(tx *gorm.DB) error {
	t.Rating = ClampRating(t.Rating)
	return nil
}

// TestimonialPatch carries the fields of a partial update; nil fields are left unchanged.
type TestimonialPatch struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Quote       *string `json:"quote"`
	Rating      *int    `json:"rating"`
	ProjectType *string `json:"projectType"`
	ImagePath   *string `json:"imagePath"`
	IsFeatured  *bool   `json:"isFeatured"`
}

// Apply merges the non-nil fields of the patch into t, clamping the rating.
func (p TestimonialPatch) Apply(t *Testimonial) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Role != nil {
		t.Role = *p.Role
	}
	if p.Quote != nil {
		t.Quote = *p.Quote
	}
	if p.Rating != nil {
		t.Rating = ClampRating(*p.Rating)
	}
	if p.ProjectType != nil {
		t.ProjectType = *p.ProjectType
	}
	if p.ImagePath != nil {
		t.ImagePath = *p.ImagePath
	}
	if p.IsFeatured != nil {
		t.IsFeatured = *p.IsFeatured
	}
}
