package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusReplied  ContactStatus = "replied"
	ContactStatusArchived ContactStatus = "archived"
)

// ContactStatuses lists every status in lifecycle order.
var ContactStatuses = []ContactStatus{
	ContactStatusNew,
	ContactStatusRead,
	ContactStatusReplied,
	ContactStatusArchived,
}

// ParseContactStatus reports whether s names a known status.
func ParseContactStatus(s string) (ContactStatus, bool) {
	for _, status := range ContactStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// CanTransitionTo reports whether a submission in status s may move to next.
// new -> read -> replied (read may be skipped), anything -> archived, archived -> new.
// Staying in the same status is allowed.
func (s ContactStatus) CanTransitionTo(next ContactStatus) bool {
	if s == next {
		return true
	}
	switch next {
	case ContactStatusArchived:
		return true
	case ContactStatusRead:
		return s == ContactStatusNew
	case ContactStatusReplied:
		return s == ContactStatusNew || s == ContactStatusRead
	case ContactStatusNew:
		return s == ContactStatusArchived
	}
	return false
}

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID        uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string        `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string        `json:"email" db:"email" gorm:"type:text;not null"`
	Phone     *string       `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Message   string        `json:"message" db:"message" gorm:"type:text;not null"`
	Status    ContactStatus `json:"status" db:"status" gorm:"type:text;not null;default:'new';index"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ContactStatusNew
	}
	return nil
}
