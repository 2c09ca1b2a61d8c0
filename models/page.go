package models

import "time"

// Page holds the editable copy for one public page, keyed by its slug ("home", "about", ...).
// Content is free text: legacy raw HTML or a JSON object, see the content package.
type Page struct {
	ID          string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null;default:''"`
	Content     string    `json:"content" db:"content" gorm:"type:text;not null;default:''"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated" gorm:"column:last_updated;not null"`
}

// Well-known page ids rendered by the public site.
const (
	PageHome         = "home"
	PageAbout        = "about"
	PageServices     = "services"
	PageTestimonials = "testimonials"
	PageContact      = "contact"
)

// PublicPageIDs lists the pages provisioned by seeding, in navigation order.
var PublicPageIDs = []string{PageHome, PageAbout, PageServices, PageTestimonials, PageContact}
