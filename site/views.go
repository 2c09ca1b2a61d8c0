package site

import (
	"github.com/truest-construction/site-backend/content"
	"github.com/truest-construction/site-backend/models"
)

type HomeView struct {
	Home         content.Home
	Services     []*models.Service
	Testimonials []*models.Testimonial
}

type PageView struct {
	Page content.Page
}

type ServicesView struct {
	Page     content.Page
	Services []*models.Service
	Callout  *models.Callout
}

type Stat struct {
	Value string
	Label string
}

// TestimonialStats is the figures block on the testimonials page.
var TestimonialStats = []Stat{
	{Value: "500+", Label: "Projects Completed"},
	{Value: "98%", Label: "Client Satisfaction"},
	{Value: "15+", Label: "Years Experience"},
	{Value: "100%", Label: "Licensed & Insured"},
}

type TestimonialsView struct {
	Page         content.Page
	Testimonials []*models.Testimonial
	Stats        []Stat
}

type BlogView struct {
	Page  content.Page
	Posts []*models.BlogPost
}

// EmptyBlogMessage is shown when nothing has been published yet.
const EmptyBlogMessage = "No blog posts available at the moment. Check back soon!"

type BlogPostView struct {
	Post *models.BlogPost
}

type ForbiddenView struct {
	Email string
}

type AdminLink struct {
	Href  string
	Label string
}

// AdminResources lists the admin API collections linked from the admin index.
var AdminResources = []AdminLink{
	{Href: "/api/admin/pages", Label: "Pages"},
	{Href: "/api/admin/blog", Label: "Blog posts"},
	{Href: "/api/admin/services", Label: "Services"},
	{Href: "/api/admin/testimonials", Label: "Testimonials"},
	{Href: "/api/admin/contact-submissions", Label: "Contact submissions"},
	{Href: "/api/admin/callouts/services", Label: "Services callout"},
}

type AdminView struct {
	Email     string
	Resources []AdminLink
	Unread    int64
}
