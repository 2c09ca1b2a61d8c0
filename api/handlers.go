package api

import "time"

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	db := deps.Database
	return &routeHandlers{
		pageHandler:        newPageHandler(db.PageRepo(), db.CalloutRepo()),
		blogPostHandler:    newBlogPostHandler(db.BlogPostRepo()),
		serviceHandler:     newServiceHandler(db.ServiceRepo()),
		testimonialHandler: newTestimonialHandler(db.TestimonialRepo()),
		contactHandler:     newContactHandler(db.ContactSubmissionRepo(), deps.Notifier),
		authHandler:        newAuthHandler(deps),
		siteHandler:        newSiteHandler(db, deps.Renderer),
		healthHandler:      newHealthHandler(db, startupTime),
	}
}
