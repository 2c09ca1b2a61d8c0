package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/truest-construction/site-backend/metrics"
	"github.com/truest-construction/site-backend/models"
	"github.com/truest-construction/site-backend/site"
)

func setupRoutes(r chi.Router, handlers *routeHandlers, admin adminMiddleware) {
	r.Get("/health", handlers.healthHandler.health())
	r.Method("GET", "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		setupPublicRoutes(r, handlers)
		setupAuthRoutes(r, handlers)

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(admin.authenticate)
			setupAdminRoutes(r, handlers)
		})

		r.Group(func(r chi.Router) {
			r.Use(admin.requireSession)
			r.Get("/admin", handlers.siteHandler.admin())
			r.Get("/admin/*", handlers.siteHandler.admin())
		})
	})

	r.NotFound(handlers.siteHandler.notFound())
}

// setupPublicRoutes registers the rendered pages and the contact form endpoint
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	pages := handlers.siteHandler
	r.Get("/", pages.home())
	r.Get("/about", pages.genericPage(models.PageAbout, site.PageGeneric))
	r.Get("/services", pages.services())
	r.Get("/testimonials", pages.testimonials())
	r.Get("/contact", pages.genericPage(models.PageContact, site.PageContact))
	r.Get("/blog", pages.blog())
	r.Get("/blog/{slug}", pages.blogPost())

	r.Post("/api/contact", handlers.contactHandler.submitContact())
}

func setupAuthRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/auth/signin", handlers.authHandler.signIn())
	r.Get("/auth/callback", handlers.authHandler.callback())
	r.Post("/auth/signout", handlers.authHandler.signOut())
	r.Get("/auth/session", handlers.authHandler.session())
}

// setupAdminRoutes registers the admin API; every route here sits behind admin.authenticate
func setupAdminRoutes(r chi.Router, handlers *routeHandlers) {
	pages := handlers.pageHandler
	r.Get("/pages", pages.getPages())
	r.Put("/pages", pages.updatePage())
	r.Get("/content/services", pages.getServicesContent())
	r.Get("/content/{pageId}", pages.getContent())
	r.Put("/content/{pageId}", pages.updateContent())
	r.Get("/callouts", pages.getCallout())
	r.Put("/callouts", pages.updateCallout())
	r.Get("/callouts/{pageId}", pages.getCallout())
	r.Put("/callouts/{pageId}", pages.updateCallout())

	blog := handlers.blogPostHandler
	r.Get("/blog", blog.getBlogPosts())
	r.Post("/blog", blog.createBlogPost())
	r.Put("/blog", blog.updateBlogPost())
	r.Delete("/blog", blog.deleteBlogPost())

	services := handlers.serviceHandler
	r.Get("/services", services.getServices())
	r.Post("/services", services.createService())
	r.Put("/services", services.updateService())
	r.Delete("/services", services.deleteService())

	testimonials := handlers.testimonialHandler
	r.Get("/testimonials", testimonials.getTestimonials())
	r.Post("/testimonials", testimonials.createTestimonial())
	r.Put("/testimonials", testimonials.updateTestimonial())
	r.Delete("/testimonials", testimonials.deleteTestimonial())

	contact := handlers.contactHandler
	r.Get("/contact-submissions", contact.getSubmissions())
	r.Put("/contact-submissions", contact.updateSubmissionStatus())
	r.Delete("/contact-submissions", contact.deleteSubmission())
}
