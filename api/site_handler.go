package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/content"
	"github.com/truest-construction/site-backend/database"
	"github.com/truest-construction/site-backend/models"
	"github.com/truest-construction/site-backend/site"
	"golang.org/x/sync/errgroup"
)

const pageBlog = "blog"

// siteHandler renders the public pages. Missing or unreadable content falls back to
// default copy; only a template failure turns into an error response.
type siteHandler struct {
	pages  pageWriter
	logger zerolog.Logger
	db     database.Database
}

func newSiteHandler(db database.Database, renderer *site.Renderer) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		pages:  pageWriter{renderer: renderer, logger: logger},
		logger: logger,
		db:     db,
	}
}

func (h siteHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			raw          string
			services     []*models.Service
			testimonials []*models.Testimonial
		)

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			raw = h.pageContent(ctx, models.PageHome)
			return nil
		})
		g.Go(func() error {
			services = h.featuredServices(ctx)
			return nil
		})
		g.Go(func() error {
			testimonials = h.featuredTestimonials(ctx)
			return nil
		})
		_ = g.Wait()

		h.pages.render(w, r, http.StatusOK, site.PageHome, "Home", site.HomeView{
			Home:         content.ParseHome(raw),
			Services:     services,
			Testimonials: testimonials,
		})
	}
}

// genericPage renders a page made only of editable copy, such as about or contact.
func (h siteHandler) genericPage(pageID, template string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := content.ParsePage(pageID, h.pageContent(r.Context(), pageID))
		h.pages.render(w, r, http.StatusOK, template, page.PageTitle, site.PageView{Page: page})
	}
}

func (h siteHandler) services() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			raw      string
			services []*models.Service
			callout  *models.Callout
		)

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			raw = h.pageContent(ctx, models.PageServices)
			return nil
		})
		g.Go(func() error {
			services = h.featuredServices(ctx)
			return nil
		})
		g.Go(func() error {
			callout = h.callout(ctx, models.PageServices)
			return nil
		})
		_ = g.Wait()

		page := content.ParsePage(models.PageServices, raw)
		h.pages.render(w, r, http.StatusOK, site.PageServices, page.PageTitle, site.ServicesView{
			Page:     page,
			Services: services,
			Callout:  callout,
		})
	}
}

func (h siteHandler) testimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := content.ParsePage(models.PageTestimonials, h.pageContent(ctx, models.PageTestimonials))

		testimonials := h.featuredTestimonials(ctx)

		h.pages.render(w, r, http.StatusOK, site.PageTestimonials, page.PageTitle, site.TestimonialsView{
			Page:         page,
			Testimonials: testimonials,
			Stats:        site.TestimonialStats,
		})
	}
}

func (h siteHandler) blog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := content.ParsePage(pageBlog, h.pageContent(ctx, pageBlog))

		posts, err := h.db.BlogPostRepo().FindPublished(ctx)
		if err != nil {
			h.logger.Error().Err(err).Msg("error loading published blog posts")
		}

		h.pages.render(w, r, http.StatusOK, site.PageBlog, page.PageTitle, site.BlogView{
			Page:  page,
			Posts: posts,
		})
	}
}

func (h siteHandler) blogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.db.BlogPostRepo().FindBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.logger.Error().Err(err).Msg("error loading blog post")
		}
		if post == nil || !post.Published {
			h.pages.notFound(w, r)
			return
		}
		h.pages.render(w, r, http.StatusOK, site.PageBlogPost, post.Title, site.BlogPostView{Post: post})
	}
}

// admin is the landing page for signed-in administrators.
func (h siteHandler) admin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := h.db.ContactSubmissionRepo().CountByStatus(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("error counting contact submissions")
		}

		h.pages.render(w, r, http.StatusOK, site.PageAdmin, "Admin", site.AdminView{
			Email:     ctxGetAdminEmail(r.Context()),
			Resources: site.AdminResources,
			Unread:    counts[models.ContactStatusNew],
		})
	}
}

func (h siteHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.pages.notFound(w, r)
	}
}

// pageContent returns the stored content of a page, or "" when it is absent or unreadable.
func (h siteHandler) pageContent(ctx context.Context, pageID string) string {
	page, err := h.db.PageRepo().FindByID(ctx, pageID)
	if err != nil {
		h.logger.Error().Err(err).Str("pageId", pageID).Msg("error loading page content")
		return ""
	}
	if page == nil {
		return ""
	}
	return page.Content
}

func (h siteHandler) featuredServices(ctx context.Context) []*models.Service {
	services, err := h.db.ServiceRepo().FindFeatured(ctx, models.FeaturedDisplayLimit)
	if err != nil {
		h.logger.Error().Err(err).Msg("error loading featured services")
		return nil
	}
	return services
}

func (h siteHandler) featuredTestimonials(ctx context.Context) []*models.Testimonial {
	testimonials, err := h.db.TestimonialRepo().FindFeatured(ctx, models.FeaturedDisplayLimit)
	if err != nil {
		h.logger.Error().Err(err).Msg("error loading featured testimonials")
		return nil
	}
	return testimonials
}

// callout returns the page's callout, or the default block when none has been saved.
func (h siteHandler) callout(ctx context.Context, pageID string) *models.Callout {
	callout, err := h.db.CalloutRepo().FindByPageID(ctx, pageID)
	if err != nil {
		h.logger.Error().Err(err).Str("pageId", pageID).Msg("error loading callout")
	}
	if callout != nil {
		return callout
	}
	if pageID != models.PageServices {
		return nil
	}
	title, items := content.DefaultServicesCallout()
	return &models.Callout{PageID: pageID, Title: title, Items: items}
}
