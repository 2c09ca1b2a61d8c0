package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/content"
	"github.com/truest-construction/site-backend/database"
	"github.com/truest-construction/site-backend/errs"
	"github.com/truest-construction/site-backend/models"
)

const blogDateLayout = "2006-01-02"

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	now          func() time.Time
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		now:          time.Now,
	}
}

// PublishRequest is the body of ?action=toggle-publish.
type PublishRequest struct {
	Published *bool `json:"published"`
}

// getBlogPosts lists every blog post, or returns one when ?id= is present
// @Summary Get blog posts
// @Description Retrieves all blog posts, published or not, newest first
// @Tags Blog Posts
// @Produce json
// @Param id query string false "Blog post ID" format(uuid)
// @Success 200 {array} models.BlogPost "List of blog posts"
// @Failure 404 {object} ErrorResponse "Blog post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /api/admin/blog [get]
func (h blogPostHandler) getBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hasIDParam(r) {
			h.getBlogPost(w, r)
			return
		}

		blogPosts, err := h.blogPostRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}
		if blogPosts == nil {
			blogPosts = []*models.BlogPost{}
		}
		h.responder.WriteJSON(w, blogPosts)
	}
}

func (h blogPostHandler) getBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "Blog post")
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	blogPost, err := h.blogPostRepo.FindByID(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
		return
	}
	if blogPost == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("Blog post not found"))
		return
	}
	h.responder.WriteJSON(w, blogPost)
}

// createBlogPost creates a new blog post
// @Summary Create blog post
// @Description Creates a blog post. The slug is derived from the title unless one is given.
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body models.BlogPostPatch true "Blog post data"
// @Success 201 {object} models.BlogPost "Created blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /api/admin/blog [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.BlogPostPatch
		if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		blogPost := models.BlogPost{Date: h.now().Format(blogDateLayout)}
		h.apply(&blogPost, req)
		if blogPost.Slug == "" {
			h.responder.WriteError(w, errs.NewInvalidFieldError("slug", "must contain at least one letter or digit"))
			return
		}

		if err := h.blogPostRepo.Add(r.Context(), &blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		h.logger.Info().Str("slug", blogPost.Slug).Str("admin", ctxGetAdminEmail(r.Context())).Msg("blog post created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, blogPost)
	}
}

// updateBlogPost updates a blog post, or flips its publish flag with ?action=toggle-publish
// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param id query string true "Blog post ID" format(uuid)
// @Param action query string false "toggle-publish"
// @Param blogPost body models.BlogPostPatch true "Fields to change"
// @Success 200 {object} models.BlogPost "Updated blog post"
// @Failure 400 {object} ErrorResponse "Blog post ID is required"
// @Failure 404 {object} ErrorResponse "Blog post not found"
// @Router /api/admin/blog [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Blog post")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		switch action := r.URL.Query().Get("action"); action {
		case "":
		case "toggle-publish":
			var req PublishRequest
			if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if req.Published == nil {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("published"))
				return
			}
			blogPost, err := h.blogPostRepo.SetPublished(r.Context(), id, *req.Published)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("publish", "blog post", err))
				return
			}
			if blogPost == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("Blog post not found"))
				return
			}
			h.responder.WriteJSON(w, blogPost)
			return
		default:
			h.responder.WriteError(w, errs.NewBadRequestError("Unknown action: "+action))
			return
		}

		var req models.BlogPostPatch
		if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Blog post not found"))
			return
		}

		h.apply(blogPost, req)
		if blogPost.Slug == "" {
			h.responder.WriteError(w, errs.NewInvalidFieldError("slug", "must contain at least one letter or digit"))
			return
		}

		if err := h.blogPostRepo.Update(r.Context(), blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}
		h.responder.WriteJSON(w, blogPost)
	}
}

// deleteBlogPost removes a blog post permanently
// @Summary Delete blog post
// @Tags Blog Posts
// @Produce json
// @Param id query string true "Blog post ID" format(uuid)
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Blog post not found"
// @Router /api/admin/blog [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Blog post")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.blogPostRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Blog post not found"))
			return
		}

		h.logger.Info().Stringer("blogPostID", id).Str("admin", ctxGetAdminEmail(r.Context())).Msg("blog post deleted")
		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}

// apply merges a patch into a post. A slug that differs from the stored one counts as a
// manual edit; otherwise the slug follows the title until it has been edited.
func (h blogPostHandler) apply(blogPost *models.BlogPost, patch models.BlogPostPatch) {
	slug := content.SlugTracker{Slug: blogPost.Slug, Edited: blogPost.SlugEdited}

	if patch.Title != nil {
		blogPost.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Slug != nil && slugEdited(*patch.Slug, blogPost.Slug, blogPost.Title) {
		slug.SetSlug(*patch.Slug)
	} else if patch.Title != nil {
		slug.SetTitle(blogPost.Title)
	}
	blogPost.Slug = slug.Slug
	blogPost.SlugEdited = slug.Edited

	if patch.Excerpt != nil {
		blogPost.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		blogPost.Content = *patch.Content
	}
	if patch.Date != nil && strings.TrimSpace(*patch.Date) != "" {
		blogPost.Date = strings.TrimSpace(*patch.Date)
	}
	if patch.Published != nil {
		blogPost.Published = *patch.Published
	}
}

// slugEdited reports whether a submitted slug is a hand edit: it differs from
// both the stored slug and the one derived from the title.
func slugEdited(submitted, stored, title string) bool {
	normalized := content.Slugify(submitted)
	if normalized == "" {
		return false
	}
	return normalized != stored && normalized != content.Slugify(title)
}
