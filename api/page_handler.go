package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/content"
	"github.com/truest-construction/site-backend/database"
	"github.com/truest-construction/site-backend/errs"
	"github.com/truest-construction/site-backend/models"
)

type pageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	pageRepo    *database.PageRepo
	calloutRepo *database.CalloutRepo
}

func newPageHandler(pageRepo *database.PageRepo, calloutRepo *database.CalloutRepo) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		pageRepo:    pageRepo,
		calloutRepo: calloutRepo,
	}
}

// PageRequest is the body accepted by the page editors.
type PageRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// CalloutRequest is the body accepted by the callout editor.
type CalloutRequest struct {
	Title string               `json:"title"`
	Items []models.CalloutItem `json:"items"`
}

// getPages lists every page keyed by id, or returns one page when ?id= is present
// @Summary Get pages
// @Tags Pages
// @Produce json
// @Param id query string false "Page ID"
// @Success 200 {object} map[string]models.Page "Pages keyed by id"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Page not found"
// @Router /api/admin/pages [get]
func (h pageHandler) getPages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
			h.writePage(w, r, id, "Page not found")
			return
		}

		pages, err := h.pageRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "pages", err))
			return
		}
		h.responder.WriteJSON(w, pages)
	}
}

// updatePage upserts the page named by ?id=
// @Summary Update page
// @Tags Pages
// @Accept json
// @Produce json
// @Param id query string true "Page ID"
// @Param page body PageRequest true "Title and content"
// @Success 200 {object} models.Page
// @Failure 400 {object} ErrorResponse "Page ID is required"
// @Router /api/admin/pages [put]
func (h pageHandler) updatePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Page ID is required"))
			return
		}

		var req PageRequest
		if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		body := ""
		if req.Content != nil {
			body = *req.Content
		}
		h.upsert(w, r, id, req.Title, body)
	}
}

// getContent returns the page named in the path
// @Summary Get page content
// @Tags Pages
// @Produce json
// @Param pageId path string true "Page ID"
// @Success 200 {object} models.Page
// @Failure 404 {object} ErrorResponse "Content not found"
// @Router /api/admin/content/{pageId} [get]
func (h pageHandler) getContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.writePage(w, r, chi.URLParam(r, "pageId"), "Content not found")
	}
}

// updateContent upserts the page named in the path; content is required
// @Summary Update page content
// @Tags Pages
// @Accept json
// @Produce json
// @Param pageId path string true "Page ID"
// @Param page body PageRequest true "Title and content"
// @Success 200 {object} models.Page
// @Failure 400 {object} ErrorResponse "Content is required"
// @Router /api/admin/content/{pageId} [put]
func (h pageHandler) updateContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PageRequest
		if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Content == nil || *req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Content is required"))
			return
		}
		h.upsert(w, r, chi.URLParam(r, "pageId"), req.Title, *req.Content)
	}
}

// getServicesContent returns the services page, provisioning it with default copy on first use
// @Summary Get services page content
// @Tags Pages
// @Produce json
// @Success 200 {object} models.Page
// @Router /api/admin/content/services [get]
func (h pageHandler) getServicesContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title, body := content.DefaultContent(models.PageServices)
		page, err := h.pageRepo.EnsureDefault(r.Context(), models.PageServices, title, body)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("provision", "services page", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getCallout returns the callout attached to a page
// @Summary Get callout
// @Tags Callouts
// @Produce json
// @Param pageId path string true "Page ID"
// @Success 200 {object} models.Callout
// @Failure 404 {object} ErrorResponse "Callout not found"
// @Router /api/admin/callouts/{pageId} [get]
func (h pageHandler) getCallout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageID, err := calloutPageID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		callout, err := h.calloutRepo.FindByPageID(r.Context(), pageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "callout", err))
			return
		}
		if callout == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Callout not found"))
			return
		}
		h.responder.WriteJSON(w, callout)
	}
}

// updateCallout creates or replaces the callout attached to a page
// @Summary Update callout
// @Tags Callouts
// @Accept json
// @Produce json
// @Param pageId path string true "Page ID"
// @Param callout body CalloutRequest true "Title and items"
// @Success 200 {object} models.Callout
// @Router /api/admin/callouts/{pageId} [put]
func (h pageHandler) updateCallout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageID, err := calloutPageID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req CalloutRequest
		if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		callout, err := h.calloutRepo.Upsert(r.Context(), pageID, req.Title, req.Items)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "callout", err))
			return
		}
		h.responder.WriteJSON(w, callout)
	}
}

func (h pageHandler) writePage(w http.ResponseWriter, r *http.Request, id, notFound string) {
	page, err := h.pageRepo.FindByID(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "page", err))
		return
	}
	if page == nil {
		h.responder.WriteError(w, errs.NewNotFoundError(notFound))
		return
	}
	h.responder.WriteJSON(w, page)
}

func (h pageHandler) upsert(w http.ResponseWriter, r *http.Request, id, title, body string) {
	page, err := h.pageRepo.Upsert(r.Context(), id, strings.TrimSpace(title), body)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("save", "page", err))
		return
	}
	h.logger.Info().Str("pageId", id).Str("admin", ctxGetAdminEmail(r.Context())).Msg("page updated")
	h.responder.WriteJSON(w, page)
}

// calloutPageID reads the page id from the path, falling back to ?pageId=.
func calloutPageID(r *http.Request) (string, error) {
	pageID := chi.URLParam(r, "pageId")
	if pageID == "" {
		pageID = strings.TrimSpace(r.URL.Query().Get("pageId"))
	}
	if pageID == "" {
		return "", errs.NewBadRequestError("Missing pageId")
	}
	return pageID, nil
}
