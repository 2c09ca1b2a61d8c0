package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/database"
	"github.com/truest-construction/site-backend/errs"
	"github.com/truest-construction/site-backend/models"
)

type testimonialHandler struct {
	responder       Responder
	logger          zerolog.Logger
	testimonialRepo *database.TestimonialRepo
}

func newTestimonialHandler(testimonialRepo *database.TestimonialRepo) testimonialHandler {
	logger := log.With().Str("handlerName", "testimonialHandler").Logger()

	return testimonialHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		testimonialRepo: testimonialRepo,
	}
}

// getTestimonials lists every testimonial, newest first, or returns one when ?id= is present
// @Summary Get testimonials
// @Tags Testimonials
// @Produce json
// @Param id query string false "Testimonial ID" format(uuid)
// @Success 200 {array} models.Testimonial
// @Failure 404 {object} ErrorResponse "Testimonial not found"
// @Router /api/admin/testimonials [get]
func (h testimonialHandler) getTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hasIDParam(r) {
			id, err := idParam(r, "Testimonial")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			testimonial, err := h.testimonialRepo.FindByID(r.Context(), id)
			h.writeTestimonial(w, testimonial, err, "find")
			return
		}

		testimonials, err := h.testimonialRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonials", err))
			return
		}
		if testimonials == nil {
			testimonials = []*models.Testimonial{}
		}
		h.responder.WriteJSON(w, testimonials)
	}
}

// createTestimonial creates a testimonial; ratings outside 1..5 are clamped
// @Summary Create testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param testimonial body models.TestimonialPatch true "Testimonial data"
// @Success 201 {object} models.Testimonial
// @Failure 400 {object} ErrorResponse "Missing name or quote"
// @Router /api/admin/testimonials [post]
func (h testimonialHandler) createTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TestimonialPatch
		if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if req.Quote == nil || strings.TrimSpace(*req.Quote) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("quote"))
			return
		}

		testimonial := models.Testimonial{Rating: models.DefaultRating}
		req.Apply(&testimonial)
		if err := h.testimonialRepo.Add(r.Context(), &testimonial); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "testimonial", err))
			return
		}

		h.logger.Info().Str("name", testimonial.Name).Str("admin", ctxGetAdminEmail(r.Context())).Msg("testimonial created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, testimonial)
	}
}

// updateTestimonial merges the given fields into a testimonial, or flips its featured flag with ?action=toggle-featured
// @Summary Update testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param id query string true "Testimonial ID" format(uuid)
// @Param action query string false "toggle-featured"
// @Param testimonial body models.TestimonialPatch true "Fields to change"
// @Success 200 {object} models.Testimonial
// @Failure 400 {object} ErrorResponse "Testimonial ID is required"
// @Failure 404 {object} ErrorResponse "Testimonial not found"
// @Router /api/admin/testimonials [put]
func (h testimonialHandler) updateTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Testimonial")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		switch action := r.URL.Query().Get("action"); action {
		case "":
			var patch models.TestimonialPatch
			if err := decodeJSON(w, r, maxAdminBodyBytes, &patch); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			testimonial, err := h.testimonialRepo.Update(r.Context(), id, patch)
			h.writeTestimonial(w, testimonial, err, "update")
		case "toggle-featured":
			var req FeaturedRequest
			if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if req.IsFeatured == nil {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("isFeatured"))
				return
			}
			testimonial, err := h.testimonialRepo.SetFeatured(r.Context(), id, *req.IsFeatured)
			h.writeTestimonial(w, testimonial, err, "feature")
		default:
			h.responder.WriteError(w, errs.NewBadRequestError("Unknown action: "+action))
		}
	}
}

// deleteTestimonial removes a testimonial
// @Summary Delete testimonial
// @Tags Testimonials
// @Produce json
// @Param id query string true "Testimonial ID" format(uuid)
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Testimonial not found"
// @Router /api/admin/testimonials [delete]
func (h testimonialHandler) deleteTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Testimonial")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.testimonialRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "testimonial", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Testimonial not found"))
			return
		}
		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}

func (h testimonialHandler) writeTestimonial(w http.ResponseWriter, testimonial *models.Testimonial, err error, operation string) {
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError(operation, "testimonial", err))
		return
	}
	if testimonial == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("Testimonial not found"))
		return
	}
	h.responder.WriteJSON(w, testimonial)
}
