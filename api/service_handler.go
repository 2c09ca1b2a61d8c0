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

type serviceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	serviceRepo *database.ServiceRepo
}

func newServiceHandler(serviceRepo *database.ServiceRepo) serviceHandler {
	logger := log.With().Str("handlerName", "serviceHandler").Logger()

	return serviceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		serviceRepo: serviceRepo,
	}
}

// FeaturedRequest is the body of ?action=toggle-featured.
type FeaturedRequest struct {
	IsFeatured *bool `json:"isFeatured"`
}

// getServices lists every service in display order, or returns one when ?id= is present
// @Summary Get services
// @Tags Services
// @Produce json
// @Param id query string false "Service ID" format(uuid)
// @Success 200 {array} models.Service
// @Failure 404 {object} ErrorResponse "Service not found"
// @Router /api/admin/services [get]
func (h serviceHandler) getServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hasIDParam(r) {
			id, err := idParam(r, "Service")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			service, err := h.serviceRepo.FindByID(r.Context(), id)
			h.writeService(w, service, err, "find")
			return
		}

		services, err := h.serviceRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "services", err))
			return
		}
		if services == nil {
			services = []*models.Service{}
		}
		h.responder.WriteJSON(w, services)
	}
}

// createService creates a service
// @Summary Create service
// @Tags Services
// @Accept json
// @Produce json
// @Param service body models.ServicePatch true "Service data"
// @Success 201 {object} models.Service
// @Failure 400 {object} ErrorResponse "Missing title"
// @Router /api/admin/services [post]
func (h serviceHandler) createService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ServicePatch
		if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		var service models.Service
		req.Apply(&service)
		if err := h.serviceRepo.Add(r.Context(), &service); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "service", err))
			return
		}

		h.logger.Info().Str("title", service.Title).Str("admin", ctxGetAdminEmail(r.Context())).Msg("service created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, service)
	}
}

// updateService merges the given fields into a service, or flips its featured flag with ?action=toggle-featured
// @Summary Update service
// @Tags Services
// @Accept json
// @Produce json
// @Param id query string true "Service ID" format(uuid)
// @Param action query string false "toggle-featured"
// @Param service body models.ServicePatch true "Fields to change"
// @Success 200 {object} models.Service
// @Failure 400 {object} ErrorResponse "Service ID is required"
// @Failure 404 {object} ErrorResponse "Service not found"
// @Router /api/admin/services [put]
func (h serviceHandler) updateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Service")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		switch action := r.URL.Query().Get("action"); action {
		case "":
			var patch models.ServicePatch
			if err := decodeJSON(w, r, maxAdminBodyBytes, &patch); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			service, err := h.serviceRepo.Update(r.Context(), id, patch)
			h.writeService(w, service, err, "update")
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
			service, err := h.serviceRepo.SetFeatured(r.Context(), id, *req.IsFeatured)
			h.writeService(w, service, err, "feature")
		default:
			h.responder.WriteError(w, errs.NewBadRequestError("Unknown action: "+action))
		}
	}
}

// deleteService removes a service
// @Summary Delete service
// @Tags Services
// @Produce json
// @Param id query string true "Service ID" format(uuid)
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Service not found"
// @Router /api/admin/services [delete]
func (h serviceHandler) deleteService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Service")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.serviceRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "service", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Service not found"))
			return
		}
		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}

func (h serviceHandler) writeService(w http.ResponseWriter, service *models.Service, err error, operation string) {
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError(operation, "service", err))
		return
	}
	if service == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("Service not found"))
		return
	}
	h.responder.WriteJSON(w, service)
}
