package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/truest-construction/site-backend/database"
	"github.com/truest-construction/site-backend/errs"
	"github.com/truest-construction/site-backend/metrics"
	"github.com/truest-construction/site-backend/models"
	"github.com/truest-construction/site-backend/services"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	contactThanksMessage  = "Thank you for contacting us! We will get back to you soon."
	contactFailureMessage = "Failed to submit contact form. Please try again."
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactSubmissionRepo
	notifier    *services.Notifier
}

func newContactHandler(contactRepo *database.ContactSubmissionRepo, notifier *services.Notifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactResponse is returned when a submission has been stored.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// StatusRequest is the body of a submission status change.
type StatusRequest struct {
	Status string `json:"status"`
}

// submitContact stores a contact form submission and notifies the site owner in the background
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param submission body ContactRequest true "Contact details"
// @Success 201 {object} ContactResponse
// @Failure 400 {object} ErrorResponse "Name, email, and message are required"
// @Failure 500 {object} ErrorResponse "Failed to submit contact form. Please try again."
// @Router /api/contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := decodeJSON(w, r, maxContactBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		email := strings.TrimSpace(req.Email)
		message := strings.TrimSpace(req.Message)
		if name == "" || email == "" || message == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Name, email, and message are required"))
			return
		}
		if !emailPattern.MatchString(email) {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid email address"))
			return
		}

		submission := models.ContactSubmission{
			Name:    name,
			Email:   email,
			Message: message,
		}
		if phone := strings.TrimSpace(req.Phone); phone != "" {
			submission.Phone = &phone
		}

		if err := h.contactRepo.Add(r.Context(), &submission); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(contactFailureMessage, err))
			return
		}

		metrics.RecordContactSubmission()
		h.logger.Info().Str("submissionId", submission.ID.String()).Msg("contact submission received")
		h.notifier.Dispatch(submission)

		h.responder.WriteJSONStatus(w, http.StatusCreated, ContactResponse{
			Success: true,
			Message: contactThanksMessage,
			ID:      submission.ID.String(),
		})
	}
}

// getSubmissions lists submissions, newest first, optionally filtered by ?status=, or returns one with ?id=
// @Summary Get contact submissions
// @Tags Contact
// @Produce json
// @Param id query string false "Submission ID" format(uuid)
// @Param status query string false "new, read, replied or archived"
// @Success 200 {array} models.ContactSubmission
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 404 {object} ErrorResponse "Contact submission not found"
// @Router /api/admin/contact-submissions [get]
func (h contactHandler) getSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hasIDParam(r) {
			id, err := idParam(r, "Contact submission")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			submission, err := h.contactRepo.FindByID(r.Context(), id)
			h.writeSubmission(w, submission, err, "find")
			return
		}

		var status models.ContactStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, ok := models.ParseContactStatus(raw)
			if !ok {
				h.responder.WriteError(w, errs.NewBadRequestError("Invalid status"))
				return
			}
			status = parsed
		}

		submissions, err := h.contactRepo.FindAll(r.Context(), status)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact submissions", err))
			return
		}
		if submissions == nil {
			submissions = []*models.ContactSubmission{}
		}
		h.responder.WriteJSON(w, submissions)
	}
}

// updateSubmissionStatus moves a submission through its lifecycle
// @Summary Update contact submission status
// @Tags Contact
// @Accept json
// @Produce json
// @Param id query string true "Submission ID" format(uuid)
// @Param status body StatusRequest true "New status"
// @Success 200 {object} models.ContactSubmission
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 404 {object} ErrorResponse "Contact submission not found"
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Router /api/admin/contact-submissions [put]
func (h contactHandler) updateSubmissionStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Contact submission")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req StatusRequest
		if err := decodeJSON(w, r, maxAdminBodyBytes, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		status, ok := models.ParseContactStatus(strings.TrimSpace(req.Status))
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid status"))
			return
		}

		submission, err := h.contactRepo.UpdateStatus(r.Context(), id, status)
		if err == nil && submission != nil {
			metrics.RecordContactStatusChange(string(status))
		}
		h.writeSubmission(w, submission, err, "update")
	}
}

// deleteSubmission removes a submission
// @Summary Delete contact submission
// @Tags Contact
// @Produce json
// @Param id query string true "Submission ID" format(uuid)
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Contact submission not found"
// @Router /api/admin/contact-submissions [delete]
func (h contactHandler) deleteSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Contact submission")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.contactRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "contact submission", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Contact submission not found"))
			return
		}
		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}

func (h contactHandler) writeSubmission(w http.ResponseWriter, submission *models.ContactSubmission, err error, operation string) {
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError(operation, "contact submission", err))
		return
	}
	if submission == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("Contact submission not found"))
		return
	}
	h.responder.WriteJSON(w, submission)
}
