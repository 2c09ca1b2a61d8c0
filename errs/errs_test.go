package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestNewDatabaseErrorClassification(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  int
	}{
		{"duplicated key sentinel", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_blog_posts_slug"`), http.StatusConflict},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: blog_posts.slug (2067)"), http.StatusConflict},
		{"foreign key", errors.New("violates foreign key constraint"), http.StatusBadRequest},
		{"record not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), http.StatusServiceUnavailable},
		{"anything else", errors.New("syntax error at or near"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "blog post", tt.cause)
			if err.StatusCode != tt.want {
				t.Errorf("StatusCode = %d, want %d (%s)", err.StatusCode, tt.want, err.GetFullError())
			}
		})
	}
}

func TestNewDatabaseErrorPassesApiErrThrough(t *testing.T) {
	transition := NewInvalidTransitionError("contact submission", "read", "new")
	got := NewDatabaseError("update", "contact submission", transition)
	if got != transition {
		t.Fatalf("NewDatabaseError wrapped an ApiErr: %v", got.GetFullError())
	}
	if !IsInvalidTransition(got) || StatusCode(got) != http.StatusConflict {
		t.Errorf("transition error lost its classification: %v", got.GetFullError())
	}
}

func TestUnauthorizedErrorsShareMessage(t *testing.T) {
	for _, err := range []*ApiErr{
		NewMissingTokenError(),
		NewInvalidTokenError(errors.New("bad signature")),
		NewTokenExpiredError(),
		NewNotPermittedError(),
	} {
		if err.Error() != "Unauthorized" || err.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: got %d %q", err.GetFullError(), err.StatusCode, err.Error())
		}
		if !IsUnauthorized(err) {
			t.Errorf("IsUnauthorized(%s) = false", err.GetFullError())
		}
	}

	if !IsTokenExpiredError(NewTokenExpiredError()) || IsTokenExpiredError(NewMissingTokenError()) {
		t.Error("IsTokenExpiredError misclassified")
	}
	if !IsNotPermittedError(NewNotPermittedError()) {
		t.Error("IsNotPermittedError misclassified")
	}
}

func TestProviderErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, IsInvalidAPIKeyError},
		{http.StatusForbidden, IsInvalidAPIKeyError},
		{http.StatusTooManyRequests, IsRateLimitError},
		{http.StatusServiceUnavailable, func(err error) bool { return errors.Is(err, ErrServiceUnavailable) }},
		{http.StatusUnprocessableEntity, func(err error) bool { return errors.Is(err, ErrNotificationFailed) }},
	}

	for _, tt := range tests {
		err := NewProviderError("resend", tt.status, "boom")
		if !tt.check(err) {
			t.Errorf("status %d classified as %v", tt.status, err)
		}
		if !IsNotificationError(err) || err.StatusCode != http.StatusBadGateway {
			t.Errorf("status %d: not a notification error: %s", tt.status, err.GetFullError())
		}
	}
}

func TestGetFullErrorIncludesCauses(t *testing.T) {
	inner := NewMissingRequiredFieldError("email")
	outer := NewInternalErrorWithCause("submitting contact form", inner)

	want := "submitting contact form -> email is required: Missing required field: email -> missing required field"
	if got := outer.GetFullError(); got != want {
		t.Errorf("GetFullError() = %q, want %q", got, want)
	}
	if !IsMissingRequiredFieldError(inner) {
		t.Error("IsMissingRequiredFieldError(inner) = false")
	}
	if StatusCode(errors.New("plain")) != http.StatusInternalServerError {
		t.Error("StatusCode(plain error) should be 500")
	}
}

func TestNotFoundKeepsMessage(t *testing.T) {
	err := NewNotFoundError("Blog post not found")
	if err.Error() != "Blog post not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsNotFound(err) || StatusCode(err) != http.StatusNotFound {
		t.Errorf("not classified as not found: %s", err.GetFullError())
	}
	if !IsUnauthorized(Unauthorized) || IsUnauthorized(err) {
		t.Error("IsUnauthorized misclassified")
	}
}
