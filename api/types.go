package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	pageHandler        pageHandler
	blogPostHandler    blogPostHandler
	serviceHandler     serviceHandler
	testimonialHandler testimonialHandler
	contactHandler     contactHandler
	authHandler        authHandler
	siteHandler        siteHandler
	healthHandler      healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Blog post not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// SuccessResponse is returned by deletes.
type SuccessResponse struct {
	Success bool `json:"success"`
}
