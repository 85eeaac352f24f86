package dto

// Stable error kinds returned to clients.
const (
	KindInvalidArgument    = "invalid_argument"
	KindUsernameTaken      = "username_taken"
	KindInvalidCredentials = "invalid_credentials"
	KindUnauthenticated    = "unauthenticated"
	KindStoreUnavailable   = "store_unavailable"
	KindRequestInProgress  = "request_in_progress"
	KindRateLimited        = "rate_limited"
	KindInternal           = "internal"
)

// ErrorBody describes a failed request.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody under the "error" key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewError builds an ErrorResponse.
func NewError(kind, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Kind: kind, Message: message}}
}
