package models

// Error codes returned in ErrorResponse.Code.
const (
	ErrCodeBadRequest          = "bad_request"
	ErrCodeProviderUnavailable = "provider_unavailable"
	ErrCodeInvalidModelOutput  = "invalid_model_output"
	ErrCodeTimeout             = "timeout"
	ErrCodeInternal            = "internal_error"
	ErrCodeRateLimited         = "rate_limited"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
