package api

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// APIError represents an API error response
type APIError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("[%d] %s: %s (details: %v)", e.StatusCode, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

// ParseError parses an error response from the API. The auth endpoints
// and the table endpoints use different error envelopes, so a few shapes
// are tried before falling back to the raw body.
func ParseError(resp *resty.Response) error {
	statusCode := resp.StatusCode()

	var errResp ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Code != "" {
		return &APIError{
			Code:       errResp.Code,
			Message:    errResp.Message,
			StatusCode: statusCode,
			Details:    errResp.Details,
		}
	}

	// Auth-style envelope: {"error": "...", "error_description": "..."}
	var authErr struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
		Msg         string `json:"msg"`
	}
	if err := json.Unmarshal(resp.Body(), &authErr); err == nil {
		if authErr.Error != "" {
			return &APIError{
				Code:       authErr.Error,
				Message:    authErr.Description,
				StatusCode: statusCode,
			}
		}
		if authErr.Msg != "" {
			return &APIError{
				Code:       "auth_error",
				Message:    authErr.Msg,
				StatusCode: statusCode,
			}
		}
	}

	// Table-style envelope: {"message": "...", "code": "...", "hint": "..."}
	var tableErr struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Hint    string `json:"hint"`
	}
	if err := json.Unmarshal(resp.Body(), &tableErr); err == nil && tableErr.Message != "" {
		apiErr := &APIError{
			Code:       tableErr.Code,
			Message:    tableErr.Message,
			StatusCode: statusCode,
		}
		if tableErr.Hint != "" {
			apiErr.Details = map[string]interface{}{"hint": tableErr.Hint}
		}
		return apiErr
	}

	return &APIError{
		Code:       "unknown_error",
		Message:    string(resp.Body()),
		StatusCode: statusCode,
	}
}

// IsUnauthorized checks if error is due to missing/invalid authentication
func IsUnauthorized(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsForbidden checks if error is due to insufficient permissions
func IsForbidden(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode == 403
	}
	return false
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsConflict checks if error is due to a uniqueness or state conflict
func IsConflict(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode == 409
	}
	return false
}

// IsServerError checks if error is due to server error (5xx)
func IsServerError(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode >= 500
	}
	return false
}

// CheckResponse checks if response is successful and returns error if not
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return ParseError(resp)
	}

	return nil
}

// ParseResponseBody parses response body into target interface
func ParseResponseBody(body []byte, target interface{}) error {
	return json.Unmarshal(body, target)
}
