package apierror

import "net/http"

type (
	// An Error represents the error format that can be rendered by the server.
	Error struct {
		HTTPCode int `json:"-"`
		Detail   any `json:"detail"`
	}

	// A FieldError describes why a request field has been rejected.
	FieldError struct {
		Location []string `json:"loc"`
		Message  string   `json:"msg"`
		Type     string   `json:"type"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if apierr, ok := err.(*Error); ok {
		return apierr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new Error with the given code and detail message.
func New(code int, detail string) *Error {
	return &Error{HTTPCode: code, Detail: detail}
}

// NotFound returns a new 404 Error with the given detail message.
func NotFound(detail string) *Error {
	return New(http.StatusNotFound, detail)
}

// Validation returns a new 422 Error listing the rejected fields.
func Validation(fields ...FieldError) *Error {
	return &Error{HTTPCode: http.StatusUnprocessableEntity, Detail: fields}
}

// Error implements error interface.
func (e *Error) Error() string {
	switch detail := e.Detail.(type) {
	case string:
		return detail
	case []FieldError:
		if len(detail) > 0 {
			return detail[0].Message
		}
	}
	return http.StatusText(e.HTTPCode)
}
