// Package commons holds the envelope every ledger endpoint returns.
package commons

// Response wraps an API payload. Data is a pointer so error responses omit
// the field instead of emitting a zero value, and Errors carries the
// individual validation messages behind a "validation failed" Message.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}
