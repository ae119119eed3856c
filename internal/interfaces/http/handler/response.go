package handler

import "net/http"

// Response is the standard API envelope
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries a machine-readable code alongside the message
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewErrorResponse wraps an error code and message in an error envelope
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

var statusByCode = map[string]int{
	"NOT_FOUND":               http.StatusNotFound,
	"ITEM_NOT_FOUND":          http.StatusNotFound,
	"INVALID_INPUT":           http.StatusBadRequest,
	"INVALID_QUANTITY":        http.StatusBadRequest,
	"NO_ACTIVE_BRANCH":        http.StatusBadRequest,
	"UNAUTHORIZED":            http.StatusUnauthorized,
	"NO_OPERATOR":             http.StatusUnauthorized,
	"FORBIDDEN":               http.StatusForbidden,
	"INVALID_STATE":           http.StatusConflict,
	"EMPTY_CART":              http.StatusConflict,
	"ALREADY_CLOCKED_IN":      http.StatusConflict,
	"NOT_CLOCKED_IN":          http.StatusConflict,
	"ALREADY_IN_PROGRESS":     http.StatusConflict,
	"NO_ACTIVE_SESSION":       http.StatusConflict,
	"NOT_INITIALIZED":         http.StatusConflict,
	"RECONCILIATION_REQUIRED": http.StatusConflict,
}

// StatusForCode maps a domain error code to an HTTP status
func StatusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
