package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Response defines the standard API response envelope.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    Meta       `json:"meta"`
}

// ErrorInfo provides details for error responses.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains request-scoped metadata. Count is set on list responses.
type Meta struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
	Count     *int   `json:"count,omitempty"`
}

func newMeta(c *gin.Context) Meta {
	id := c.GetString(RequestIDKey)
	if id == "" {
		id = uuid.New().String()[:8]
	}
	return Meta{RequestID: id, Timestamp: NowISO()}
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Code: status, Message: message, Data: data, Meta: newMeta(c)})
}

// Created is Success with 201.
func Created(c *gin.Context, message string, data any) {
	Success(c, http.StatusCreated, message, data)
}

// SuccessList writes a 200 list response carrying the item count in meta.
func SuccessList(c *gin.Context, message string, data any, count int) {
	meta := newMeta(c)
	meta.Count = &count
	c.JSON(http.StatusOK, Response{Success: true, Code: http.StatusOK, Message: message, Data: data, Meta: meta})
}

// Error writes an error response. errCode is the machine readable code
// clients switch on.
func Error(c *gin.Context, status int, errCode, message string) {
	c.JSON(status, Response{
		Code:    status,
		Message: message,
		Error:   &ErrorInfo{Code: errCode, Message: message},
		Meta:    newMeta(c),
	})
}

// BadRequest is a shorthand for a 400 INVALID_INPUT error.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, ErrInvalidInput.Error(), message)
}

// InternalError is a shorthand for a 500 with a generic message.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

// NowISO returns the current UTC time in RFC 3339 format.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
