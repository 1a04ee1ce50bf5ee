package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Meta carries the status block every response shares.
type Meta struct {
	Status   string `json:"status"`
	HTTPCode int    `json:"http_code"`
	Method   string `json:"method"`
	Message  string `json:"message,omitempty"`
}

// Data wraps the payload of a response.
type Data struct {
	Body interface{} `json:"body"`
}

// Envelope is the single wire shape used for every response, success and
// error alike. The HTTP status code always mirrors Meta.HTTPCode.
type Envelope struct {
	Meta Meta `json:"meta"`
	Data Data `json:"data"`
}

func respond(c *gin.Context, code int, status, message string, body interface{}) {
	c.JSON(code, Envelope{
		Meta: Meta{
			Status:   status,
			HTTPCode: code,
			Method:   c.Request.Method,
			Message:  message,
		},
		Data: Data{Body: body},
	})
}

// Success sends a 200 response with the given body.
func Success(c *gin.Context, body interface{}) {
	respond(c, http.StatusOK, "OK", "", body)
}

// Created sends a 201 response with the given body.
func Created(c *gin.Context, body interface{}) {
	respond(c, http.StatusCreated, "Created", "", body)
}

// Error sends an error response with the given code and message.
func Error(c *gin.Context, code int, message string) {
	respond(c, code, "Error", message, nil)
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}

// Conflict sends a 409 response.
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	Error(c, http.StatusConflict, message)
}

// InternalError sends a 500 response. Internal detail stays in the logs.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(c, http.StatusInternalServerError, message)
}
