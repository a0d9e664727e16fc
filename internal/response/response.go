package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cms-admin/internal/apperrors"
	"cms-admin/internal/logger"
)

const (
	MessageBadRequest  = "Invalid request parameters."
	MessageNotFound    = "Resource not found."
	MessageServerError = "Internal server error."
)

// Envelope is the body of a successful response
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorEnvelope is the body of a failed response
type ErrorEnvelope struct {
	Status  bool     `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// Success writes a 200 envelope. A nil data payload is sent as an empty object.
func Success(c *gin.Context, message string, data any) {
	SuccessWithCode(c, http.StatusOK, message, data)
}

// Created writes a 201 envelope
func Created(c *gin.Context, message string, data any) {
	SuccessWithCode(c, http.StatusCreated, message, data)
}

// SuccessWithCode writes a success envelope with the given status code
func SuccessWithCode(c *gin.Context, code int, message string, data any) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(code, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// Failure classifies err and writes the matching error envelope
func Failure(c *gin.Context, err error) {
	status, body := FromError(err)

	log := logger.FromContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	c.JSON(status, body)
}

// FromError maps an error to its HTTP status and envelope
func FromError(err error) (int, ErrorEnvelope) {
	body := ErrorEnvelope{Status: false, Errors: apperrors.Messages(err)}

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		body.Message = MessageBadRequest
		return http.StatusBadRequest, body
	case apperrors.KindNotFound:
		body.Message = MessageNotFound
		return http.StatusNotFound, body
	default:
		body.Message = MessageServerError
		return http.StatusInternalServerError, body
	}
}
