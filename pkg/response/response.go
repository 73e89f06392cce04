package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// envelope is the standard JSON response shape.
type envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// paginatedEnvelope wraps list responses with pagination metadata.
type paginatedEnvelope struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Data: data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Error: message})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, envelope{Error: message})
}

// Paginated writes a 200 response with pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, paginatedEnvelope{
		Data:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Error maps a domain error to the appropriate HTTP status code.
func Error(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		stateErr      *domain.InvalidStateError
		conflictErr   *domain.ConflictError
		forbiddenErr  *domain.ForbiddenError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, envelope{Error: validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, envelope{Error: notFoundErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, envelope{Error: stateErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, envelope{Error: conflictErr.Message})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, envelope{Error: forbiddenErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, envelope{Error: "internal server error"})
	}
}
