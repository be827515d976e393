package catalog

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

type errorBody struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP status codes. Internal
// details are logged, never echoed to the client.
func writeError(c *gin.Context, err error) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, errorBody{Error: notFound.Error()})
		return
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, errorBody{Error: conflict.Error()})
		return
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, errorBody{
			Error:      "validation failed",
			Violations: validation.Violations,
		})
		return
	}

	log.Printf("[ERROR] %s %s: %v (request_id=%s)", c.Request.Method, c.Request.URL.Path, err, RequestIDFrom(c))
	c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
}

// writeBindError reports a request body that could not be decoded.
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
}

// writeInvalidParam reports a bad query parameter as a single violation.
func writeInvalidParam(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, errorBody{
		Error:      "validation failed",
		Violations: []domain.Violation{{Field: field, Message: message}},
	})
}
