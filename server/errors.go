package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/schema"
	"github.com/existflow/taskmaster/internal/store"
)

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []fieldErrorResponse `json:"fields,omitempty"`
}

func kindName(err error) string {
	switch {
	case errors.Is(err, schema.ErrRequiredField):
		return "required"
	case errors.Is(err, schema.ErrInvalidEnum):
		return "invalid_enum"
	case errors.Is(err, store.ErrUnknownCategory):
		return "unknown_category"
	default:
		return "invalid_value"
	}
}

// respondError maps core errors to status codes
func respondError(c echo.Context, err error) error {
	var ve *schema.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: err.Error()}
		for _, f := range ve.Fields {
			resp.Fields = append(resp.Fields, fieldErrorResponse{
				Field:   f.Field,
				Kind:    kindName(f.Kind),
				Message: f.Message,
			})
		}
		return c.JSON(http.StatusUnprocessableEntity, resp)
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrAmbiguousID):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", logger.F("uri", c.Request().RequestURI), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
