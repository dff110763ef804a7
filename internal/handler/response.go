package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdlike/internal/engine"
	"crowdlike/internal/store"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// EngineError maps the typed simulation errors onto HTTP statuses:
// validation 400, unknown targets 404, rejected-but-well-formed 422.
func EngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidAmount):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, store.ErrAgentNotFound), errors.Is(err, engine.ErrUnknownAsset):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrInsufficientPosition),
		errors.Is(err, engine.ErrCapacityExceeded),
		errors.Is(err, engine.ErrInsufficientBalance):
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
