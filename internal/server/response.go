package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"followcheck/core"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
	Success bool   `json:"success"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// fail maps err to a status code. Input problems are the caller's to fix and
// are logged at warn; anything unrecognized is a 500.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var details any

	var missing *core.MissingInputError
	var parseErr *core.ParseError

	switch {
	case errors.As(err, &missing):
		status = http.StatusBadRequest
		details = gin.H{"list": missing.List.String()}
	case errors.As(err, &parseErr):
		status = http.StatusUnprocessableEntity
		details = gin.H{"list": parseErr.List.String(), "document": parseErr.Document}
	case errors.Is(err, errTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadUpload):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.log.Error("analyze failed", zap.Error(err))
		c.JSON(status, Envelope{Error: "internal server error"})
		return
	}

	s.log.Warn("analyze rejected", zap.Int("status", status), zap.Error(err))
	c.JSON(status, Envelope{Error: err.Error(), Details: details})
}
