package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"reparto_tracker/internal/apperr"
)

// respondError writes the status and body for err. Unexpected failures are logged
// with their cause and answered with a generic message.
func respondError(c *gin.Context, err error, action string) {
	var (
		ve *apperr.ValidationError
		te *apperr.TransitionError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "violations": ve.Violations})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &te):
		c.JSON(http.StatusConflict, gin.H{"error": te.Error(), "from": te.From, "to": te.To})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "A record with the same unique value already exists"})
	default:
		logrus.WithError(err).WithField("req_id", c.GetString("req_id")).Error("Failed to " + action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// paramID parses a numeric path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name, entity string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + entity + " ID format."})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into dst, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return false
	}
	return true
}
