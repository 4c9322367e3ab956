package httpserver

import (
	"errors"
	"net/http"

	"optic-storefront/internal/domain"
	"optic-storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const cartPath = "/cart"

// writeError maps service errors onto HTTP responses. Unknown errors are logged
// and reported as 500 without detail.
func writeError(c *gin.Context, logger *log.Entry, err error) {
	if field, ok := checkout.IsMissingField(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field", "field": field})
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.Header("Location", cartPath)
		c.JSON(http.StatusSeeOther, gin.H{"error": "cart is empty", "redirect": cartPath})
	case errors.Is(err, checkout.ErrInvalidLink):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
