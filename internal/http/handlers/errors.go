package handlers

import (
	"net/http"

	"ticketzone/internal/domain"
	"ticketzone/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError writes the standard error envelope.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      true,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case domain.IsUnauthenticated(err):
		respondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error())
	case domain.IsUpstream(err):
		logrus.WithField("request_id", middleware.GetRequestID(c)).WithError(err).Error("upstream failure")
		respondError(c, http.StatusBadGateway, "upstream service unavailable")
	default:
		logrus.WithField("request_id", middleware.GetRequestID(c)).WithError(err).Error("internal error")
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
