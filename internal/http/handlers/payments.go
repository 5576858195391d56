package handlers

import (
	"net/http"
	"strings"

	"ticketzone/internal/http/middleware"
	"ticketzone/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) CreateCheckoutSession(c *gin.Context) {
	var in services.CheckoutInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Payments
	svc.RequestID = middleware.GetRequestID(c)

	sess, err := svc.Checkout(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type paymentSuccessBody struct {
	SessionID string `json:"sessionId"`
}

// PaymentSuccess settles the session named by ?session_id= or {"sessionId"}.
func (h Handler) PaymentSuccess(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" && c.Request.Body != nil && c.Request.ContentLength != 0 {
		var body paymentSuccessBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		sessionID = body.SessionID
	}

	svc := h.Payments
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.Settle(c.Request.Context(), sessionID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
