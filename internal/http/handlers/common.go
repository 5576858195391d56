package handlers

import (
	"database/sql"
	"net/http"

	"ticketzone/internal/domain"
	"ticketzone/internal/http/middleware"
	"ticketzone/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds the services behind the HTTP routes. Each request copies the
// service it needs and stamps its request id on the copy.
type Handler struct {
	Tickets  services.TicketService
	Bookings services.BookingService
	Users    services.UserService
	Payments services.PaymentService
	Docs     services.DocsService
	DB       *sql.DB
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// principal returns the authenticated caller. Routes that reach a handler
// calling this always run Authenticate first.
func principal(c *gin.Context) domain.Principal {
	if p := middleware.PrincipalFrom(c); p != nil {
		return *p
	}
	return domain.Principal{}
}
