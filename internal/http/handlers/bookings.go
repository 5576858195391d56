package handlers

import (
	"net/http"

	"ticketzone/internal/domain/models"
	"ticketzone/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func (h Handler) CreateBooking(c *gin.Context) {
	var in models.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Bookings
	svc.RequestID = middleware.GetRequestID(c)

	b, err := svc.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"acknowledged":  true,
		"insertedId":    b.ID,
		"paymentStatus": b.PaymentStatus,
		"booking":       b,
	})
}

// ListVendorBookings returns bookings against the calling vendor's tickets.
func (h Handler) ListVendorBookings(c *gin.Context) {
	list, err := h.Bookings.ListForVendor(c.Request.Context(), principal(c).Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handler) GetBooking(c *gin.Context) {
	b, err := h.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h Handler) BookingRevenue(c *gin.Context) {
	rev, err := h.Bookings.Revenue(c.Request.Context(), principal(c).Email, c.Param("paymentStatus"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}

func (h Handler) ListBookingsByEmail(c *gin.Context) {
	list, err := h.Bookings.ListByUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type bookingStatusBody struct {
	Status string `json:"status"`
}

func (h Handler) UpdateBookingStatus(c *gin.Context) {
	var body bookingStatusBody
	if !BindJSONOrError(c, &body) {
		return
	}
	svc := h.Bookings
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.UpdateStatus(c.Request.Context(), principal(c).Email, c.Param("id"), body.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DownloadETicket streams the PDF inline. Ownership is checked by the service
// once the booking is loaded.
func (h Handler) DownloadETicket(c *gin.Context) {
	svc := h.Docs
	svc.RequestID = middleware.GetRequestID(c)

	pdfBytes, filename, err := svc.GenerateETicket(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
