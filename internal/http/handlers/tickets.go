package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"ticketzone/internal/domain"
	"ticketzone/internal/domain/models"
	"ticketzone/internal/http/middleware"
	"ticketzone/internal/repositories"

	"github.com/gin-gonic/gin"
)

// ticketFilterFromQuery reads the listing query string. Bad page or limit
// values fall back to defaults; a bad isAdvertised is rejected.
func ticketFilterFromQuery(c *gin.Context) (repositories.TicketFilter, error) {
	f := repositories.TicketFilter{
		VendorEmail:   domain.NormalizeEmail(c.Query("vendorEmail")),
		TransportType: strings.ToLower(strings.TrimSpace(c.Query("transportType"))),
		From:          c.Query("from"),
		To:            c.Query("to"),
		PriceSort:     c.Query("sort"),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st := models.TicketStatus(strings.ToLower(raw))
		if !st.Valid() {
			return f, domain.ValidationError{Field: "status", Msg: "must be pending, accepted or rejected"}
		}
		f.Status = st
	}

	switch strings.ToLower(strings.TrimSpace(c.Query("isAdvertised"))) {
	case "":
	case "true":
		v := true
		f.IsAdvertised = &v
	case "false":
		v := false
		f.IsAdvertised = &v
	default:
		return f, domain.ValidationError{Field: "isAdvertised", Msg: "must be true or false"}
	}

	return f.Normalize(), nil
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func (h Handler) CreateTicket(c *gin.Context) {
	var in models.TicketInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Tickets
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handler) ListTickets(c *gin.Context) {
	f, err := ticketFilterFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	page, err := h.Tickets.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handler) ListTicketsByStatus(c *gin.Context) {
	f, err := ticketFilterFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	page, err := h.Tickets.ListByStatus(c.Request.Context(), c.Param("status"), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handler) ListTicketsByVendor(c *gin.Context) {
	f, err := ticketFilterFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	page, err := h.Tickets.ListByVendor(c.Request.Context(), c.Param("vendorEmail"), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handler) GetTicket(c *gin.Context) {
	t, err := h.Tickets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h Handler) AdvertisedCount(c *gin.Context) {
	n, err := h.Tickets.AdvertisedCount(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"advertisedCount": n})
}

func (h Handler) UpdateTicket(c *gin.Context) {
	var u models.TicketUpdate
	if !BindJSONOrError(c, &u) {
		return
	}
	svc := h.Tickets
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.Update(c.Request.Context(), c.Param("id"), u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateVendorTickets edits the caller's own tickets; the route only admits
// the vendor named in the path.
func (h Handler) UpdateVendorTickets(c *gin.Context) {
	var u models.VendorTicketUpdate
	if !BindJSONOrError(c, &u) {
		return
	}
	svc := h.Tickets
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.UpdateByVendor(c.Request.Context(), principal(c).Email, u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handler) DeleteTicket(c *gin.Context) {
	svc := h.Tickets
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.Delete(c.Request.Context(), principal(c).Email, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handler) DeleteVendorTickets(c *gin.Context) {
	svc := h.Tickets
	svc.RequestID = middleware.GetRequestID(c)

	res, err := svc.DeleteByVendor(c.Request.Context(), c.Param("vendorEmail"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
