package api

import (
	stdhttp "net/http"

	"ticketzone/internal/access"
	"ticketzone/internal/auth"
	intconfig "ticketzone/internal/config"
	"ticketzone/internal/domain"
	h "ticketzone/internal/http/handlers"
	"ticketzone/internal/http/middleware"
	"ticketzone/internal/metrics"
	"ticketzone/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps is everything the router needs beyond the environment.
type Deps struct {
	Handler  h.Handler
	Verifier auth.Verifier
	Roles    services.RoleResolver
	Metrics  *metrics.Metrics
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Metrics(deps.Metrics),
	)
	if env.RequestTimeout > 0 {
		r.Use(middleware.Timeout(env.RequestTimeout))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      true,
			"message":    "route not found",
			"request_id": middleware.GetRequestID(c),
		})
	})

	g := guards{authn: middleware.Authenticate(deps.Verifier, roleLookup(deps.Roles))}
	hd := deps.Handler

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/db-check", hd.DBCheck)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	ticket := r.Group("/ticket")
	{
		ticket.POST("", g.on(access.CreateTicket, nil, hd.CreateTicket)...)
		ticket.GET("", g.on(access.ListTickets, nil, hd.ListTickets)...)
		ticket.GET("/status/:status", g.on(access.ListTicketsByStatus, nil, hd.ListTicketsByStatus)...)
		ticket.GET("/vendor/:vendorEmail", g.on(access.ListTicketsByVendor, nil, hd.ListTicketsByVendor)...)
		ticket.GET("/dashboard/advertised-count", g.on(access.AdvertisedCount, nil, hd.AdvertisedCount)...)
		ticket.GET("/:id", g.on(access.ReadTicket, nil, hd.GetTicket)...)
		ticket.PATCH("/vendor/:vendorEmail", g.on(access.UpdateVendorTickets, middleware.PathOwner("vendorEmail"), hd.UpdateVendorTickets)...)
		ticket.PATCH("/:id", g.on(access.UpdateTicket, nil, hd.UpdateTicket)...)
		ticket.DELETE("/vendor/:vendorEmail", g.on(access.DeleteVendorTickets, nil, hd.DeleteVendorTickets)...)
		ticket.DELETE("/:id", g.on(access.DeleteTicket, nil, hd.DeleteTicket)...)
	}

	bookings := r.Group("/bookings")
	{
		bookings.GET("", g.on(access.ListBookings, nil, hd.ListVendorBookings)...)
		bookings.GET("/unique/:id", g.on(access.ReadBooking, nil, hd.GetBooking)...)
		// ownership needs the booking row, the service checks it
		bookings.GET("/unique/:id/e-ticket", g.authOnly(hd.DownloadETicket)...)
		bookings.GET("/revenue/:paymentStatus", g.on(access.BookingRevenue, nil, hd.BookingRevenue)...)
		bookings.GET("/:email", g.on(access.ListBookingsByEmail, middleware.PathOwner("email"), hd.ListBookingsByEmail)...)
		bookings.POST("", g.on(access.CreateBooking, nil, hd.CreateBooking)...)
		bookings.PATCH("/:id", g.on(access.UpdateBookingStatus, nil, hd.UpdateBookingStatus)...)
	}

	users := r.Group("/users")
	{
		users.GET("", g.on(access.ListUsers, nil, hd.ListUsers)...)
		users.GET("/:email", g.on(access.ReadUser, nil, hd.GetUser)...)
		users.PATCH("/:id", g.on(access.UpdateUserRole, nil, hd.UpdateUserRole)...)
		users.POST("", g.on(access.CreateUser, nil, hd.CreateUser)...)
	}

	r.POST("/payment-checkout-session", g.on(access.CreateCheckout, nil, hd.CreateCheckoutSession)...)
	r.PATCH("/payment-success", g.on(access.ConfirmPayment, nil, hd.PaymentSuccess)...)

	return r
}

type guards struct {
	authn gin.HandlerFunc
}

// on builds the handler chain for op: public operations run bare, the rest
// authenticate and then consult the access table.
func (g guards) on(op access.Operation, owner middleware.OwnerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	if access.Public(op) {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{g.authn, middleware.Authorize(op, owner), handler}
}

func (g guards) authOnly(handler gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.authn, handler}
}

func roleLookup(resolver services.RoleResolver) middleware.RoleLookup {
	return func(c *gin.Context, email string) (domain.Role, error) {
		rr := resolver
		rr.RequestID = middleware.GetRequestID(c)
		return rr.Resolve(c.Request.Context(), email)
	}
}
