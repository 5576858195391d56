package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketzone/internal/auth"
	"ticketzone/internal/cache"
	intconfig "ticketzone/internal/config"
	router "ticketzone/internal/http"
	"ticketzone/internal/http/handlers"
	"ticketzone/internal/metrics"
	"ticketzone/internal/notify"
	"ticketzone/internal/payment"
	"ticketzone/internal/repositories"
	"ticketzone/internal/services"
	"ticketzone/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	env := intconfig.LoadEnv()
	utils.SetupLogger(env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx := context.Background()

	db, err := intconfig.ConnectDB(ctx, env)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	if err := repositories.EnsureSchema(ctx, db); err != nil {
		logrus.WithError(err).Fatal("schema setup failed")
	}

	tickets := repositories.NewTicketRepository(db)
	bookings := repositories.NewBookingRepository(db)
	users := repositories.NewUserRepository(db)
	settlement := repositories.NewSettlementRepository(db)

	// Left nil unless Redis is configured; a typed nil would look like a cache.
	var roleCache services.RoleCache
	if env.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, env.RedisAddr)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, role cache disabled")
		} else {
			defer client.Close()
			roleCache = cache.NewRoleCache(client, env.RoleCacheTTL)
			logrus.WithField("addr", env.RedisAddr).Info("role cache enabled")
		}
	}

	var publisher notify.Publisher = notify.Nop{}
	if env.AMQPURL != "" {
		p, err := notify.NewAMQPPublisher(env.AMQPURL, notify.DefaultExchange)
		if err != nil {
			logrus.WithError(err).Warn("rabbitmq unavailable, booking events disabled")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	if env.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is empty, every protected route will reject")
	}
	if env.StripeSecretKey == "" {
		logrus.Warn("STRIPE_SECRET_KEY is empty, checkout will fail")
	}

	m := metrics.New()

	hd := handlers.Handler{
		Tickets:  services.TicketService{Tickets: tickets},
		Bookings: services.BookingService{Bookings: bookings, Tickets: tickets},
		Users:    services.UserService{Users: users, Cache: roleCache},
		Payments: services.PaymentService{
			Bookings:   bookings,
			Tickets:    tickets,
			Settlement: settlement,
			Provider:   payment.NewStripeProvider(env.StripeSecretKey),
			Publisher:  publisher,
			Metrics:    m,
			SiteDomain: env.SiteDomain,
		},
		Docs: services.DocsService{Bookings: bookings, Tickets: tickets},
		DB:   db,
	}

	r := router.NewRouter(env, router.Deps{
		Handler:  hd,
		Verifier: auth.NewJWTVerifier(env.JWTSecret, time.Hour),
		Roles:    services.RoleResolver{Users: users, Cache: roleCache},
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      40 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", env.AppAddr).Info("Ticket Zone server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
		return
	}

	logrus.Info("server stopped")
}
