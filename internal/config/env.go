package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret       string
	StripeSecretKey string
	SiteDomain      string

	RedisAddr    string
	RoleCacheTTL time.Duration
	AMQPURL      string

	CORSAllowedOrigins []string
	LogLevel           string
	RequestTimeout     time.Duration
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return envFrom(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "127.0.0.1:3306")
	v.SetDefault("DB_NAME", "ticket_zone")
	v.SetDefault("SITE_DOMAIN", "http://localhost:5173")
	v.SetDefault("ROLE_CACHE_TTL", 10*time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")
}

func envFrom(v *viper.Viper) Env {
	appAddr := strings.TrimSpace(v.GetString("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":" + strings.TrimPrefix(strings.TrimSpace(v.GetString("PORT")), ":")
	}

	var origins []string
	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(v.GetString("GIN_MODE")),
		DBUser:             v.GetString("DB_USER"),
		DBPass:             v.GetString("DB_PASS"),
		DBHost:             v.GetString("DB_HOST"),
		DBName:             v.GetString("DB_NAME"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		StripeSecretKey:    v.GetString("STRIPE_SECRET_KEY"),
		SiteDomain:         strings.TrimRight(v.GetString("SITE_DOMAIN"), "/"),
		RedisAddr:          strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RoleCacheTTL:       v.GetDuration("ROLE_CACHE_TTL"),
		AMQPURL:            strings.TrimSpace(v.GetString("AMQP_URL")),
		CORSAllowedOrigins: origins,
		LogLevel:           v.GetString("LOG_LEVEL"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
	}
}
