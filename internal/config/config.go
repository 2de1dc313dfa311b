package config

import (
	"os"
	"strconv"
)

// DemoMode is an explicit, named policy for serving fallback data. It used
// to be inferred from scattered try/catch branches; now it is configuration.
type DemoMode string

const (
	// DemoAuto falls back to canned data when a dependency is unconfigured
	// or unreachable. This is the graceful-degradation product behavior.
	DemoAuto DemoMode = "auto"
	// DemoOn always serves canned data, for demos and local dev.
	DemoOn DemoMode = "on"
	// DemoOff surfaces failures instead of masking them.
	DemoOff DemoMode = "off"
)

type Config struct {
	Port        string
	DatabaseURL string
	SiteURL     string

	BackendURL    string
	BackendAPIKey string

	RedisAddr string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	MailHost   string
	MailPort   int
	MailUser   string
	MailPass   string
	MailFrom   string
	SalesInbox string

	AdminPassword string
	LeadsFile     string

	DemoMode  DemoMode
	AllowSkip bool
	LogLevel  string
	LogFormat string
}

// Load reads the environment. A missing credential never fails startup;
// the corresponding feature degrades instead.
func Load() Config {
	mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))

	demo := DemoMode(envOr("DEMO_MODE", string(DemoAuto)))
	switch demo {
	case DemoAuto, DemoOn, DemoOff:
	default:
		demo = DemoAuto
	}

	return Config{
		Port:        envOr("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SiteURL:     envOr("SITE_URL", "http://localhost:3000"),

		BackendURL:    os.Getenv("BACKEND_URL"),
		BackendAPIKey: os.Getenv("BACKEND_API_KEY"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		RabbitUser: envOr("RABBITMQ_USER", "guest"),
		RabbitPass: envOr("RABBITMQ_PASS", "guest"),
		RabbitHost: os.Getenv("RABBITMQ_HOST"),
		RabbitPort: envOr("RABBITMQ_PORT", "5672"),

		MailHost:   os.Getenv("MAIL_HOST"),
		MailPort:   mailPort,
		MailUser:   os.Getenv("MAIL_USER"),
		MailPass:   os.Getenv("MAIL_PASS"),
		MailFrom:   envOr("MAIL_FROM", "no-reply@gemplatform.io"),
		SalesInbox: os.Getenv("SALES_INBOX"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LeadsFile:     envOr("LEADS_FILE", "leads.json"),

		DemoMode:  demo,
		AllowSkip: os.Getenv("ONBOARDING_ALLOW_SKIP") == "true",
		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "json"),
	}
}

// Fallbacks reports whether demo fallbacks may be served.
func (m DemoMode) Fallbacks() bool {
	return m != DemoOff
}

// Forced reports whether canned data should be served unconditionally.
func (m DemoMode) Forced() bool {
	return m == DemoOn
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
