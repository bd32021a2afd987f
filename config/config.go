package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Dispatch modes for the contact endpoint.
const (
	DispatchAsync = "async" // respond immediately, send in the background
	DispatchSync  = "sync"  // respond only after the transport acknowledges
)

// Email transport providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

type Config struct {
	Port        string
	FrontendURL string
	SiteName    string
	Version     string
	// Email transport selection
	EmailProvider string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Resend Configuration
	ResendAPIKey    string
	ResendFromEmail string
	// Contact form behavior
	ContactEmailTo      string
	ContactDispatchMode string
	SendTimeout         time.Duration
}

// devRecipientFallback keeps local setups working without a full .env.
// In release mode an unset CONTACT_EMAIL_TO leaves the contact endpoint
// unconfigured instead of silently mailing a hardcoded address.
const devRecipientFallback = "dev-inbox@localhost"

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if absent)
	_ = godotenv.Load()

	recipientFallback := ""
	if os.Getenv("GIN_MODE") != "release" {
		recipientFallback = devRecipientFallback
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		SiteName:    getEnv("SITE_NAME", "Portfolio Website"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		// Transport selection
		EmailProvider: strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderSMTP)),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		// Resend Configuration
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		ResendFromEmail: getEnv("RESEND_FROM_EMAIL", ""),
		// Contact form behavior
		ContactEmailTo:      getEnv("CONTACT_EMAIL_TO", recipientFallback),
		ContactDispatchMode: strings.ToLower(getEnv("CONTACT_DISPATCH_MODE", DispatchAsync)),
		SendTimeout:         time.Duration(getEnvInt("SEND_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	// Gmail and most relays expect the login identity as the sender
	if cfg.SMTPFromEmail == "" {
		cfg.SMTPFromEmail = cfg.SMTPUsername
	}

	if cfg.ContactDispatchMode != DispatchAsync && cfg.ContactDispatchMode != DispatchSync {
		log.Printf("WARNING: unknown CONTACT_DISPATCH_MODE %q, falling back to %q", cfg.ContactDispatchMode, DispatchAsync)
		cfg.ContactDispatchMode = DispatchAsync
	}

	if cfg.ContactEmailTo == "" {
		log.Println("WARNING: CONTACT_EMAIL_TO is not set. Contact form will be unavailable.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
