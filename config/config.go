package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config collects every runtime setting in one place; handlers receive it at
// construction time and never read the environment themselves.
type Config struct {
	Port           string
	AllowedOrigins []string

	GCSBucket          string
	GCSCredentialsFile string

	ResendAPIKey string

	// Sender and recipient of the business notification, plus the flag
	// gating customer confirmations. Injected, never hardcoded.
	EmailFrom                string
	BusinessEmail            string
	SendCustomerConfirmation bool

	// Outbound-call hardening applied to storage and email.
	CallTimeout    time.Duration
	MaxCallRetries int

	LogFile string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "")),

		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("CREDENTIALS_FILE_LOCATION", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),

		EmailFrom:                getEnv("EMAIL_FROM", ""),
		BusinessEmail:            getEnv("BUSINESS_EMAIL", ""),
		SendCustomerConfirmation: getEnvBool("SEND_CUSTOMER_CONFIRMATION", false),

		CallTimeout:    getEnvDuration("OUTBOUND_CALL_TIMEOUT", 30*time.Second),
		MaxCallRetries: getEnvInt("OUTBOUND_CALL_RETRIES", 3),

		LogFile: getEnv("LOG_FILE", ""),
	}
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	switch {
	case c.GCSBucket == "":
		return fmt.Errorf("GCS_BUCKET is required")
	case c.ResendAPIKey == "":
		return fmt.Errorf("RESEND_API_KEY is required")
	case c.EmailFrom == "":
		return fmt.Errorf("EMAIL_FROM is required")
	case c.BusinessEmail == "":
		return fmt.Errorf("BUSINESS_EMAIL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
