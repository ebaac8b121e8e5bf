// Package config loads application configuration from the environment.
// File: config/config.go
package config

import (
	"os"
	"strings"
)

// Config carries every environment-supplied setting the application uses.
// Gateway and storage credentials are optional: without gateway keys the
// payment service runs in deterministic mock-order mode, and without a
// bucket uploads fall back to the local filesystem.
type Config struct {
	Port           string
	Env            string
	ApplicationURL string
	DatabaseURL    string
	SessionSecret  string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	AdminEmails []string

	S3Bucket  string
	AWSRegion string
}

// FromEnv reads the configuration from environment variables, applying
// local-development defaults where a value is safe to default.
func FromEnv() Config {
	var c Config

	c.Port = strings.TrimSpace(os.Getenv("PORT"))
	if c.Port == "" {
		c.Port = "8080"
	}

	c.Env = strings.TrimSpace(os.Getenv("ENV"))

	c.ApplicationURL = strings.TrimRight(strings.TrimSpace(os.Getenv("APPLICATION_URL")), "/")
	if c.ApplicationURL == "" {
		c.ApplicationURL = "http://localhost:" + c.Port
	}

	c.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	c.SessionSecret = strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if c.SessionSecret == "" {
		c.SessionSecret = "change-me"
	}

	c.RazorpayKeyID = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_ID"))
	c.RazorpayKeySecret = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET"))
	c.RazorpayWebhookSecret = strings.TrimSpace(os.Getenv("RAZORPAY_WEBHOOK_SECRET"))

	for _, email := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			c.AdminEmails = append(c.AdminEmails, email)
		}
	}

	c.S3Bucket = strings.TrimSpace(os.Getenv("S3_BUCKET"))
	c.AWSRegion = strings.TrimSpace(os.Getenv("AWS_REGION"))

	return c
}

// IsAdminEmail reports whether the given address is on the admin allowlist.
// Comparison is case-insensitive.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

// GatewayConfigured reports whether real Razorpay credentials are present.
func (c Config) GatewayConfigured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}
