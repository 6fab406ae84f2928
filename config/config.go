package config

import (
	"os"
)

// Config carries every recognized environment option. Optional
// capabilities (storage, mail) degrade rather than fail when absent.
type Config struct {
	Port string
	Env  string

	// Payment gateway
	RazorpayKeyID        string
	RazorpayKeySecret    string
	OrderCreationEnabled bool

	// Blob storage
	StorageEnabled bool
	S3Bucket       string
	S3Endpoint     string

	// Mail transport
	MailEnabled bool
	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	EmailFrom   string

	// Ledger timestamp zone
	Timezone string
}

const defaultRazorpayKeyID = "rzp_test_R5VNE5JlgrZGle"

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		Env:               getEnv("APP_ENV", "production"),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", defaultRazorpayKeyID),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		S3Bucket:          getEnv("S3_BUCKET", "registrations"),
		S3Endpoint:        os.Getenv("AWS_S3_ENDPOINT"),
		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		Timezone:          getEnv("TIMEZONE", "Asia/Kolkata"),
	}

	cfg.EmailFrom = getEnv("EMAIL_FROM", cfg.SMTPUser)

	// Server-created orders need the key secret for both the gateway
	// call and signature verification.
	cfg.OrderCreationEnabled = getEnv("ORDER_CREATION_ENABLED", "true") == "true" &&
		cfg.RazorpayKeySecret != ""

	cfg.StorageEnabled = os.Getenv("AWS_REGION") != "" || cfg.S3Endpoint != ""
	cfg.MailEnabled = cfg.SMTPUser != "" && cfg.SMTPPass != ""

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
