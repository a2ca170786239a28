package types

import "time"

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Auth
	JWTSecret string `envconfig:"JWT_SECRET"`

	// Object storage
	StorageBucket             string `envconfig:"STORAGE_BUCKET"`
	MaxFileSizeMB             int64  `envconfig:"MAX_FILE_SIZE_MB" default:"10"`
	PresignedURLExpirationMin uint   `envconfig:"PRESIGNED_URL_EXPIRATION_MIN" default:"15"`

	// Onboarding workflow
	RetryCooldownDays int `envconfig:"RETRY_COOLDOWN_DAYS" default:"30"`

	// SMTP notifier; notifications are disabled when the host is empty
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`
}

func (c *Config) RetryCooldown() time.Duration {
	return time.Duration(c.RetryCooldownDays) * 24 * time.Hour
}

func (c *Config) PresignedURLExpiration() time.Duration {
	return time.Duration(c.PresignedURLExpirationMin) * time.Minute
}
