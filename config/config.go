// Package config loads application settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all environment-sourced settings for the API.
type Config struct {
	// MongoDB
	MongoURL    string
	MongoDBName string

	// API security
	APIKey       string
	JWTSecret    string
	JWTAlgorithm string

	// File uploads
	UploadDir         string
	MaxFileSize       int64
	AllowedExtensions []string

	// Email delivery (optional; console fallback when unset)
	SendGridAPIKey string
	EmailSender    string

	// Application
	APIPrefix string
	Port      string
	Debug     bool
}

// Load reads configuration from the environment. MONGODB_URL, MONGODB_DB_NAME,
// API_KEY and JWT_SECRET are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		MongoURL:          os.Getenv("MONGODB_URL"),
		MongoDBName:       os.Getenv("MONGODB_DB_NAME"),
		APIKey:            os.Getenv("API_KEY"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTAlgorithm:      getEnv("JWT_ALGORITHM", "HS256"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads/profile_photos"),
		MaxFileSize:       getInt64("MAX_FILE_SIZE", 5242880), // 5MB
		AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", "jpg,jpeg,png")),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		EmailSender:       getEnv("EMAIL_SENDER", "noreply@hotride.app"),
		APIPrefix:         getEnv("API_V1_PREFIX", "/api/v1"),
		Port:              getEnv("PORT", "8000"),
		Debug:             getBool("DEBUG", false),
	}

	var missing []string
	if cfg.MongoURL == "" {
		missing = append(missing, "MONGODB_URL")
	}
	if cfg.MongoDBName == "" {
		missing = append(missing, "MONGODB_DB_NAME")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "API_KEY")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
