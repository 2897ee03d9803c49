package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	DatabaseURL   string

	AdminToken         string
	CORSAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Google Calendar integration
	CalendarProvider        string // "google" or "mock"
	GoogleClientID          string
	GoogleClientSecret      string
	GoogleOAuthRedirectURI  string
	GoogleMapsAPIKey        string
	CalendarSyncMaxDays     int
	CalendarRequestTimeout  time.Duration
	CalendarDefaultTimezone string

	// Assistant (LLM) configuration
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string

	// Chat history store
	RedisAddr     string
	RedisPassword string

	// SendGrid email configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	PracticeEmail     string
	PracticePhone     string
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		AdminToken:         getEnv("ADMIN_TOKEN", "celia-admin-token"),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 2),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),

		CalendarProvider:        strings.ToLower(strings.TrimSpace(getEnv("CALENDAR_PROVIDER", "mock"))),
		GoogleClientID:          getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:      getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleOAuthRedirectURI:  getEnv("GOOGLE_OAUTH_REDIRECT_URI", ""),
		GoogleMapsAPIKey:        getEnv("GOOGLE_MAPS_API_KEY", ""),
		CalendarSyncMaxDays:     getEnvAsInt("CALENDAR_SYNC_MAX_DAYS", 90),
		CalendarRequestTimeout:  getEnvAsDuration("CALENDAR_REQUEST_TIMEOUT", 30*time.Second),
		CalendarDefaultTimezone: getEnv("CALENDAR_TIMEZONE", "Australia/Melbourne"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "hello@celiadunsmorecounselling.com.au"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Celia Dunsmore Counselling"),
		PracticeEmail:     getEnv("PRACTICE_EMAIL", "hello@celiadunsmorecounselling.com.au"),
		PracticePhone:     getEnv("PRACTICE_PHONE", "+61 438 593 071"),
	}

	if cfg.GoogleOAuthRedirectURI == "" {
		cfg.GoogleOAuthRedirectURI = strings.TrimRight(cfg.PublicBaseURL, "/") + "/api/google/oauth/callback"
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice splits a comma-separated environment variable.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
