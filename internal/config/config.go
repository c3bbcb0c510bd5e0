package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Razorpay  RazorpayConfig
	RateLimit RateLimitConfig
	Alerts    AlertsConfig
}

type ServerConfig struct {
	Port       string
	Production bool
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	// Addr empty means sessions are kept in-process.
	Addr     string
	Password string
	DB       int
}

type AdminConfig struct {
	// Emails is the allow-list for admin elevation, lowercased.
	Emails        []string
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

type AlertsConfig struct {
	ResendAPIKey string
	FromAddress  string
	AdminEmail   string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "30m")
	v.SetDefault("RATE_LIMIT_WINDOW", "60s")
	v.SetDefault("RATE_LIMIT_MAX", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ALERT_FROM", "FusionForge PCs <alerts@fusionforgepcs.in>")

	cfg := &Config{
		Server: ServerConfig{
			Port:       v.GetString("PORT"),
			Production: v.GetString("APP_ENV") == "production",
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			Emails:        splitEmails(v.GetString("ADMIN_EMAILS")),
			SessionTTL:    v.GetDuration("SESSION_TTL"),
			SweepInterval: v.GetDuration("SESSION_SWEEP_INTERVAL"),
		},
		Razorpay: RazorpayConfig{
			KeyID:         v.GetString("RAZORPAY_KEY_ID"),
			KeySecret:     v.GetString("RAZORPAY_KEY_SECRET"),
			WebhookSecret: v.GetString("RAZORPAY_WEBHOOK_SECRET"),
		},
		RateLimit: RateLimitConfig{
			Window: v.GetDuration("RATE_LIMIT_WINDOW"),
			Max:    v.GetInt("RATE_LIMIT_MAX"),
		},
		Alerts: AlertsConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			FromAddress:  v.GetString("ALERT_FROM"),
			AdminEmail:   v.GetString("ALERT_ADMIN_EMAIL"),
		},
	}

	return cfg, nil
}

func splitEmails(raw string) []string {
	var out []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
