package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type SMTPSettings struct {
	Host       string
	Port       int
	Username   string
	Password   string
	UseSSL     bool // implicit TLS, usually port 465
	RequireTLS bool // fail when STARTTLS is not offered
}

type Config struct {
	Port     string
	LogLevel string

	SMTP              SMTPSettings
	MailFrom          string
	MailFromName      string
	QuoteRecipients   []string
	ContactRecipients []string
	TimeZone          string

	SessionSecret        string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	DefaultLanguage string
	CORSOrigins     []string
}

// LoadConfig reads .env files (missing files are ignored) and then the process
// environment. Values already set in the environment win over .env.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	str := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var errs []error
	integer := func(key string, def int) int {
		raw := str(key, "")
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return n
	}
	boolean := func(key string, def bool) bool {
		raw := str(key, "")
		if raw == "" {
			return def
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return b
	}
	duration := func(key string, def time.Duration) time.Duration {
		raw := str(key, "")
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return d
	}

	cfg := Config{
		Port:     str("PORT", "8080"),
		LogLevel: str("LOG_LEVEL", "info"),
		SMTP: SMTPSettings{
			Host:       str("SMTP_HOST", ""),
			Port:       integer("SMTP_PORT", 587),
			Username:   str("SMTP_USERNAME", ""),
			Password:   getenv("SMTP_PASSWORD"),
			UseSSL:     boolean("SMTP_USE_SSL", false),
			RequireTLS: boolean("SMTP_REQUIRE_TLS", true),
		},
		MailFrom:             str("MAIL_FROM", ""),
		MailFromName:         str("MAIL_FROM_NAME", "Freightline"),
		QuoteRecipients:      list(getenv("QUOTE_RECIPIENTS")),
		ContactRecipients:    list(getenv("CONTACT_RECIPIENTS")),
		TimeZone:             str("TIME_ZONE", "UTC"),
		SessionSecret:        getenv("SESSION_SECRET"),
		SessionTTL:           duration("SESSION_TTL", 2*time.Hour),
		SessionSweepInterval: duration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		DefaultLanguage:      str("DEFAULT_LANGUAGE", "en"),
		CORSOrigins:          list(getenv("CORS_ORIGINS")),
	}
	if len(cfg.ContactRecipients) == 0 {
		cfg.ContactRecipients = cfg.QuoteRecipients
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTP.Username
	}

	if cfg.SMTP.Host == "" {
		errs = append(errs, errors.New("SMTP_HOST is required"))
	}
	if len(cfg.QuoteRecipients) == 0 {
		errs = append(errs, errors.New("QUOTE_RECIPIENTS is required"))
	}
	if cfg.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// list splits a comma separated value, dropping blanks.
func list(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
