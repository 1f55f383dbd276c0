package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func minimal() map[string]string {
	return map[string]string{
		"SMTP_HOST":        "smtp.example.com",
		"SMTP_USERNAME":    "quotes@example.com",
		"QUOTE_RECIPIENTS": "ops@example.com, sales@example.com ,",
		"SESSION_SECRET":   "s3cret",
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := configFromEnv(env(minimal()))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.RequireTLS)
	assert.Equal(t, []string{"ops@example.com", "sales@example.com"}, cfg.QuoteRecipients)
	assert.Equal(t, cfg.QuoteRecipients, cfg.ContactRecipients)
	assert.Equal(t, "quotes@example.com", cfg.MailFrom)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "en", cfg.DefaultLanguage)
}

func TestConfigOverrides(t *testing.T) {
	m := minimal()
	m["SMTP_PORT"] = "465"
	m["SMTP_USE_SSL"] = "true"
	m["CONTACT_RECIPIENTS"] = "hello@example.com"
	m["SESSION_TTL"] = "30m"
	m["CORS_ORIGINS"] = "https://a.example,https://b.example"

	cfg, err := configFromEnv(env(m))
	require.NoError(t, err)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.UseSSL)
	assert.Equal(t, []string{"hello@example.com"}, cfg.ContactRecipients)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestConfigReportsEveryProblem(t *testing.T) {
	_, err := configFromEnv(env(map[string]string{"SMTP_PORT": "abc", "SESSION_TTL": "soon"}))
	require.Error(t, err)
	for _, want := range []string{"SMTP_PORT", "SESSION_TTL", "SMTP_HOST", "QUOTE_RECIPIENTS", "SESSION_SECRET"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"SMTP_HOST=smtp.dotenv.example\nQUOTE_RECIPIENTS=ops@example.com\nSESSION_SECRET=from-file\n"), 0o600))

	for _, k := range []string{"SMTP_HOST", "QUOTE_RECIPIENTS", "SESSION_SECRET"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "smtp.dotenv.example", cfg.SMTP.Host)
	assert.Equal(t, "from-file", cfg.SessionSecret)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
