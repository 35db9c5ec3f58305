package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("RECONCILE_CONCURRENCY", "")
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("S3_REPORT_BUCKET", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 4, cfg.ReconcileConcurrency)
	assert.False(t, cfg.TwilioEnabled())
	assert.False(t, cfg.ReportArchiveEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.dk, https://b.dk,")
	t.Setenv("RECONCILE_CONCURRENCY", "not-a-number")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")
	t.Setenv("TWILIO_PHONE_NUMBER", "+4511111111")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"https://a.dk", "https://b.dk"}, cfg.CORSOrigins)
	assert.Equal(t, 4, cfg.ReconcileConcurrency)
	assert.True(t, cfg.TwilioEnabled())
}
