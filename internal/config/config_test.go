package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "todopro")
	t.Setenv("DB_NAME", "todopro")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_HOST", "")
	t.Setenv("SIGNUP_INVITE_CODE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3001" {
		t.Fatalf("port = %s", cfg.Port)
	}
	if cfg.Pricing.DefaultAdminFee != 50 {
		t.Fatalf("admin fee = %v", cfg.Pricing.DefaultAdminFee)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without REDIS_HOST")
	}
	if cfg.Worker.NotificationTTL != 5*time.Second {
		t.Fatalf("notification ttl = %v", cfg.Worker.NotificationTTL)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("jwt ttl = %v", cfg.JWTTTL)
	}
	if cfg.SignupCode != "" {
		t.Fatalf("signup should be closed by default")
	}
	if cfg.Company.Name != "TODOPRO CANARIAS S.L" {
		t.Fatalf("company = %s", cfg.Company.Name)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing jwt secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "missing db host", env: map[string]string{"DB_HOST": ""}},
		{name: "bad admin fee", env: map[string]string{"DEFAULT_ADMIN_FEE": "fifty"}},
		{name: "negative admin fee", env: map[string]string{"DEFAULT_ADMIN_FEE": "-1"}},
		{name: "bad duration", env: map[string]string{"NOTIFICATION_TTL": "soon"}},
		{name: "bad timezone", env: map[string]string{"REPORT_TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_Integrations(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.test, ,https://b.test ")
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "tok")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "123")
	t.Setenv("WHATSAPP_VERIFY_TOKEN", "")
	t.Setenv("S3_PREFIX", "/archive/")
	t.Setenv("SIGNUP_INVITE_CODE", "team-2024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.test" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	if !cfg.WhatsApp.Enabled() || cfg.WhatsApp.WebhookEnabled() {
		t.Fatalf("whatsapp enabled=%v webhook=%v", cfg.WhatsApp.Enabled(), cfg.WhatsApp.WebhookEnabled())
	}
	if cfg.SignupCode != "team-2024" {
		t.Fatalf("signup code = %q", cfg.SignupCode)
	}
	if cfg.S3.Prefix != "archive" || cfg.S3.Enabled() {
		t.Fatalf("s3 = %+v", cfg.S3)
	}
}
