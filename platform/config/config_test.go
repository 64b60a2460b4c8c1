package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/leads_test")
	t.Setenv("API_KEY", "test-key")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
}

func TestLoadAppliesNumericDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_PORT", "")
	t.Setenv("MINIO_MAX_FILE_SIZE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("expected default SMTP port 587, got %d", cfg.SMTPPort)
	}
	if cfg.MinIOMaxFileSize != 10485760 {
		t.Fatalf("expected default max file size, got %d", cfg.MinIOMaxFileSize)
	}
}

func TestLoadRejectsMalformedSMTPPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_PORT", "abc")

	if _, err := Load(); err == nil {
		t.Fatal("expected Load to fail on non-numeric SMTP_PORT")
	}
}

func TestLoadRejectsMalformedMaxFileSize(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MINIO_MAX_FILE_SIZE", "ten megabytes")

	if _, err := Load(); err == nil {
		t.Fatal("expected Load to fail on non-numeric MINIO_MAX_FILE_SIZE")
	}
}

func TestLoadRequiresAPIKeyWhenAuthEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_KEY", "")
	t.Setenv("AUTH_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected Load to fail without API_KEY while auth is enabled")
	}
}
