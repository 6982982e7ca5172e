package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
port: "9090"
env: staging
sinks:
  timeout: 3s
  audit_webhook_url: https://hooks.example.test/audit
  kafka:
    brokers: ["k1:9092", "k2:9092"]
rate_limit:
  submit_burst: 9
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("KAFKA_TOPIC", "leads-test")
	t.Setenv("GOOGLE_PRIVATE_KEY", `line1\nline2`)
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg := Load()

	if !cfg.AutoMigrate {
		t.Fatalf("expected DB_AUTO_MIGRATE to enable auto migrate")
	}

	if cfg.Port != "7070" {
		t.Fatalf("env should override file port, got %q", cfg.Port)
	}
	if cfg.Env != "staging" {
		t.Fatalf("expected staging, got %q", cfg.Env)
	}
	if cfg.Sinks.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.Sinks.Timeout)
	}
	if cfg.Sinks.AuditWebhookURL != "https://hooks.example.test/audit" {
		t.Fatalf("unexpected webhook url %q", cfg.Sinks.AuditWebhookURL)
	}
	if len(cfg.Sinks.Kafka.Brokers) != 2 || cfg.Sinks.Kafka.Topic != "leads-test" {
		t.Fatalf("unexpected kafka config %+v", cfg.Sinks.Kafka)
	}
	if cfg.Sinks.Sheets.Range != "Sheet1!A:Z" {
		t.Fatalf("default sheets range lost: %q", cfg.Sinks.Sheets.Range)
	}
	if cfg.Sinks.Sheets.PrivateKey != "line1\nline2" {
		t.Fatalf("expected escaped newlines expanded, got %q", cfg.Sinks.Sheets.PrivateKey)
	}
	if cfg.RateLimit.SubmitBurst != 9 || cfg.RateLimit.SubmitRate != 0.2 {
		t.Fatalf("unexpected rate limit %+v", cfg.RateLimit)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("ENV", "")
	t.Setenv("OBJECT_STORE", "S3")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("expected s3, got %q", cfg.ObjectStoreType)
	}
	if cfg.Sinks.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.Sinks.Timeout)
	}
}

func TestApplyFileRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "port: [unclosed")
	cfg := Defaults()
	if err := applyFile(&cfg, path); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestInvalidEnvKeepsPrevious(t *testing.T) {
	t.Setenv("SINK_TIMEOUT", "soon")
	t.Setenv("LEAD_ARCHIVE", "maybe")
	t.Setenv("RATE_LIMIT_SUBMIT_RATE", "fast")

	cfg := Defaults()
	applyEnv(&cfg)
	if cfg.Sinks.Timeout != 10*time.Second || cfg.Sinks.Archive || cfg.RateLimit.SubmitRate != 0.2 {
		t.Fatalf("invalid env values should be ignored: %+v", cfg)
	}
}

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line    string
		key     string
		val     string
		matched bool
	}{
		{line: "PORT=9000", key: "PORT", val: "9000", matched: true},
		{line: `export NAME="quoted value"`, key: "NAME", val: "quoted value", matched: true},
		{line: "KEY='single'", key: "KEY", val: "single", matched: true},
		{line: "URL=https://x.test/?a=b", key: "URL", val: "https://x.test/?a=b", matched: true},
		{line: "# comment", matched: false},
		{line: "   ", matched: false},
		{line: "NOEQUALS", matched: false},
		{line: "=value", matched: false},
	}
	for _, tt := range tests {
		key, val, ok := parseEnvLine(tt.line)
		if ok != tt.matched || key != tt.key || val != tt.val {
			t.Fatalf("parseEnvLine(%q) = (%q, %q, %v)", tt.line, key, val, ok)
		}
	}
}
