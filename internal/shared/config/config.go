package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "config.yaml"

// Config holds application configuration.
type Config struct {
	Port            string   `yaml:"port"`
	CORSAllowOrigin []string `yaml:"cors_allow_origins"`
	ObjectStoreType string   `yaml:"object_store"`
	LocalStoreDir   string   `yaml:"local_store_dir"`
	AWSRegion       string   `yaml:"aws_region"`
	S3Bucket        string   `yaml:"s3_bucket"`
	S3Prefix        string   `yaml:"s3_prefix"`
	SSEKMSKeyID     string   `yaml:"sse_kms_key_id"`
	DatabaseURL     string   `yaml:"database_url"`
	AutoMigrate     bool     `yaml:"auto_migrate"`
	Env             string   `yaml:"env"`
	SQSQueueURL     string   `yaml:"sqs_queue_url"`
	BookingURL      string   `yaml:"booking_url"`

	Sinks     SinksConfig     `yaml:"sinks"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// SinksConfig configures where audit and contact events are delivered.
// A sink with no destination configured is disabled.
type SinksConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	AuditWebhookURL string        `yaml:"audit_webhook_url"`
	LeadWebhookURL  string        `yaml:"lead_webhook_url"`
	Sheets          SheetsConfig  `yaml:"sheets"`
	Kafka           KafkaConfig   `yaml:"kafka"`
	Archive         bool          `yaml:"archive"`
}

type SheetsConfig struct {
	SpreadsheetID       string `yaml:"spreadsheet_id"`
	Range               string `yaml:"range"`
	ServiceAccountEmail string `yaml:"service_account_email"`
	PrivateKey          string `yaml:"private_key"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// RateLimitConfig is the token bucket applied to submission routes.
type RateLimitConfig struct {
	SubmitRate  float64 `yaml:"submit_rate"`
	SubmitBurst int     `yaml:"submit_burst"`
}

// Defaults returns the configuration used before any file or env overrides.
func Defaults() Config {
	return Config{
		Port:            "8080",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		ObjectStoreType: "local",
		LocalStoreDir:   "./data",
		Env:             "dev",
		BookingURL:      "https://calendly.com/stonebridgeacquisition-c6qp/30min",
		Sinks: SinksConfig{
			Timeout: 10 * time.Second,
			Sheets:  SheetsConfig{Range: "Sheet1!A:Z"},
			Kafka:   KafkaConfig{Topic: "audit-leads"},
		},
		RateLimit: RateLimitConfig{SubmitRate: 0.2, SubmitBurst: 5},
	}
}

// Load reads configuration from defaults, an optional YAML file, then
// environment variables.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Defaults()
	path := getEnv("CONFIG_FILE", defaultConfigFile)
	if err := applyFile(&cfg, path); err != nil {
		log.Printf("config: ignoring %s: %v", path, err)
	}
	applyEnv(&cfg)

	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	return cfg
}

// applyFile overlays YAML values onto cfg. A missing file is not an error.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.ObjectStoreType = normalizeStoreType(getEnv("OBJECT_STORE", cfg.ObjectStoreType))
	cfg.LocalStoreDir = getEnv("LOCAL_STORE_DIR", cfg.LocalStoreDir)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.S3Bucket = getEnv("S3_BUCKET", cfg.S3Bucket)
	cfg.S3Prefix = getEnv("S3_PREFIX", cfg.S3Prefix)
	cfg.SSEKMSKeyID = getEnv("SSE_KMS_KEY_ID", cfg.SSEKMSKeyID)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.AutoMigrate = getEnvBool("DB_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.Env = normalizeEnv(getEnv("ENV", cfg.Env))
	cfg.SQSQueueURL = getEnv("AUDIT_SQS_QUEUE_URL", cfg.SQSQueueURL)
	cfg.BookingURL = getEnv("BOOKING_URL", cfg.BookingURL)

	s := &cfg.Sinks
	s.Timeout = getEnvDuration("SINK_TIMEOUT", s.Timeout)
	s.AuditWebhookURL = getEnv("AUDIT_WEBHOOK_URL", s.AuditWebhookURL)
	s.LeadWebhookURL = getEnv("LEAD_WEBHOOK_URL", s.LeadWebhookURL)
	s.Sheets.SpreadsheetID = getEnv("SHEETS_SPREADSHEET_ID", s.Sheets.SpreadsheetID)
	s.Sheets.Range = getEnv("SHEETS_RANGE", s.Sheets.Range)
	s.Sheets.ServiceAccountEmail = getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", s.Sheets.ServiceAccountEmail)
	s.Sheets.PrivateKey = getEnv("GOOGLE_PRIVATE_KEY", s.Sheets.PrivateKey)
	// Keys pasted into env files usually carry literal \n sequences.
	s.Sheets.PrivateKey = strings.ReplaceAll(s.Sheets.PrivateKey, `\n`, "\n")
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		s.Kafka.Brokers = splitAndTrim(raw)
	}
	s.Kafka.Topic = getEnv("KAFKA_TOPIC", s.Kafka.Topic)
	s.Archive = getEnvBool("LEAD_ARCHIVE", s.Archive)

	cfg.RateLimit.SubmitRate = getEnvFloat("RATE_LIMIT_SUBMIT_RATE", cfg.RateLimit.SubmitRate)
	cfg.RateLimit.SubmitBurst = getEnvInt("RATE_LIMIT_SUBMIT_BURST", cfg.RateLimit.SubmitBurst)
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config env %s invalid duration: %v", key, err)
		return def
	}
	return val
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config env %s invalid float: %v", key, err)
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config env %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
