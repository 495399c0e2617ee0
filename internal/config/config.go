package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIBaseURL is the production feed endpoint used when no operator
// override is configured.
const DefaultAPIBaseURL = "https://plsdonategifts.com"

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	APIBaseURL   string
	PollInterval time.Duration
	FetchTimeout time.Duration

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTableEngineState string
	S3BucketSnapshots      string // empty disables snapshot archiving
	SNSTopicARN            string // empty disables the SNS notification sink

	SMTPHost      string
	SMTPPort      string
	SMTPFrom      string
	SMTPUsername  string
	SMTPPassword  string
	NotifyEmailTo string // empty disables the email notification sink

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "8090"),
		AppEnv:  getEnv("APP_ENV", "development"),

		APIBaseURL:   getEnv("API_BASE_URL", DefaultAPIBaseURL),
		PollInterval: time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 30)) * time.Second,
		FetchTimeout: time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTableEngineState: getEnv("DYNAMO_TABLE_ENGINE_STATE", "engine_state"),
		S3BucketSnapshots:      getEnv("S3_BUCKET_SNAPSHOTS", ""),
		SNSTopicARN:            getEnv("SNS_TOPIC_ARN", ""),

		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "1025"),
		SMTPFrom:      getEnv("SMTP_FROM", "tracker@example.com"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		NotifyEmailTo: getEnv("NOTIFY_EMAIL_TO", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
