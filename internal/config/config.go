package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTSecret     string
	JWTExpiryDays int

	// SMS providers: Briq is used whenever its API key is set, otherwise
	// Africa's Talking when its key is set.
	BriqBaseURL  string
	BriqAPIKey   string
	BriqSenderID string
	ATBaseURL    string
	ATAPIKey     string
	ATUsername   string
	ATSenderID   string
	SMSFake      bool // simulate Briq sends without network calls
	SMSTimeoutMS int

	OTPTTLSeconds      int
	OTPMessageTemplate string // honored only when it contains "{code}"

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users          string
	OtpCodes       string
	Batches        string
	ProductionLogs string
	Products       string
	Orders         string
	Alerts         string
	Files          string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("PORT", "3001"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:          getEnv("DYNAMO_TABLE_USERS", "users"),
			OtpCodes:       getEnv("DYNAMO_TABLE_OTP_CODES", "otp_codes"),
			Batches:        getEnv("DYNAMO_TABLE_BATCHES", "batches"),
			ProductionLogs: getEnv("DYNAMO_TABLE_PRODUCTION_LOGS", "production_logs"),
			Products:       getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Orders:         getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			Alerts:         getEnv("DYNAMO_TABLE_ALERTS", "alerts"),
			Files:          getEnv("DYNAMO_TABLE_FILES", "files"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "chicktrack-uploads"),

		JWTSecret:     getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiryDays: getEnvInt("JWT_EXPIRY_DAYS", 7),

		BriqBaseURL:  getEnv("BRIQ_BASE_URL", "https://api.briqsms.com"),
		BriqAPIKey:   getEnv("BRIQ_API_KEY", ""),
		BriqSenderID: getEnv("BRIQ_SENDER_ID", ""),
		ATBaseURL:    getEnv("AT_BASE_URL", "https://api.africastalking.com"),
		ATAPIKey:     getEnv("AT_API_KEY", ""),
		ATUsername:   getEnv("AT_USERNAME", "sandbox"),
		ATSenderID:   getEnv("AT_SENDER_ID", ""),
		SMSFake:      getEnv("SMS_FAKE", "") == "1",
		SMSTimeoutMS: getEnvInt("SMS_TIMEOUT_MS", 10000),

		OTPTTLSeconds:      getEnvInt("OTP_TTL_SECONDS", 60),
		OTPMessageTemplate: getEnv("OTP_MESSAGE_TEMPLATE", ""),

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
