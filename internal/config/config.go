package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string
	JWTTTL    time.Duration

	// SignupCode must accompany every signup. Empty disables signup, so
	// accounts are then created by an operator.
	SignupCode string
	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string

	DB        DatabaseConfig
	Redis     RedisConfig
	Pricing   PricingConfig
	Company   CompanyConfig
	WhatsApp  WhatsAppConfig
	S3        S3Config
	Worker    WorkerConfig
	Scheduler SchedulerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters. An empty Host selects
// the in-memory store.
type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// PricingConfig holds calculator defaults.
type PricingConfig struct {
	DefaultAdminFee float64
}

// CompanyConfig is the letterhead printed on exported documents.
type CompanyConfig struct {
	Name       string
	Slogan     string
	Address    string
	Area       string
	City       string
	Province   string
	PostalCode string
	Phone      string
	Email      string
	SLNumber   string
	Website    string
	Signatory  string
}

// WhatsAppConfig contains Cloud API credentials. Sending is disabled when
// the token or phone number id is empty. The inbound webhook needs
// VerifyToken for the subscription handshake and AppSecret to check
// payload signatures.
type WhatsAppConfig struct {
	BaseURL       string
	PhoneNumberID string
	AccessToken   string
	Timeout       time.Duration
	ManagerPhone  string
	AppSecret     string
	VerifyToken   string
}

// Enabled reports whether outbound WhatsApp messages can be sent.
func (w WhatsAppConfig) Enabled() bool {
	return w.AccessToken != "" && w.PhoneNumberID != ""
}

// WebhookEnabled reports whether inbound webhooks can be verified.
func (w WhatsAppConfig) WebhookEnabled() bool {
	return w.VerifyToken != "" && w.AppSecret != ""
}

// S3Config contains object storage configuration for archived documents.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

// Enabled reports whether archiving is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	NotificationSweepInterval time.Duration
	NotificationTTL           time.Duration
}

// SchedulerConfig configures cron jobs. An empty ReportCron disables the
// daily report.
type SchedulerConfig struct {
	ReportCron     string
	ReportTimezone string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "3001")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.SignupCode = getEnv("SIGNUP_INVITE_CODE", "")
	cfg.CORSOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,https://todopro.es,https://www.todopro.es"))

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:      os.Getenv("REDIS_HOST"),
		Port:      getEnv("REDIS_PORT", "6379"),
		Password:  getEnv("REDIS_PASSWORD", ""),
		DB:        getEnvInt("REDIS_DB", 0),
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", "todopro:"),
	}

	var err error
	if cfg.Pricing.DefaultAdminFee, err = getEnvFloat("DEFAULT_ADMIN_FEE", 50); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_ADMIN_FEE: %w", err)
	}

	// Letterhead
	cfg.Company = CompanyConfig{
		Name:       getEnv("COMPANY_NAME", "TODOPRO CANARIAS S.L"),
		Slogan:     getEnv("COMPANY_SLOGAN", "Reliable Solutions for Construction Needs"),
		Address:    getEnv("COMPANY_ADDRESS", "Carretera General 10"),
		Area:       getEnv("COMPANY_AREA", "La Camella"),
		City:       getEnv("COMPANY_CITY", "Arona"),
		Province:   getEnv("COMPANY_PROVINCE", "Santa Cruz de Tenerife"),
		PostalCode: getEnv("COMPANY_POSTAL_CODE", "38627"),
		Phone:      getEnv("COMPANY_PHONE", "604 98 00 12"),
		Email:      getEnv("COMPANY_EMAIL", "hola@todopro.es"),
		SLNumber:   getEnv("COMPANY_SL_NUMBER", "B44751410"),
		Website:    getEnv("COMPANY_WEBSITE", "www.todopro.es"),
		Signatory:  getEnv("COMPANY_SIGNATORY", "Emmanuel Lara"),
	}

	// WhatsApp Cloud API
	cfg.WhatsApp = WhatsAppConfig{
		BaseURL:       getEnv("WHATSAPP_BASE_URL", "https://graph.facebook.com/v19.0"),
		PhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		AccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		ManagerPhone:  getEnv("WHATSAPP_MANAGER_PHONE", ""),
		AppSecret:     getEnv("WHATSAPP_APP_SECRET", ""),
		VerifyToken:   getEnv("WHATSAPP_VERIFY_TOKEN", ""),
	}
	if cfg.WhatsApp.Timeout, err = parseDurationEnv("WHATSAPP_TIMEOUT", "10s"); err != nil {
		return nil, fmt.Errorf("invalid WHATSAPP_TIMEOUT: %w", err)
	}

	// S3 archive for exported documents
	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "eu-south-2"),
		Bucket:          getEnv("S3_BUCKET", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Prefix:          strings.Trim(getEnv("S3_PREFIX", "documents"), "/"),
	}

	// Workers (durations)
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.Worker.NotificationSweepInterval, err = parseDurationEnv("NOTIFICATION_SWEEP_INTERVAL", "1s"); err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_SWEEP_INTERVAL: %w", err)
	}
	if cfg.Worker.NotificationTTL, err = parseDurationEnv("NOTIFICATION_TTL", "5s"); err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_TTL: %w", err)
	}

	cfg.Scheduler = SchedulerConfig{
		ReportCron:     getEnv("REPORT_CRON", "0 20 * * *"),
		ReportTimezone: getEnv("REPORT_TIMEZONE", "Atlantic/Canary"),
	}
	if _, err := time.LoadLocation(cfg.Scheduler.ReportTimezone); err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvFloat parses a non-negative float, falling back to def when unset.
func getEnvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("value must be >= 0")
	}
	return f, nil
}

// splitList splits a comma separated value, dropping empty items.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
