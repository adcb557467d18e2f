package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Main authentication token settings
	JWTSecret   string
	JWTAlg      string
	JWTIssuer   string
	JWTAudience string

	// External identity service (delegated introspection)
	IdentityBaseURL string
	IdentityTimeout time.Duration

	// Legacy department-selection token
	DeptTokenSecret string
	DeptTokenExpiry time.Duration

	// SMTP
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	SMTPFrom           string
	FinanceNotifyEmail string

	FrontendBaseURL string
	AllowedOrigins  []string
	UploadDir       string
	RateLimit       string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ALG", "HS256")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("JWT_AUDIENCE", "")
	viper.SetDefault("IDENTITY_BASE_URL", "")
	viper.SetDefault("IDENTITY_TIMEOUT", "5s")
	viper.SetDefault("DEPT_TOKEN_SECRET", "")
	viper.SetDefault("DEPT_TOKEN_EXPIRY", "12h")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("FINANCE_NOTIFY_EMAIL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTAlg = viper.GetString("JWT_ALG")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.JWTAudience = viper.GetString("JWT_AUDIENCE")

	cfg.IdentityBaseURL = strings.TrimRight(viper.GetString("IDENTITY_BASE_URL"), "/")
	identityTimeout, err := time.ParseDuration(viper.GetString("IDENTITY_TIMEOUT"))
	if err != nil {
		identityTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for IDENTITY_TIMEOUT. Defaulting to %s.\n", identityTimeout)
	}
	cfg.IdentityTimeout = identityTimeout

	cfg.DeptTokenSecret = viper.GetString("DEPT_TOKEN_SECRET")
	if cfg.DeptTokenSecret == "" {
		// The legacy department flow signs with the main secret when no dedicated one is set.
		cfg.DeptTokenSecret = cfg.JWTSecret
	}
	deptExpiry, err := time.ParseDuration(viper.GetString("DEPT_TOKEN_EXPIRY"))
	if err != nil {
		deptExpiry = 12 * time.Hour
		log.Printf("Warning: Invalid value for DEPT_TOKEN_EXPIRY. Defaulting to %s.\n", deptExpiry)
	}
	cfg.DeptTokenExpiry = deptExpiry

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUser = viper.GetString("SMTP_USER")
	cfg.SMTPPassword = viper.GetString("SMTP_PASS")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	cfg.FinanceNotifyEmail = viper.GetString("FINANCE_NOTIFY_EMAIL")

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	for _, origin := range strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}
	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
