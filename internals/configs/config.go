package configs

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	JWTSecret       string
	Port            string
	LogLevel        string
	LogFormat       string
	RunSeeds        bool
	AuthzPolicyPath string
	CorsOrigins     string
	RateLimitMax    int
	WriteLimitMax   int

	// Log is replaced by InitLogger; the no-op default keeps packages usable in tests.
	Log = zap.NewNop()
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("APP_ENV") == "production" {
		log.Println("🚀 Running in production, using system ENV")
	} else if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system ENV")
	} else {
		log.Println("✅ .env file loaded")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	Port = GetEnv("PORT", "3000")
	LogLevel = GetEnv("LOG_LEVEL", "info")
	LogFormat = GetEnv("LOG_FORMAT", "json")
	RunSeeds = GetEnvBool("RUN_SEEDS", false)
	AuthzPolicyPath = GetEnv("AUTHZ_POLICY_PATH")
	CorsOrigins = GetEnv("CORS_ORIGINS")
	RateLimitMax = GetEnvInt("RATE_LIMIT_MAX", 100)
	WriteLimitMax = GetEnvInt("WRITE_LIMIT_MAX", 30)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// GetEnvBool returns def when the variable is unset or not a valid bool.
func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// GetEnvInt returns def when the variable is unset or not an integer.
func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// DBConfig holds the DB_* variables.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func LoadDBConfig() DBConfig {
	return DBConfig{
		Host:     GetEnv("DB_HOST", "localhost"),
		Port:     GetEnv("DB_PORT", "5432"),
		User:     GetEnv("DB_USER"),
		Password: GetEnv("DB_PASSWORD"),
		Name:     GetEnv("DB_NAME"),
		SSLMode:  GetEnv("DB_SSLMODE", "require"),
	}
}

// DSN renders the pgx URL with a statement timeout.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode) + "&application_name=labsuite&options=" + url.QueryEscape("-c statement_timeout=3000"),
	}
	return u.String()
}

// InitLogger builds the application logger from LogLevel/LogFormat and stores it in Log.
func InitLogger(serviceName string) *zap.Logger {
	l, err := NewLogger(LogLevel, LogFormat, serviceName)
	if err != nil {
		log.Fatalf("❌ failed to build logger: %v", err)
	}
	Log = l
	return l
}
