package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Mail      MailConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file, ":memory:" for an in-memory database
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level  string
	Format string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret   string
	TTLHours int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins string
}

// MailConfig holds SMTP configuration. Mail is disabled when Host is empty.
type MailConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	FrontendURL string
}

// RedisConfig holds Redis configuration. Locks stay in-process when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	OverdueSweepEnabled bool
	OverdueSweepCron    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if .env file doesn't exist
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "letly"),
			Password: getEnv("DB_PASSWORD", "secret"),
			DBName:   getEnv("DB_NAME", "letly"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "letly.db"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "your-secret-key"),
			TTLHours: getEnvAsInt("JWT_TTL_HOURS", 24*7),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000"),
		},
		Mail: MailConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvAsInt("SMTP_PORT", 587),
			User:        getEnv("SMTP_USER", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			From:        getEnv("MAIL_FROM", "Letly <no-reply@letly.app>"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Scheduler: SchedulerConfig{
			OverdueSweepEnabled: getEnvAsBool("OVERDUE_SWEEP_ENABLED", false),
			OverdueSweepCron:    getEnv("OVERDUE_SWEEP_CRON", "0 0 1 * * *"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q, expected postgres or sqlite", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.TTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Origins splits the comma separated allow list
func (c *CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Enabled reports whether SMTP delivery is configured
func (m *MailConfig) Enabled() bool {
	return m.Host != ""
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvAsBool gets an environment variable as bool with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
