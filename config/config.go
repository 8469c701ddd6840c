package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// It is built once at startup and handed to every component that needs it.
type Config struct {
	HTTPAddr       string
	RequestTimeout time.Duration

	// Database. DatabaseURL is a raw MySQL DSN and wins over the individual parts.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBLogMode   bool

	CORSOrigins []string

	// S3 compatible object storage
	S3Endpoint         string
	S3AccessKey        string
	S3SecretKey        string
	S3Region           string
	S3Bucket           string
	S3UseSSL           bool
	S3AutoCreateBucket bool
	UploadMaxMemory    int64 // bytes buffered in memory while parsing multipart forms

	JWTSecret    string
	JWTAlgorithm string
	JWTTTL       time.Duration

	// Bootstrap admin, created on startup when both are set.
	AdminEmail    string
	AdminPassword string

	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8000"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "127.0.0.1"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "root"),
		DBPassword:  os.Getenv("DB_PASSWORD"), // no hardcoded default for secrets
		DBName:      getEnv("DB_NAME", "meditation"),
		DBLogMode:   getEnvBool("DB_LOG_MODE", false),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),

		S3Endpoint:         getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
		S3AccessKey:        getEnv("AWS_ACCESS_KEY", ""),
		S3SecretKey:        getEnv("AWS_SECRET_KEY", ""),
		S3Region:           getEnv("AWS_REGION", "ap-south-1"),
		S3Bucket:           getEnv("AWS_S3_BUCKET", ""),
		S3UseSSL:           getEnvBool("S3_USE_SSL", true),
		S3AutoCreateBucket: getEnvBool("S3_AUTO_CREATE_BUCKET", false),
		UploadMaxMemory:    int64(getEnvInt("UPLOAD_MAX_MEMORY_MB", 32)) << 20,

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlgorithm: getEnv("JWT_ALGORITHM", "HS256"),
		JWTTTL:       getEnvDuration("JWT_TTL", 24*time.Hour),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}
