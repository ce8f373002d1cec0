package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Firebase FirebaseConfig
	Storage  StorageConfig
	CMS      CMSConfig
	Mail     MailConfig
	Redis    RedisConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type FirebaseConfig struct {
	CredentialsPath string
	// WebAPIKey is the public API key used for the Identity Toolkit
	// password check; the Admin SDK cannot verify passwords itself.
	WebAPIKey     string
	StorageBucket string
}

// StorageConfig points at the Supabase storage S3 endpoint used for
// family-shared media. Avatars live in the Firebase bucket instead.
type StorageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type CMSConfig struct {
	BaseURL string
	Token   string
}

type MailConfig struct {
	BaseURL string
	APIKey  string
	From    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			WebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
			StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("SUPABASE_S3_ENDPOINT", ""),
			Region:    getEnv("SUPABASE_S3_REGION", "us-east-1"),
			AccessKey: getEnv("SUPABASE_S3_ACCESS_KEY", ""),
			SecretKey: getEnv("SUPABASE_S3_SECRET_KEY", ""),
			Bucket:    getEnv("SUPABASE_MEDIA_BUCKET", "family-media"),
		},
		CMS: CMSConfig{
			BaseURL: getEnv("CMS_BASE_URL", ""),
			Token:   getEnv("CMS_API_TOKEN", ""),
		},
		Mail: MailConfig{
			BaseURL: getEnv("MAIL_API_BASE_URL", "https://api.resend.com"),
			APIKey:  getEnv("MAIL_API_KEY", ""),
			From:    getEnv("MAIL_FROM", "Carelink <no-reply@carelink.app>"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
