// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageDriverCloudinary = "cloudinary"
	StorageDriverS3         = "s3"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Storage     StorageConfig
	Cloudinary  CloudinaryConfig
	AWS         AWSConfig
	Upload      UploadConfig
	Referral    ReferralConfig
	CORS        CORSConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	TimeZone     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
	AutoMigrate  bool
}

type JWTConfig struct {
	// Tokens are issued by another service; an empty secret disables verification.
	SecretKey string
	AdminRole string
}

type StorageConfig struct {
	Driver string
	Folder string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

type UploadConfig struct {
	MaxSizeMB       int64
	RatePerMinute   int
	GeneralRateRPS  int
	GeneralBurst    int
	UploadRateBurst int
}

// ReferralConfig holds the commission percentage paid to each upline team.
type ReferralConfig struct {
	TeamAPercent float64
	TeamBPercent float64
	TeamCPercent float64
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "mystic_nft"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			TimeZone:     getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			AdminRole: getEnv("JWT_ADMIN_ROLE", "admin"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverCloudinary)),
			Folder: getEnv("STORAGE_FOLDER", "pdfs"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "mystic-nft-pdfs"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Upload: UploadConfig{
			MaxSizeMB:       int64(getEnvAsInt("UPLOAD_MAX_SIZE_MB", 20)),
			RatePerMinute:   getEnvAsInt("UPLOAD_RATE_PER_MINUTE", 10),
			UploadRateBurst: getEnvAsInt("UPLOAD_RATE_BURST", 10),
			GeneralRateRPS:  getEnvAsInt("GENERAL_RATE_RPS", 10),
			GeneralBurst:    getEnvAsInt("GENERAL_RATE_BURST", 20),
		},
		Referral: ReferralConfig{
			TeamAPercent: getEnvAsFloat("REFERRAL_TEAM_A_PERCENT", 10.0),
			TeamBPercent: getEnvAsFloat("REFERRAL_TEAM_B_PERCENT", 5.0),
			TeamCPercent: getEnvAsFloat("REFERRAL_TEAM_C_PERCENT", 2.5),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWT.SecretKey == "" {
			return fmt.Errorf("JWT secret key is required in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database password is required in production")
		}
	}

	switch c.Storage.Driver {
	case StorageDriverCloudinary:
		if c.Environment == "production" && (c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "") {
			return fmt.Errorf("cloudinary credentials are required in production")
		}
	case StorageDriverS3:
		if c.AWS.S3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE_MB must be positive")
	}
	if c.Upload.GeneralRateRPS > 0 && c.Upload.GeneralBurst < 1 {
		return fmt.Errorf("GENERAL_RATE_BURST must be at least 1 when GENERAL_RATE_RPS is set")
	}
	if c.Upload.RatePerMinute > 0 && c.Upload.UploadRateBurst < 1 {
		return fmt.Errorf("UPLOAD_RATE_BURST must be at least 1 when UPLOAD_RATE_PER_MINUTE is set")
	}

	for name, pct := range map[string]float64{
		"A": c.Referral.TeamAPercent,
		"B": c.Referral.TeamBPercent,
		"C": c.Referral.TeamCPercent,
	} {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("referral percentage for team %s must be between 0 and 100", name)
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
