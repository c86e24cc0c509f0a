package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver      string // "postgres" or "sqlite"
	PostgresURL string
	SQLitePath  string
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AdminConfig describes the administrative bootstrap identity.
type AdminConfig struct {
	Email    string
	Password string
	Username string

	// LoginBootstrap lets the admin pair log in without a stored hash,
	// creating or repairing the account on the way.
	LoginBootstrap bool
	// BearerToken is the fixed token accepted together with "X-Admin: true".
	// Empty disables that channel.
	BearerToken    string
	EnsureOnStart  bool
}

type StorageConfig struct {
	Driver         string // "local" or "s3"
	MediaRoot      string
	MediaURL       string
	MaxUploadBytes int64

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	CORSAllowedOrigins []string

	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Storage  StorageConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SQLITE_PATH", "aurora.db?_foreign_keys=on")

	v.SetDefault("ACCESS_TOKEN_TTL", "60m")
	v.SetDefault("REFRESH_TOKEN_TTL", "24h")

	v.SetDefault("ADMIN_EMAIL", "admin@skincare.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_LOGIN_BOOTSTRAP", true)
	v.SetDefault("ADMIN_BEARER_TOKEN", "admin-token")
	v.SetDefault("BOOTSTRAP_ADMIN_ON_START", true)

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("MEDIA_ROOT", "media")
	v.SetDefault("MEDIA_URL", "/media/")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("S3_REGION", "us-east-1")
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	return FromViper(NewViper())
}

// NewViper returns a viper instance with the defaults applied and the
// environment (plus an optional .env file) bound. Callers may bind flags on
// top before handing it to FromViper.
func NewViper() *viper.Viper {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		GinMode:            v.GetString("GIN_MODE"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Database: DatabaseConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			PostgresURL: v.GetString("POSTGRES_URL"),
			SQLitePath:  v.GetString("SQLITE_PATH"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("JWT_SECRET"),
			AccessTokenTTL:  v.GetDuration("ACCESS_TOKEN_TTL"),
			RefreshTokenTTL: v.GetDuration("REFRESH_TOKEN_TTL"),
		},
		Admin: AdminConfig{
			Email:          v.GetString("ADMIN_EMAIL"),
			Password:       v.GetString("ADMIN_PASSWORD"),
			Username:       v.GetString("ADMIN_USERNAME"),
			LoginBootstrap: v.GetBool("ADMIN_LOGIN_BOOTSTRAP"),
			BearerToken:    v.GetString("ADMIN_BEARER_TOKEN"),
			EnsureOnStart:  v.GetBool("BOOTSTRAP_ADMIN_ON_START"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
			MediaRoot:      v.GetString("MEDIA_ROOT"),
			MediaURL:       v.GetString("MEDIA_URL"),
			MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
			S3Endpoint:     v.GetString("S3_ENDPOINT"),
			S3Region:       v.GetString("S3_REGION"),
			S3Bucket:       v.GetString("S3_BUCKET"),
			S3AccessKey:    v.GetString("S3_ACCESS_KEY"),
			S3SecretKey:    v.GetString("S3_SECRET_KEY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.JWT.AccessTokenTTL <= 0 || c.JWT.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.PostgresURL == "" {
			errs = append(errs, errors.New("POSTGRES_URL must be set when DB_DRIVER=postgres"))
		}
	case "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET must be set when STORAGE_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("unknown GIN_MODE %q", c.GinMode))
	}

	if c.Admin.Email == "" || c.Admin.Password == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must not be empty"))
	}

	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
