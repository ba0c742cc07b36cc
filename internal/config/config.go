package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type DB struct {
	Driver   string `env:"DRIVER" envDefault:"postgres"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"password"`
	Name     string `env:"NAME" envDefault:"blog"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	// Path is only used by the sqlite3 driver.
	Path string `env:"PATH" envDefault:"blog.db"`
}

// DSN returns the connection string for the configured driver.
func (d DB) DSN() string {
	if d.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", d.Path)
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type Session struct {
	Secret     string        `env:"SECRET"`
	Duration   time.Duration `env:"DURATION" envDefault:"24h"`
	CookieName string        `env:"COOKIE_NAME" envDefault:"blog_session"`
	Secure     bool          `env:"SECURE" envDefault:"false"`
}

type MinIO struct {
	Enabled    bool   `env:"ENABLED" envDefault:"false"`
	Endpoint   string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey  string `env:"ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey  string `env:"SECRET_KEY" envDefault:"minioadmin"`
	BucketName string `env:"BUCKET_NAME" envDefault:"images"`
	UseSSL     bool   `env:"USE_SSL" envDefault:"false"`
	Region     string `env:"REGION" envDefault:"us-east-1"`
	// PublicURL is the prefix under which stored objects are served to browsers.
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:9000"`
}

type Avatar struct {
	Size     int    `env:"SIZE" envDefault:"100"`
	Fallback string `env:"FALLBACK" envDefault:"identicon"`
}

type Config struct {
	ServerPort    int     `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel      int     `env:"LOG_LEVEL" envDefault:"0"`
	MaxUploadSize int64   `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
	DB            DB      `envPrefix:"DB_"`
	Session       Session `envPrefix:"SESSION_"`
	MinIO         MinIO   `envPrefix:"MINIO_"`
	Avatar        Avatar  `envPrefix:"AVATAR_"`
}

var ErrNoSessionSecret = errors.New("SESSION_SECRET is not set")

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return Parse()
}

// Parse builds the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DB.Driver != DriverPostgres && cfg.DB.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return &cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return ErrNoSessionSecret
	}
	return nil
}
