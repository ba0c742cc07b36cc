package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefaultValues(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 0, cfg.LogLevel)
	assert.Equal(t, int64(10485760), cfg.MaxUploadSize)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "blog", cfg.DB.Name)
	assert.Equal(t, 24*time.Hour, cfg.Session.Duration)
	assert.Equal(t, "blog_session", cfg.Session.CookieName)
	assert.False(t, cfg.Session.Secure)
	assert.False(t, cfg.MinIO.Enabled)
	assert.Equal(t, "images", cfg.MinIO.BucketName)
	assert.Equal(t, 100, cfg.Avatar.Size)
	assert.Equal(t, "identicon", cfg.Avatar.Fallback)
}

func TestParse_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name:    "server port and log level",
			envVars: map[string]string{"SERVER_PORT": "9090", "LOG_LEVEL": "-4"},
			expected: func(cfg *Config) {
				assert.Equal(t, 9090, cfg.ServerPort)
				assert.Equal(t, -4, cfg.LogLevel)
			},
		},
		{
			name: "sqlite database",
			envVars: map[string]string{
				"DB_DRIVER": "sqlite3",
				"DB_PATH":   "/tmp/posts.db",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, DriverSQLite, cfg.DB.Driver)
				assert.Equal(t, "file:/tmp/posts.db?_foreign_keys=on&_busy_timeout=5000", cfg.DB.DSN())
			},
		},
		{
			name: "session settings",
			envVars: map[string]string{
				"SESSION_SECRET":      "s3cret",
				"SESSION_DURATION":    "2h",
				"SESSION_COOKIE_NAME": "sid",
				"SESSION_SECURE":      "true",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "s3cret", cfg.Session.Secret)
				assert.Equal(t, 2*time.Hour, cfg.Session.Duration)
				assert.Equal(t, "sid", cfg.Session.CookieName)
				assert.True(t, cfg.Session.Secure)
			},
		},
		{
			name: "minio settings",
			envVars: map[string]string{
				"MINIO_ENABLED":     "true",
				"MINIO_BUCKET_NAME": "covers",
				"MINIO_PUBLIC_URL":  "https://cdn.example.com",
			},
			expected: func(cfg *Config) {
				assert.True(t, cfg.MinIO.Enabled)
				assert.Equal(t, "covers", cfg.MinIO.BucketName)
				assert.Equal(t, "https://cdn.example.com", cfg.MinIO.PublicURL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Parse()
			require.NoError(t, err)
			tt.expected(cfg)
		})
	}
}

func TestParse_UnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Parse()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestDB_DSN_Postgres(t *testing.T) {
	db := DB{Driver: DriverPostgres, Host: "db", Port: "5433", User: "u", Password: "p", Name: "n", SSLMode: "require"}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", db.DSN())
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrNoSessionSecret)

	cfg.Session.Secret = "x"
	assert.NoError(t, cfg.Validate())
}
