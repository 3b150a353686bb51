package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	Log struct {
		Level string `envconfig:"LOG_LEVEL"`
		File  string `envconfig:"LOG_FILE"`
	}
	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		// TokenTTL and RefreshTTL are in minutes.
		TokenTTL   int `envconfig:"AUTH_TOKEN_TTL"`
		RefreshTTL int `envconfig:"AUTH_REFRESH_TTL"`
		// Accounts maps usernames to bcrypt hashes: admin:$2a$10$...,user1:$2a$10$...
		// In a .env file the value must be single-quoted, otherwise godotenv
		// expands every $ in the hashes.
		Accounts    map[string]string `envconfig:"AUTH_ACCOUNTS"`
		MaxRetries  int               `envconfig:"AUTH_MAX_RETRIES"`
		JailMinutes int               `envconfig:"AUTH_JAIL_MINUTES"`
		// AttemptStore is "postgres" (default) or "dynamodb".
		AttemptStore string `envconfig:"AUTH_ATTEMPT_STORE"`
	}
	DynamoDB struct {
		Region             string `envconfig:"DDB_REGION"`
		Endpoint           string `envconfig:"DDB_ENDPOINT"`
		AccessKey          string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey          string `envconfig:"DDB_SECRET_KEY"`
		SessionToken       string `envconfig:"DDB_SESSION_TOKEN"`
		LoginAttemptsTable string `envconfig:"DDB_LOGIN_ATTEMPTS_TABLE"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// ValidateAuth reports auth settings the server cannot start with. Every
// account hash must be readable by bcrypt.
func (c *Config) ValidateAuth() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	if len(c.Auth.Accounts) == 0 {
		return errors.New("AUTH_ACCOUNTS is empty")
	}

	usernames := make([]string, 0, len(c.Auth.Accounts))
	for username := range c.Auth.Accounts {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)
	for _, username := range usernames {
		if _, err := bcrypt.Cost([]byte(c.Auth.Accounts[username])); err != nil {
			return fmt.Errorf("AUTH_ACCOUNTS: hash of %q is not a bcrypt hash, single-quote the value in .env: %w", username, err)
		}
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return c.AppEnv == "" || c.AppEnv == "local"
}

func (c *Config) Origins() []string {
	if strings.TrimSpace(c.AllowOrigins) == "" {
		return nil
	}
	origins := strings.Split(c.AllowOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

func (c *Config) UseDynamoDBAttempts() bool {
	return strings.EqualFold(strings.TrimSpace(c.Auth.AttemptStore), "dynamodb")
}

func (c *Config) AccessTTL() time.Duration {
	return minutesOr(c.Auth.TokenTTL, 60)
}

func (c *Config) RefreshTTL() time.Duration {
	return minutesOr(c.Auth.RefreshTTL, 7*24*60)
}

func (c *Config) JailDuration() time.Duration {
	return minutesOr(c.Auth.JailMinutes, 15)
}

func minutesOr(minutes, fallback int) time.Duration {
	if minutes <= 0 {
		minutes = fallback
	}
	return time.Duration(minutes) * time.Minute
}
