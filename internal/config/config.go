package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	IsTestMode     bool     `env:"TEST_MODE" envDefault:"false"`
	Secret         string   `env:"SECRET,required,unset"`
	Port           uint16   `env:"PORT" envDefault:"9090"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required,unset"`
	RedisURL       string `env:"REDIS_URL,required,unset"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"12"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PasswordResetBaseURL       url.URL       `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:3000/admin/reset"`
	NotifierTimeout            time.Duration `env:"NOTIFIER_TIMEOUT" envDefault:"10s"`

	AwsRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY,unset"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY,unset"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER"`

	IPLocatorBaseURL url.URL       `env:"IP_LOCATOR_BASE_URL" envDefault:"https://ipapi.co"`
	IPLocatorTimeout time.Duration `env:"IP_LOCATOR_TIMEOUT" envDefault:"3s"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func (c *Config) IsEmailEnabled() bool {
	return c.AwsEmailSender != ""
}

func (c *Config) validate() error {
	if c.BcryptHasherCost < 4 || c.BcryptHasherCost > 31 {
		return fmt.Errorf("invalid BCRYPT_HASHER_COST value: %d", c.BcryptHasherCost)
	}
	if c.PasswordResetValidDuration <= 0 {
		return fmt.Errorf("PASSWORD_RESET_VALID_DURATION must be positive")
	}
	if c.PasswordResetBaseURL.Scheme == "" || c.PasswordResetBaseURL.Host == "" {
		return fmt.Errorf("PASSWORD_RESET_BASE_URL must be an absolute URL")
	}
	return nil
}

// Load reads the configuration from the environment, a .env file in the
// working directory is applied first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}
	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
