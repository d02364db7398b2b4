package config

import (
	"fmt"
	"regexp"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	Port              int      `env:"PORT" envDefault:"8080"`
	DatabasePath      string   `env:"DATABASE_PATH" envDefault:"./tidylist.db"`
	ClientURL         string   `env:"CLIENT_URL" envDefault:"http://localhost:3000"`
	JWTSecret         string   `env:"JWT_SECRET,required"`
	ValidEmail        string   `env:"VALID_EMAIL" envDefault:"^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$"`
	PasswordMinLength int      `env:"PASSWORD_MIN_LENGTH" envDefault:"6"`
	BcryptCost        int      `env:"BCRYPT_COST" envDefault:"10"`
	AllowedFileTypes  []string `env:"ALLOWED_FILE_TYPES" envDefault:"image/jpeg,image/png,image/gif,image/webp"`
	MaxFilesizeBytes  int64    `env:"MAX_FILESIZE_BYTES" envDefault:"1000000"`
	PublicDir         string   `env:"PUBLIC_DIR" envDefault:"./public"`
	LogLevel          string   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := regexp.Compile(cfg.ValidEmail); err != nil {
		return nil, fmt.Errorf("invalid VALID_EMAIL pattern: %w", err)
	}
	return cfg, nil
}

// EmailPattern compiles the configured email validation pattern. Load
// has already verified the pattern compiles.
func (c *Config) EmailPattern() *regexp.Regexp {
	return regexp.MustCompile(c.ValidEmail)
}
