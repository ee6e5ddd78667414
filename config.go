package auth

import (
	"log"
	"os"

	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// EnvProduction marks a production deployment; the signing secret is
// mandatory there.
const EnvProduction = "production"

// devSigningSecret backs non-production processes that did not configure a
// secret. The production check in Validate makes it unreachable in a
// deployment flagged production.
const devSigningSecret = "qfqa-dev-signing-secret-do-not-use-in-production"

// Config is the process configuration surface of the auth core. It is
// resolved once at startup; nothing in this package re-reads the
// environment per request.
type Config struct {
	Environment   string
	SigningSecret string
	DatabaseDSN   string
}

// LoadConfig reads configuration from the environment, overlaying an
// optional .env file first.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment:   envOr("APP_ENV", "development"),
		SigningSecret: os.Getenv("JWT_SECRET"),
		DatabaseDSN:   envOr("DATABASE_DSN", "file:qfqa.db"),
	}
}

// Validate enforces the startup invariants. In production a missing
// signing secret is an error the process must not survive; everywhere else
// it falls back to the fixed development secret.
func (c *Config) Validate() error {
	if c.SigningSecret == "" {
		if c.Environment == EnvProduction {
			return goerrors.New("JWT_SECRET is required in production", goerrors.CategoryInternal).
				WithTextCode("MISSING_SIGNING_SECRET")
		}
		c.SigningSecret = devSigningSecret
	}
	return nil
}

// MustValidate is Validate for process startup: it panics on failure.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Panic(err)
	}
}

// GetSigningKey returns the signing secret as key bytes.
func (c *Config) GetSigningKey() []byte {
	return []byte(c.SigningSecret)
}

// IsProduction reports whether the deployment is flagged production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
