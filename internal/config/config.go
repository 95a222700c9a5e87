package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	DBDriver   string `env:"DB_DRIVER" env-default:"postgres"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"taskflow.db"`
	StorageDir string `env:"STORAGE_DIR" env-default:"uploads"`
	// AppURL is linked from notification emails.
	AppURL   string `env:"APP_URL" env-default:"http://localhost:3000"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	CORSOrigins     []string      `env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:3000"`
	MaxUploadSize   int64         `env:"HTTP_MAX_UPLOAD_SIZE" env-default:"10485760"`
}

// PostgresConfig is required only when DB_DRIVER is postgres.
type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type JWTConfig struct {
	Issuer          string        `env:"JWT_ISSUER" env-default:"taskflow"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
}

// SMTPConfig disables email delivery when Host is empty.
type SMTPConfig struct {
	Host        string        `env:"SMTP_HOST"`
	Port        int           `env:"SMTP_PORT" env-default:"587"`
	Username    string        `env:"SMTP_USERNAME"`
	Password    string        `env:"SMTP_PASSWORD"`
	FromAddress string        `env:"SMTP_FROM_ADDRESS"`
	FromName    string        `env:"SMTP_FROM_NAME" env-default:"TaskFlow"`
	Timeout     time.Duration `env:"SMTP_TIMEOUT" env-default:"10s"`
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DBDriverPostgres:
		pg := c.Postgres
		if pg.Host == "" || pg.Username == "" || pg.Database == "" {
			return errors.New("POSTGRES_HOST, POSTGRES_USERNAME and POSTGRES_DATABASE are required for the postgres driver")
		}
	case DBDriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER: %q", c.DBDriver)
	}

	if c.SMTP.Host != "" && c.SMTP.FromAddress == "" {
		return errors.New("SMTP_FROM_ADDRESS is required when SMTP_HOST is set")
	}
	return nil
}
