// Package config carga la configuración del servicio desde variables de entorno.
// Los defaults son inseguros a propósito: sirven solo para desarrollo local.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	DefaultJWTSecret = "your-secret-key-change-in-production"
)

var ErrInsecureSecret = errors.New("JWT_SECRET must be set to at least 32 bytes in production")

type Config struct {
	Port        string `env:"PORT,default=8080"`
	Environment string `env:"ENVIRONMENT,default=development"`

	Storage    string `env:"STORAGE,default=postgres"`
	DBDSN      string `env:"DB_DSN"`
	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=admin"`
	DBPassword string `env:"DB_PASSWORD,default=changeMe1234!"`
	DBName     string `env:"DB_NAME,default=petstoredb"`

	JWTSecret    string        `env:"JWT_SECRET,default=your-secret-key-change-in-production"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN,default=24h"`

	// Vacío => habilitado salvo en producción.
	PetsFallback string `env:"PETS_FALLBACK"`

	TokenRevocation bool   `env:"TOKEN_REVOCATION,default=false"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`

	RateLimitRPS       float64 `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST,default=100"`
	AuthRateLimitRPS   float64 `env:"AUTH_RATE_LIMIT_RPS,default=1"`
	AuthRateLimitBurst int     `env:"AUTH_RATE_LIMIT_BURST,default=5"`

	// Separados por ";" (envdecode usa "," como separador de opciones del tag).
	CORSOrigins string `env:"CORS_ORIGINS,default=*"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
	AppName   string `env:"APP_NAME,default=secure-petstore"`
}

// Load lee un .env opcional (ENV_FILE o ./.env) y decodifica el entorno.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default devuelve la configuración de desarrollo sin leer el entorno.
func Default() *Config {
	return &Config{
		Port:               "8080",
		Environment:        EnvDevelopment,
		Storage:            StorageMemory,
		DBHost:             "localhost",
		DBPort:             "5432",
		DBUser:             "admin",
		DBPassword:         "changeMe1234!",
		DBName:             "petstoredb",
		JWTSecret:          DefaultJWTSecret,
		JWTExpiresIn:       24 * time.Hour,
		RateLimitRPS:       10,
		RateLimitBurst:     100,
		AuthRateLimitRPS:   1,
		AuthRateLimitBurst: 5,
		CORSOrigins:        "*",
		LogLevel:           "info",
		LogFormat:          "text",
		AppName:            "secure-petstore",
	}
}

func (c *Config) Validate() error {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))

	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMemory, StoragePostgres, c.Storage)
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && (c.JWTSecret == DefaultJWTSecret || len(c.JWTSecret) < 32) {
		return ErrInsecureSecret
	}
	if c.PetsFallback != "" {
		if _, err := strconv.ParseBool(c.PetsFallback); err != nil {
			return fmt.Errorf("PETS_FALLBACK: %w", err)
		}
	}
	return nil
}

func (c *Config) IsProduction() bool  { return c.Environment == EnvProduction }
func (c *Config) IsDevelopment() bool { return c.Environment == EnvDevelopment }

// FallbackEnabled resuelve si GET /pets puede responder con datos mock cuando la DB no responde.
func (c *Config) FallbackEnabled() bool {
	if c.PetsFallback == "" {
		return !c.IsProduction()
	}
	v, _ := strconv.ParseBool(c.PetsFallback)
	return v
}

// DSN devuelve DB_DSN o lo arma con las variables DB_*.
func (c *Config) DSN() string {
	if strings.TrimSpace(c.DBDSN) != "" {
		return c.DBDSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c *Config) Addr() string { return ":" + c.Port }

func (c *Config) AllowedOrigins() []string {
	out := make([]string, 0)
	for _, o := range strings.Split(c.CORSOrigins, ";") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
