package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig      `env-prefix:"APP_"`
	Database DatabaseConfig `env-prefix:"DB_"`
	Jwt      JwtConfig      `env-prefix:"JWT_"`
	Nats     NatsConfig     `env-prefix:"NATS_"`
	Admin    AdminConfig    `env-prefix:"ADMIN_"`
	Otel     OtelConfig     `env-prefix:"OTEL_"`
}

type AppConfig struct {
	Port               string `env:"PORT" env-default:"3000"`
	Environment        string `env:"ENV" env-default:"development"`
	LogFilePath        string `env:"LOG_FILE_PATH" env-default:"logs/app.log"`
	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

type DatabaseConfig struct {
	Connection      string `env:"CONNECTION_STRING"`
	ConnectAttempts uint   `env:"CONNECT_ATTEMPTS" env-default:"5"`
	LogLevel        string `env:"LOG_LEVEL" env-default:"warn"`
}

type JwtConfig struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" env-default:"24h"`
}

// NatsConfig selects the event transport. An empty URL keeps events in process.
type NatsConfig struct {
	URL string `env:"URL"`
}

type AdminConfig struct {
	TimeZone    string `env:"TIME_ZONE" env-default:"UTC"`
	ListPerPage int    `env:"LIST_PER_PAGE" env-default:"100"`
}

type OtelConfig struct {
	Enabled  bool   `env:"ENABLED" env-default:"false"`
	Endpoint string `env:"EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Location resolves the admin time zone used for date filters.
func (c AdminConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load admin time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Parse reads .env when present, then the environment.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if strings.TrimSpace(cfg.Jwt.Secret) == "" {
		return nil, fmt.Errorf("parse config: JWT_SECRET is required")
	}
	return &cfg, nil
}

func Load() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}
