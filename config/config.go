package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"adventure-us/logger"
)

// Config holds everything the service and the CLI read from the environment.
// Access tokens come from the host's secret store via the environment and are
// never logged.
type Config struct {
	Addr           string   `envconfig:"ADDR" default:":8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	MapboxToken      string        `envconfig:"MAPBOX_TOKEN"`
	MapboxBaseURL    string        `envconfig:"MAPBOX_BASE_URL" default:"https://api.mapbox.com/geocoding/v5/mapbox.places"`
	FoursquareToken  string        `envconfig:"FOURSQUARE_TOKEN"`
	FoursquareURL    string        `envconfig:"FOURSQUARE_BASE_URL" default:"https://api.foursquare.com/v3/places/search"`
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	RequestsPerSec   int           `envconfig:"UPSTREAM_RPS" default:"5"`
	DefaultRadiusMil int           `envconfig:"DEFAULT_RADIUS_MILES" default:"5"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	MemoTTL   time.Duration `envconfig:"MEMO_TTL" default:"1h"`
	MemoSize  int           `envconfig:"MEMO_SIZE" default:"256"`

	MongoURI      string `envconfig:"MONGODB_URI"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"adventure"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogFile   string `envconfig:"LOG_FILE"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}
	return &c, nil
}

// Validate checks the settings the venue pipeline cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.MapboxToken == "" {
		missing = append(missing, "MAPBOX_TOKEN")
	}
	if c.FoursquareToken == "" {
		missing = append(missing, "FOURSQUARE_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.DefaultRadiusMil < 1 || c.DefaultRadiusMil > 50 {
		return fmt.Errorf("DEFAULT_RADIUS_MILES must be between 1 and 50, got %d", c.DefaultRadiusMil)
	}
	if c.RequestsPerSec <= 0 {
		return fmt.Errorf("UPSTREAM_RPS must be positive, got %d", c.RequestsPerSec)
	}
	return nil
}

// Logger maps the log settings onto a logger configuration.
func (c *Config) Logger() *logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.LogLevel
	lc.Format = c.LogFormat
	if c.LogFile != "" {
		lc.Output = "both"
		lc.File.Filename = c.LogFile
	}
	return lc
}
