package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Response ResponseConfig
	Chart    ChartConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// ResponseConfig controls frequency response sampling
type ResponseConfig struct {
	Points int
}

// ChartConfig holds the size of each chart panel in pixels
type ChartConfig struct {
	Width  int
	Height int
}

var keys = []string{
	"PORT",
	"ENVIRONMENT",
	"ALLOWED_ORIGINS",
	"LOG_LEVEL",
	"RESPONSE_POINTS",
	"CHART_WIDTH",
	"CHART_HEIGHT",
	"SHUTDOWN_TIMEOUT",
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:8080,http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RESPONSE_POINTS", 512)
	v.SetDefault("CHART_WIDTH", 900)
	v.SetDefault("CHART_HEIGHT", 320)
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")

	// Environment variables override .env file values
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev" // matches .env.dev
	}

	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// The file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn().Err(err).Str("env", env).Msg("Ignoring unreadable .env file")
		}
	}

	var config Config
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = v.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitOrigins(v.GetString("ALLOWED_ORIGINS"))
	config.Server.ShutdownTimeout = v.GetDuration("SHUTDOWN_TIMEOUT")
	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Response.Points = v.GetInt("RESPONSE_POINTS")
	config.Chart.Width = v.GetInt("CHART_WIDTH")
	config.Chart.Height = v.GetInt("CHART_HEIGHT")

	if config.Server.ShutdownTimeout <= 0 {
		config.Server.ShutdownTimeout = 30 * time.Second
	}

	log.Debug().
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Int("response_points", config.Response.Points).
		Msg("Configuration loaded")

	return &config, nil
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IsDev reports whether the service runs in the local development environment
func (c *Config) IsDev() bool {
	return c.Server.Env == "" || c.Server.Env == "dev"
}

// SetupLogging configures the global zerolog logger. Development gets the
// console writer, every other environment logs JSON.
func SetupLogging(cfg *Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
