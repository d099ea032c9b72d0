package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"todo-web/internal/observability/jsonlog"
)

type Config struct {
	HTTP  HTTPConfig `yaml:"http"`
	Log   LogConfig  `yaml:"log"`
	Debug bool       `yaml:"debug" env:"TODO_DEBUG" env-default:"false"`
}

type HTTPConfig struct {
	Addr              string        `yaml:"addr" env:"TODO_HTTP_ADDR" env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"TODO_HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	RequestTimeout    time.Duration `yaml:"request_timeout" env:"TODO_HTTP_REQUEST_TIMEOUT" env-default:"3s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"TODO_HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	MaxFormBytes      int64         `yaml:"max_form_bytes" env:"TODO_HTTP_MAX_FORM_BYTES" env-default:"1048576"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"TODO_LOG_LEVEL" env-default:"info"`
}

// Load reads the YAML file at path when path is not empty, then applies
// environment overrides and defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.HTTP.ReadHeaderTimeout <= 0 || c.HTTP.RequestTimeout <= 0 || c.HTTP.ShutdownTimeout <= 0 {
		return errors.New("http timeouts must be positive")
	}
	if c.HTTP.MaxFormBytes <= 0 {
		return errors.New("http.max_form_bytes must be positive")
	}
	if _, err := jsonlog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel is the configured level, lowered to debug when Debug is set.
func (c Config) LogLevel() jsonlog.Level {
	if c.Debug {
		return jsonlog.LevelDebug
	}
	lvl, err := jsonlog.ParseLevel(c.Log.Level)
	if err != nil {
		return jsonlog.LevelInfo
	}
	return lvl
}

// Usage describes the environment variables Load understands.
func Usage() string {
	var cfg Config
	desc, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return desc
}
