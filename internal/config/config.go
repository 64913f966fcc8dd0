package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrParsingConfig is returned when the file or environment cannot be parsed.
	ErrParsingConfig = errors.New("failed to parse config")
	// ErrInvalidConfig is returned when a loaded value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the CLI settings. Precedence, lowest first: defaults, YAML
// file, .env file, process environment.
type Config struct {
	Log struct {
		Level  string `yaml:"level" env:"SENML_LOG_LEVEL"`
		Format string `yaml:"format" env:"SENML_LOG_FORMAT"`
	} `yaml:"log"`
	// Language selects the message catalog ("en" or "ja").
	Language string `yaml:"language" env:"SENML_LANGUAGE"`
	Decode   struct {
		StrictKeys bool  `yaml:"strict_keys" env:"SENML_STRICT_KEYS"`
		MaxBytes   int64 `yaml:"max_bytes" env:"SENML_MAX_BYTES"`
	} `yaml:"decode"`
}

// Default returns the built-in settings.
func Default() Config {
	var c Config
	c.Log.Level = "info"
	c.Log.Format = "console"
	c.Language = "en"
	c.Decode.MaxBytes = 16 << 20
	return c
}

// Load builds a Config from defaults, the optional YAML file at path, a
// ".env" file in the working directory (if any) and the environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, errors.Join(ErrParsingConfig, err)
		}
	}

	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()

	if err := env.Parse(&c); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the CLI cannot act on.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	switch c.Language {
	case "en", "ja":
	default:
		return fmt.Errorf("%w: language %q", ErrInvalidConfig, c.Language)
	}
	if c.Decode.MaxBytes < 0 {
		return fmt.Errorf("%w: max_bytes must not be negative", ErrInvalidConfig)
	}
	return nil
}
