package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	shelferrors "github.com/alexisbeaulieu97/shelf/pkg/errors"
)

const (
	// DefaultAPIURL is where the admin client looks for the backend.
	DefaultAPIURL = "http://localhost:8000"
	// DefaultListenAddr is where the reference backend listens.
	DefaultListenAddr = ":8000"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Config holds settings shared by the admin client and the reference backend.
type Config struct {
	APIURL   string       `yaml:"api_url" env:"SHELF_API_URL" validate:"required,http_url"`
	Debug    bool         `yaml:"debug" env:"SHELF_DEBUG"`
	LogLevel string       `yaml:"log_level" env:"SHELF_LOG_LEVEL" validate:"omitempty,log_level"`
	Server   ServerConfig `yaml:"server"`
}

// ServerConfig configures `shelf serve`.
type ServerConfig struct {
	ListenAddr  string `yaml:"listen_addr" env:"SHELF_LISTEN_ADDR" validate:"required,hostname_port"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" validate:"omitempty,url"`
	Seed        bool   `yaml:"seed" env:"SHELF_SEED"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		APIURL:   DefaultAPIURL,
		LogLevel: "info",
		Server: ServerConfig{
			ListenAddr: DefaultListenAddr,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path and environment
// overrides, in that order. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, shelferrors.NewParseError(path, extractLine(err), err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, shelferrors.NewParseError(path, 0, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv exports the variables of a .env file into the process
// environment without overriding ones already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate checks a configuration against its struct rules.
func Validate(cfg *Config) error {
	if cfg == nil {
		return shelferrors.NewValidationError("config", "configuration is nil", nil)
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
