package settings

import (
	"errors"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns a Config with every section filled with usable defaults.
func Default() *Config {
	return &Config{
		Logger: Logger{
			LogLevel:   "info",
			MaxBackups: 3,
			MaxAge:     28,
			MaxSize:    100,
		},
		Redis: Redis{
			Host:      "localhost",
			Port:      6379,
			KeyPrefix: "stn:checkpoint:",
		},
		Queue: Queue{
			InitialCapacity: 4,
		},
		Progress: Progress{
			Interval: 1000,
			Label:    "progress",
		},
	}
}

// Load reads a YAML configuration file on top of Default.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pkgerrors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pkgerrors.Wrap(err, "invalid config")
	}
	return nil
}
