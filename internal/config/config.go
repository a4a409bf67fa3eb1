// Package config loads CLI settings from flags, the environment, dotenv
// files and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem dotenv and config files are read from.
var AppFs = afero.NewOsFs()

const (
	// EnvPrefix prefixes every environment variable, e.g. DATAMUNGER_LIMIT.
	EnvPrefix = "DATAMUNGER"
	// ConfigName is the config file name searched for, without extension.
	ConfigName = ".datamunger"
)

// Config keys, shared with flag bindings.
const (
	KeyFormat   = "format"
	KeyLimit    = "limit"
	KeyWorkers  = "workers"
	KeyLogLevel = "log_level"
	KeyDataDir  = "data_dir"
)

// Config holds the application configuration
type Config struct {
	Format   string `mapstructure:"format"`
	Limit    int    `mapstructure:"limit"`
	Workers  int    `mapstructure:"workers"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// NewViper returns a viper instance with defaults and environment lookup
// configured, reading files from fs.
func NewViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyFormat, "jsonl")
	v.SetDefault(KeyLimit, 0)
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyDataDir, "")
	return v
}

// Load reads configuration into a Config. configFile names an explicit
// config file; when empty, .datamunger.yaml is searched for in the working
// directory, the home directory and ~/.config/datamunger, and a missing file
// is not an error.
//
// Precedence, highest first: flags bound to v, environment, config file,
// defaults. .env and .env.local in the working directory feed the
// environment; .env never overrides variables that are already set while
// .env.local does.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := loadDotEnv(AppFs, ".env", false); err != nil {
		return nil, err
	}
	if err := loadDotEnv(AppFs, ".env.local", true); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "datamunger"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid config: workers must be at least 1, got %d", c.Workers)
	}
	if c.Limit < 0 {
		return fmt.Errorf("invalid config: limit must not be negative, got %d", c.Limit)
	}
	return nil
}

// loadDotEnv exports the variables of a dotenv file if it exists on fs.
func loadDotEnv(fs afero.Fs, name string, override bool) error {
	f, err := fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); set && !override {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}
