// Package config loads the CLI configuration from config.yaml, environment
// variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mokka-studios/datatable/pkg/types"
)

const (
	fileName = "config"
	fileType = "yaml"

	// FileBase is the config file name inside the config directory.
	FileBase = fileName + "." + fileType

	// EnvPrefix prefixes environment overrides, e.g. DATATABLE_PAGE_SIZE.
	EnvPrefix = "DATATABLE"
)

// Config keys.
const (
	KeyBackend      = "backend"
	KeyDataDir      = "data_dir"
	KeyPageSize     = "page_size"
	KeyLocale       = "locale"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeySeedDemoData = "seed_demo_data"
)

// Config is the decoded and validated configuration.
type Config struct {
	Backend      string `mapstructure:"backend" json:"backend" yaml:"backend" validate:"required,oneof=sqlite"`
	DataDir      string `mapstructure:"data_dir" json:"data_dir" yaml:"data_dir,omitempty"`
	PageSize     int    `mapstructure:"page_size" json:"page_size" yaml:"page_size" validate:"oneof=10 20 30 40 50"`
	Locale       string `mapstructure:"locale" json:"locale" yaml:"locale" validate:"required,bcp47_language_tag"`
	LogLevel     string `mapstructure:"log_level" json:"log_level" yaml:"log_level" validate:"oneof=trace debug info warn warning error"`
	LogFormat    string `mapstructure:"log_format" json:"log_format" yaml:"log_format" validate:"oneof=text json"`
	SeedDemoData bool   `mapstructure:"seed_demo_data" json:"seed_demo_data" yaml:"seed_demo_data"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Backend:      types.BackendSQLite,
		PageSize:     10,
		Locale:       "en",
		LogLevel:     "info",
		LogFormat:    "text",
		SeedDemoData: true,
	}
}

// Storage returns the backend configuration for types.Backend.Attach.
func (c Config) Storage() types.Config {
	return types.Config{Backend: c.Backend, DataDir: c.DataDir, SeedDemoData: c.SeedDemoData}
}

// ErrInvalid is wrapped by every validation failure of Load.
var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New()

// Load reads config.yaml from configDir, writing a default file on first
// run, applies DATATABLE_* environment overrides and validates the result.
func Load(configDir string) (Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return Config{}, fmt.Errorf("creating config dir: %w", err)
	}
	if err := WriteDefault(filepath.Join(configDir, FileBase)); err != nil {
		return Config{}, err
	}

	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyBackend, d.Backend)
	v.SetDefault(KeyDataDir, d.DataDir)
	v.SetDefault(KeyPageSize, d.PageSize)
	v.SetDefault(KeyLocale, d.Locale)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeySeedDemoData, d.SeedDemoData)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field, reporting the first problem.
func (c Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s: %v fails %s", ErrInvalid, strings.ToLower(fe.Field()), fe.Value(), fe.Tag())
	}
	return err
}

// defaultHeader precedes the generated config file.
const defaultHeader = `# datatable configuration
# Every key can be overridden with a DATATABLE_<KEY> environment variable.
`

// WriteDefault writes the default configuration to path unless a file
// already exists there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(defaultHeader), data...), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
