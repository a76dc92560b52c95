package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings are application preferences, separate from the plan itself.
type Settings struct {
	Logging   LoggingSettings   `mapstructure:"logging"`
	Output    OutputSettings    `mapstructure:"output"`
	RecordLog RecordLogSettings `mapstructure:"record_log"`
}

// LoggingSettings configures the zap logger.
type LoggingSettings struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // console, json
	OutputFile string `mapstructure:"output_file"`
}

// OutputSettings picks the default report format and where files go.
type OutputSettings struct {
	Format    string `mapstructure:"format"`
	Directory string `mapstructure:"directory"`
	Currency  string `mapstructure:"currency"`
}

// RecordLogSettings controls the append-only run log.
type RecordLogSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

const settingsEnvPrefix = "DREAMCALC"

func setSettingsDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")
	v.SetDefault("output.format", "console")
	v.SetDefault("output.directory", "")
	v.SetDefault("output.currency", "₹")
	v.SetDefault("record_log.enabled", false)
	v.SetDefault("record_log.path", "dreamcalc_records.jsonl")
}

// LoadSettings reads settings from path, or from dreamcalc.yaml in the
// working directory or the user config directory when path is empty.
// A missing default file is not an error. DREAMCALC_* environment
// variables override file values (e.g. DREAMCALC_LOGGING_LEVEL).
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setSettingsDefaults(v)
	v.SetEnvPrefix(settingsEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("dreamcalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "dreamcalc"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading settings: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := ValidateSettings(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ValidateSettings rejects unknown logging levels and formats.
func ValidateSettings(s *Settings) error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	if s.RecordLog.Enabled && s.RecordLog.Path == "" {
		return fmt.Errorf("record log path is required when the record log is enabled")
	}
	return nil
}
