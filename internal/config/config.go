package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/textnorm"
	"github.com/measuretrack/measuretrack/internal/workbook"
)

// FileName is the config file looked up in the working directory.
const FileName = "measuretrack.yaml"

// EnvPrefix prefixes environment overrides, e.g. MEASURETRACK_SOURCE_URL.
const EnvPrefix = "MEASURETRACK"

// Config represents the top-level measuretrack.yaml configuration.
type Config struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Sheets SheetsConfig `yaml:"sheets" mapstructure:"sheets"`
	Colors ColorsConfig `yaml:"colors" mapstructure:"colors"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SourceConfig locates the workbook.
type SourceConfig struct {
	URL           string `yaml:"url" mapstructure:"url"` // export URL or local path
	SpreadsheetID string `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	Format        string `yaml:"format" mapstructure:"format"`
}

// SheetsConfig names the structural sheets.
type SheetsConfig struct {
	Config string   `yaml:"config" mapstructure:"config"`
	Skip   []string `yaml:"skip" mapstructure:"skip"`
}

// ColorsConfig controls lookup fallbacks.
type ColorsConfig struct {
	Fallback string `yaml:"fallback" mapstructure:"fallback"`
}

// ExportConfig controls export output.
type ExportConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Basename string `yaml:"basename" mapstructure:"basename"`
	Format   string `yaml:"format" mapstructure:"format"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load layers defaults, the config file and MEASURETRACK_* environment
// variables. An empty path looks for measuretrack.yaml in the working
// directory and tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.spreadsheet_id", d.Source.SpreadsheetID)
	v.SetDefault("source.format", d.Source.Format)
	v.SetDefault("sheets.config", d.Sheets.Config)
	v.SetDefault("sheets.skip", d.Sheets.Skip)
	v.SetDefault("colors.fallback", d.Colors.Fallback)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.basename", d.Export.Basename)
	v.SetDefault("export.format", d.Export.Format)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new dashboard.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Format: "xlsx",
		},
		Sheets: SheetsConfig{
			Config: "Config",
			Skip:   []string{"Introduction", "Config"},
		},
		Colors: ColorsConfig{
			Fallback: model.DefaultFallbackColor,
		},
		Export: ExportConfig{
			Dir:      ".",
			Basename: "measures",
			Format:   "pdf",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if !textnorm.IsHexColor(textnorm.Hex(c.Colors.Fallback)) {
		return fmt.Errorf("colors.fallback: %q is not a hex color", c.Colors.Fallback)
	}
	if strings.TrimSpace(c.Sheets.Config) == "" {
		return errors.New("sheets.config must not be empty")
	}
	return nil
}

// SourceLocation returns the workbook location: source.url when set,
// otherwise an export URL built from source.spreadsheet_id. Empty when
// neither is configured.
func (c *Config) SourceLocation() string {
	if u := strings.TrimSpace(c.Source.URL); u != "" {
		return u
	}
	if id := strings.TrimSpace(c.Source.SpreadsheetID); id != "" {
		return workbook.ExportURL(id, c.Source.Format)
	}
	return ""
}

// FallbackColor returns the configured fallback color in #-prefixed form.
func (c *Config) FallbackColor() string {
	return textnorm.Hex(c.Colors.Fallback)
}
