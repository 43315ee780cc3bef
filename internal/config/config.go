package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sheet-filter/internal/codec"
	"sheet-filter/internal/exporter"
	"sheet-filter/internal/source"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SHEETFILTER_SOURCE_LOCATION
const EnvPrefix = "SHEETFILTER"

// Config represents the application configuration
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Filter FilterConfig `mapstructure:"filter"`
	Output OutputConfig `mapstructure:"output"`
	Server ServerConfig `mapstructure:"server"`
}

// SourceConfig describes where the spreadsheet comes from
type SourceConfig struct {
	Location   string   `mapstructure:"location"`    // Local path or http(s) URL
	HeaderMode string   `mapstructure:"header_mode"` // "row" or "letters"
	Encoding   []string `mapstructure:"encoding"`    // Encoding hints for CSV sources (e.g., ["utf-8", "euc-kr"])
}

// FilterConfig holds defaults for filter controls
type FilterConfig struct {
	Mode string `mapstructure:"mode"` // "null" or "not-null"
}

// OutputConfig holds export settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`       // Output directory
	FileName string   `mapstructure:"file_name"` // Output file name (without extension)
	Formats  []string `mapstructure:"formats"`   // Export formats (xlsx, csv, json, html, docx)
}

// ServerConfig holds settings for the web UI
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for "config.yaml" in the current directory.
// A missing file is not an error; environment variables override both.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set sensible defaults
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	// Read config file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isNotFound(err error) bool {
	if os.IsNotExist(err) {
		return true
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "no such file") || strings.Contains(msg, "cannot find")
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.location", "")
	v.SetDefault("source.header_mode", string(codec.HeaderRow))
	v.SetDefault("source.encoding", []string{"utf-8", "windows-1252"})

	v.SetDefault("filter.mode", "null")

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", exporter.DefaultFileName)
	v.SetDefault("output.formats", []string{"xlsx"})

	v.SetDefault("server.addr", "127.0.0.1:8080")
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	if c.Source.Location != "" && !source.IsRemote(c.Source.Location) {
		absSource, err := filepath.Abs(c.Source.Location)
		if err != nil {
			return fmt.Errorf("failed to resolve source.location: %w", err)
		}
		c.Source.Location = absSource
	}

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// CodecOptions builds decoding options from the source settings
func (c *Config) CodecOptions() (codec.Options, error) {
	mode, err := codec.ParseHeaderMode(c.Source.HeaderMode)
	if err != nil {
		return codec.Options{}, err
	}
	return codec.Options{HeaderMode: mode, Encodings: c.Source.Encoding}, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source.Location) == "" {
		return fmt.Errorf("source.location is required")
	}

	if !source.IsRemote(c.Source.Location) {
		if _, err := os.Stat(c.Source.Location); os.IsNotExist(err) {
			return fmt.Errorf("source.location does not exist: %s", c.Source.Location)
		}
	}

	if _, err := codec.ParseHeaderMode(c.Source.HeaderMode); err != nil {
		return err
	}

	if len(exporter.GetExporters(c.Output.Formats)) == 0 {
		return fmt.Errorf("output.formats must name at least one of xlsx, csv, json, html, docx")
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Sheet Filter Configuration ===")
	fmt.Printf("Source:           %s\n", c.Source.Location)
	fmt.Printf("Header Mode:      %s\n", c.Source.HeaderMode)
	fmt.Printf("Encoding Hints:   %v\n", c.Source.Encoding)
	fmt.Printf("Default Mode:     %s\n", c.Filter.Mode)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output File:      %s\n", c.Output.FileName)
	fmt.Printf("Output Formats:   %v\n", c.Output.Formats)
	fmt.Printf("Server Address:   %s\n", c.Server.Addr)
	fmt.Println("==================================")
}
