package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"marketmodel/codec"
)

const (
	DefaultPath = "config/config.yml"

	formatEnvVar    = "MARKETMODEL_FORMAT"
	publisherEnvVar = "MARKETMODEL_PUBLISHER"
)

// envPaths maps an environment to its own config file.
var envPaths = map[string]string{
	environmentProduction: "config/config.production.yml",
	environmentStaging:    "config/config.staging.yml",
}

type Config struct {
	Marketmodel MarketmodelConfig `yaml:"marketmodel"`
	Codecs      CodecsConfig      `yaml:"codecs"`
	Bridge      BridgeConfig      `yaml:"bridge"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Export      ExportConfig      `yaml:"export"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type MarketmodelConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type CodecsConfig struct {
	DefaultFormat string        `yaml:"default_format"`
	Parquet       ParquetConfig `yaml:"parquet"`
	JSON          JSONConfig    `yaml:"json"`
}

type ParquetConfig struct {
	Compression string `yaml:"compression"`
	Parallelism int    `yaml:"parallelism"`
}

type JSONConfig struct {
	Indent string `yaml:"indent"`
}

// BridgeConfig holds what the legacy generation needs but the current one
// does not carry.
type BridgeConfig struct {
	Publisher string `yaml:"publisher"`
}

type CatalogConfig struct {
	Snapshot string `yaml:"snapshot"`
}

type ExportConfig struct {
	Dir        string `yaml:"dir"`
	Location   string `yaml:"location"`
	CatalogDir string `yaml:"catalog_dir"`
}

type LoggingConfig struct {
	Level  string                 `yaml:"level"`
	Format string                 `yaml:"format"`
	Output string                 `yaml:"output"`
	MaxAge int                    `yaml:"max_age"`
	Fields map[string]interface{} `yaml:"fields"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Marketmodel: MarketmodelConfig{Name: "marketmodel", Version: "1.0"},
		Codecs: CodecsConfig{
			DefaultFormat: string(codec.Protobuf),
			Parquet:       ParquetConfig{Compression: "snappy", Parallelism: 4},
		},
		Catalog: CatalogConfig{Snapshot: "catalog/fieldids.yaml"},
		Export:  ExportConfig{Dir: "export", CatalogDir: "export/catalog"},
		Logging: LoggingConfig{Level: "info", Format: "json", Output: "stderr"},
	}
}

// LoadConfig reads path, or the file for the current APP_ENV when path is
// the default. A missing default file yields Default().
func LoadConfig(path string) (*Config, error) {
	path = resolveEnvSpecificPath(path, DefaultPath, envPaths)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			data = nil
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes YAML over Default(), applies environment overrides and
// validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if v := os.Getenv(formatEnvVar); v != "" {
		config.Codecs.DefaultFormat = strings.TrimSpace(v)
	}
	if v := os.Getenv(publisherEnvVar); v != "" {
		config.Bridge.Publisher = strings.TrimSpace(v)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Format returns the parsed default format.
func (c *Config) Format() codec.Format {
	f, _ := codec.ParseFormat(c.Codecs.DefaultFormat)
	return f
}

func validateConfig(cfg *Config) error {
	if cfg.Marketmodel.Name == "" {
		return fmt.Errorf("marketmodel.name is required")
	}

	if cfg.Marketmodel.Version == "" {
		return fmt.Errorf("marketmodel.version is required")
	}

	if _, err := codec.ParseFormat(cfg.Codecs.DefaultFormat); err != nil {
		return fmt.Errorf("codecs.default_format: %w", err)
	}

	switch strings.ToLower(cfg.Codecs.Parquet.Compression) {
	case "", "snappy", "gzip", "none", "uncompressed":
	default:
		return fmt.Errorf("codecs.parquet.compression '%s' is not supported", cfg.Codecs.Parquet.Compression)
	}

	if cfg.Codecs.Parquet.Parallelism < 0 {
		return fmt.Errorf("codecs.parquet.parallelism must not be negative")
	}

	if strings.Trim(cfg.Codecs.JSON.Indent, " \t") != "" {
		return fmt.Errorf("codecs.json.indent may only contain spaces and tabs")
	}

	if IsProductionLike(AppEnvironment()) && cfg.Bridge.Publisher == "" {
		return fmt.Errorf("bridge.publisher is required in %s", AppEnvironment())
	}

	return nil
}
