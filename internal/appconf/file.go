package appconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// FileConfig mirrors the config file. Keys are kebab-case in both JSON and
// YAML files.
type FileConfig struct {
	Port           int      `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Env            string   `json:"env" yaml:"env" validate:"omitempty,oneof=development test production"`
	ApiKeys        []string `json:"api-keys" yaml:"api-keys" validate:"dive,required"`
	Verbose        bool     `json:"verbose" yaml:"verbose"`
	RateLimit      int      `json:"rate-limit" yaml:"rate-limit" validate:"gte=0"`
	LogLevel       string   `json:"log-level" yaml:"log-level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat      string   `json:"log-format" yaml:"log-format" validate:"omitempty,oneof=json text"`
	LogFile        string   `json:"log-file" yaml:"log-file"`
	DataPath       string   `json:"data-path" yaml:"data-path" validate:"required"`
	DataFormat     string   `json:"data-format" yaml:"data-format" validate:"omitempty,oneof=json text gtfs"`
	BusWaitTime    *int     `json:"bus-wait-time" yaml:"bus-wait-time" validate:"omitempty,gte=0"`
	BusVelocity    *float64 `json:"bus-velocity" yaml:"bus-velocity" validate:"omitempty,gt=0"`
	RouteCacheSize int      `json:"route-cache-size" yaml:"route-cache-size" validate:"gte=0"`
	AuthHeaderKey  string   `json:"data-auth-header-key" yaml:"data-auth-header-key"`
	AuthHeaderVal  string   `json:"data-auth-header-value" yaml:"data-auth-header-value"`
}

// LoadFromFile reads and validates a config file. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func LoadFromFile(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *FileConfig) ToAppConfig() Config {
	port := c.Port
	if port == 0 {
		port = 4000
	}
	apiKeys := c.ApiKeys
	if apiKeys == nil {
		apiKeys = []string{}
	}
	rateLimit := c.RateLimit
	if rateLimit == 0 {
		rateLimit = 100
	}
	return Config{
		Port:      port,
		Env:       EnvFlagToEnvironment(c.Env),
		ApiKeys:   apiKeys,
		Verbose:   c.Verbose,
		RateLimit: rateLimit,
		LogLevel:  c.LogLevel,
		LogFormat: c.LogFormat,
		LogFile:   c.LogFile,
	}
}

func (c *FileConfig) ToDataConfig() DataConfig {
	return DataConfig{
		Path:            c.DataPath,
		Format:          DetectFormat(c.DataPath, c.DataFormat),
		BusWaitTime:     c.BusWaitTime,
		BusVelocity:     c.BusVelocity,
		RouteCacheSize:  c.RouteCacheSize,
		AuthHeaderKey:   c.AuthHeaderKey,
		AuthHeaderValue: c.AuthHeaderVal,
	}
}

// DetectFormat returns the explicit format when set, otherwise guesses from
// the file extension: .zip is GTFS, .txt is text, anything else JSON.
func DetectFormat(path, explicit string) DataFormat {
	if explicit != "" {
		return DataFormat(strings.ToLower(explicit))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return FormatGTFS
	case ".txt":
		return FormatText
	default:
		return FormatJSON
	}
}
