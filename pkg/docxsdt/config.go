package docxsdt

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains all configuration options for the docxsdt engine.
type Config struct {
	// CacheMaxCost bounds the ristretto document cache's total cost
	// (each cached part costs its event count). 0 disables caching.
	CacheMaxCost int64
	// CacheTTL is the time-to-live for a cached scan. 0 means no expiration.
	CacheTTL time.Duration
	// LogLevel controls the verbosity of logging (debug, info, warn, error).
	LogLevel string
	// MaxNestingDepth bounds how deeply w:sdt elements may nest before
	// indexing refuses the part as structurally unreasonable, reported as a
	// StructuralError.
	MaxNestingDepth int
	// MissingTagValue is substituted for a tag with no entry in the
	// mapping. Per the specification a missing tag is never an error.
	MissingTagValue string
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheMaxCost:    1 << 26, // 64Mi events
		CacheTTL:        0,
		LogLevel:        "info",
		MaxNestingDepth: 64,
		MissingTagValue: "MISSING",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables,
// applying defaults for anything unset.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("DOCXSDT_CACHE_MAX_COST"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.CacheMaxCost = size
		}
	}

	if val := os.Getenv("DOCXSDT_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}

	if val := os.Getenv("DOCXSDT_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	if val := os.Getenv("DOCXSDT_MAX_NESTING_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			config.MaxNestingDepth = depth
		}
	}

	if val := os.Getenv("DOCXSDT_MISSING_TAG_VALUE"); val != "" {
		config.MissingTagValue = val
	}

	return config
}

// yamlConfig mirrors Config's fields under lowercase YAML keys; a separate
// type keeps the public Config free of struct tags.
type yamlConfig struct {
	CacheMaxCost    int64  `yaml:"cache_max_cost"`
	CacheTTL        string `yaml:"cache_ttl"`
	LogLevel        string `yaml:"log_level"`
	MaxNestingDepth int    `yaml:"max_nesting_depth"`
	MissingTagValue string `yaml:"missing_tag_value"`
}

// LoadConfigYAML reads a YAML document describing engine configuration,
// applying defaults for anything the document leaves unset.
func LoadConfigYAML(data []byte) (*Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if raw.CacheMaxCost != 0 {
		config.CacheMaxCost = raw.CacheMaxCost
	}
	if raw.CacheTTL != "" {
		d, err := time.ParseDuration(raw.CacheTTL)
		if err != nil {
			return nil, err
		}
		config.CacheTTL = d
	}
	if raw.LogLevel != "" {
		config.LogLevel = raw.LogLevel
	}
	if raw.MaxNestingDepth != 0 {
		config.MaxNestingDepth = raw.MaxNestingDepth
	}
	if raw.MissingTagValue != "" {
		config.MissingTagValue = raw.MissingTagValue
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.CacheMaxCost < 0 {
		return errors.New("cache max cost cannot be negative")
	}
	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxNestingDepth <= 0 {
		return errors.New("max nesting depth must be positive")
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration.
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig installs config as the global configuration.
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	UpdateLoggerFromConfig()
}
