package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the LabChain ML server.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	Version     string   `mapstructure:"version"`
}

func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.Address) == "" {
		return fmt.Errorf("server.address is required")
	}
	return nil
}

// Supported llm.provider values.
const (
	ProviderNone      = "none"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// LLMConfig selects and tunes the model backend used before falling back to
// the rule-based paths.
type LLMConfig struct {
	Provider     string           `mapstructure:"provider"`
	APIKey       string           `mapstructure:"api_key"`
	Model        string           `mapstructure:"model"`
	BaseURL      string           `mapstructure:"base_url"`
	Timeout      time.Duration    `mapstructure:"timeout"`
	Standardize  GenerationTuning `mapstructure:"standardize"`
	Autocomplete GenerationTuning `mapstructure:"autocomplete"`
}

// GenerationTuning holds sampling settings for one operation.
type GenerationTuning struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

func (l LLMConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Provider)) {
	case "", ProviderNone, ProviderOpenAI, ProviderAnthropic, ProviderOllama:
	default:
		return fmt.Errorf("llm.provider %q is not supported", l.Provider)
	}
	if l.Timeout < 0 {
		return fmt.Errorf("llm.timeout cannot be negative")
	}
	for name, t := range map[string]GenerationTuning{"standardize": l.Standardize, "autocomplete": l.Autocomplete} {
		if t.Temperature < 0 || t.Temperature > 2 {
			return fmt.Errorf("llm.%s.temperature must be within [0, 2]", name)
		}
		if t.MaxTokens < 0 {
			return fmt.Errorf("llm.%s.max_tokens cannot be negative", name)
		}
	}
	return nil
}

// CacheConfig controls caching of model-backed standardization results.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func (c CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Redis.Host) == "" || strings.TrimSpace(c.Redis.Port) == "" {
		return fmt.Errorf("cache.redis.host and cache.redis.port are required when the cache is enabled")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 when the cache is enabled")
	}
	return nil
}

// LoggingConfig controls log level and the optional JSON log file.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// TelemetryConfig contains metrics settings
type TelemetryConfig struct {
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("server.version", "1.0.0")
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.standardize.temperature", 0.3)
	v.SetDefault("llm.standardize.max_tokens", 2000)
	v.SetDefault("llm.autocomplete.temperature", 0.5)
	v.SetDefault("llm.autocomplete.max_tokens", 500)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.redis.port", "6379")
	v.SetDefault("cache.redis.timeout", 5*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("telemetry.metrics_enabled", true)
}

// LoadConfig reads the JSON config file (an explicit path, or "config" in
// ./config or .), then LABCHAIN_* environment overrides. OPENAI_API_KEY and
// PORT are still honoured for older deployments.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	setDefaults(v)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if exe, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(exe))
		}
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("LABCHAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", "LABCHAIN_LLM_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind llm.api_key: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" && os.Getenv("LABCHAIN_SERVER_ADDRESS") == "" {
		v.Set("server.address", ":"+port)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	for _, check := range []func() error{c.Server.Validate, c.LLM.Validate, c.Cache.Validate} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
