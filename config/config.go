package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the news agent
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // json or text
	LogFile   string `mapstructure:"log_file"`   // empty logs to stderr
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address        string        `mapstructure:"address"`
	AllowOrigins   []string      `mapstructure:"allow_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LLMConfig contains the language-model provider configuration
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Chat     Sampling      `mapstructure:"chat"`
	Summary  Sampling      `mapstructure:"summary"`
}

// Sampling bounds a single kind of model call.
type Sampling struct {
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// SourcesConfig contains search and extraction provider settings
type SourcesConfig struct {
	Search     SearchConfig     `mapstructure:"search"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
}

// SearchConfig selects and configures the web search provider
type SearchConfig struct {
	Provider       string        `mapstructure:"provider"` // exa, serper, brave
	ExaAPIKey      string        `mapstructure:"exa_api_key"`
	ExaBaseURL     string        `mapstructure:"exa_base_url"`
	SerperAPIKey   string        `mapstructure:"serper_api_key"`
	BraveAPIKey    string        `mapstructure:"brave_api_key"`
	IncludeDomains []string      `mapstructure:"include_domains"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// ExtractionConfig selects and configures full-content extraction
type ExtractionConfig struct {
	Provider        string        `mapstructure:"provider"` // exa, readability, chromedp
	MinContentChars int           `mapstructure:"min_content_chars"`
	Concurrency     int           `mapstructure:"concurrency"`
	MaxChars        int           `mapstructure:"max_chars"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// TelemetryConfig contains metrics settings
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

// StorageConfig contains the optional article cache settings
type StorageConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// DefaultIncludeDomains is the allow-list of reputable news domains searched by default.
var DefaultIncludeDomains = []string{"news.yahoo.com", "reuters.com", "apnews.com", "bbc.com", "cnn.com", "nbcnews.com"}

func (r RedisConfig) Validate() error {
	if !r.Enabled {
		return nil
	}
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port required")
	}
	if r.CacheTTL <= 0 {
		return fmt.Errorf("storage.redis.cache_ttl must be > 0")
	}
	return nil
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key required (or OPENAI_API_KEY)")
	}
	if strings.TrimSpace(l.Model) == "" {
		return fmt.Errorf("llm.model required")
	}
	if l.Chat.MaxTokens <= 0 || l.Summary.MaxTokens <= 0 {
		return fmt.Errorf("llm max_tokens must be > 0")
	}
	return nil
}

func (s SourcesConfig) Validate() error {
	switch s.Search.Provider {
	case "exa":
		if strings.TrimSpace(s.Search.ExaAPIKey) == "" {
			return fmt.Errorf("sources.search.exa_api_key required (or EXA_API_KEY)")
		}
	case "serper":
		if strings.TrimSpace(s.Search.SerperAPIKey) == "" {
			return fmt.Errorf("sources.search.serper_api_key required")
		}
	case "brave":
		if strings.TrimSpace(s.Search.BraveAPIKey) == "" {
			return fmt.Errorf("sources.search.brave_api_key required")
		}
	default:
		return fmt.Errorf("sources.search.provider %q unsupported", s.Search.Provider)
	}
	if s.Extraction.Provider == "exa" && strings.TrimSpace(s.Search.ExaAPIKey) == "" {
		return fmt.Errorf("exa extraction requires sources.search.exa_api_key")
	}
	if s.Extraction.Concurrency <= 0 {
		return fmt.Errorf("sources.extraction.concurrency must be > 0")
	}
	return nil
}

// Normalize applies defaults for values the config file left empty.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.Server.Address) == "" {
		c.Server.Address = ":8000"
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = []string{"http://localhost:3000"}
	}
	if len(c.Sources.Search.IncludeDomains) == 0 {
		c.Sources.Search.IncludeDomains = append([]string(nil), DefaultIncludeDomains...)
	}
	if c.Telemetry.MetricsPath == "" {
		c.Telemetry.MetricsPath = "/metrics"
	}
	c.Sources.Search.Provider = strings.ToLower(strings.TrimSpace(c.Sources.Search.Provider))
	c.Sources.Extraction.Provider = strings.ToLower(strings.TrimSpace(c.Sources.Extraction.Provider))
}

func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.Sources.Validate(); err != nil {
		return err
	}
	return c.Storage.Redis.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.log_format", "json")
	v.SetDefault("general.log_file", "")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.request_timeout", 2*time.Minute)
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "gpt-3.5-turbo")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.chat.max_tokens", 1000)
	v.SetDefault("llm.chat.temperature", 0.7)
	v.SetDefault("llm.summary.max_tokens", 800)
	v.SetDefault("llm.summary.temperature", 0.3)
	v.SetDefault("sources.search.provider", "exa")
	v.SetDefault("sources.search.exa_base_url", "https://api.exa.ai")
	v.SetDefault("sources.search.serper_api_key", "")
	v.SetDefault("sources.search.brave_api_key", "")
	v.SetDefault("sources.search.include_domains", DefaultIncludeDomains)
	v.SetDefault("sources.search.timeout", 20*time.Second)
	v.SetDefault("sources.extraction.provider", "exa")
	v.SetDefault("sources.extraction.min_content_chars", 100)
	v.SetDefault("sources.extraction.concurrency", 3)
	v.SetDefault("sources.extraction.max_chars", 20000)
	v.SetDefault("sources.extraction.timeout", 20*time.Second)
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.metrics_path", "/metrics")
	v.SetDefault("storage.redis.enabled", false)
	v.SetDefault("storage.redis.host", "localhost")
	v.SetDefault("storage.redis.port", "6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.timeout", 5*time.Second)
	v.SetDefault("storage.redis.cache_ttl", 15*time.Minute)
}

// LoadConfig loads config from file, .env and environment. A missing config
// file is not an error when path is empty; everything has a default or an env binding.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("json")   // REQUIRED if the config file does not have the extension in the name
	setDefaults(v)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if exe, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exe)
			v.AddConfigPath(exeDir)
			v.AddConfigPath(filepath.Join(exeDir, "..", "config"))
		}
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("NEWSAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // read in environment variables that match (NEWSAGENT_*)

	// legacy variable names
	_ = v.BindEnv("llm.api_key", "NEWSAGENT_LLM_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("sources.search.exa_api_key", "NEWSAGENT_SOURCES_SEARCH_EXA_API_KEY", "EXA_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
