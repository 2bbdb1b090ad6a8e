package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the ReviewLens server.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	HuggingFace HuggingFaceConfig
	Gemini      GeminiConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type HuggingFaceConfig struct {
	BaseURL        string
	APIKey         string
	SentimentModel string
	ScoringModel   string
	SummaryModel   string
	Timeout        time.Duration
}

type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("REVIEWLENS_PORT", 8080),
			Env:  envString("REVIEWLENS_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		HuggingFace: HuggingFaceConfig{
			BaseURL:        envString("HUGGINGFACE_API_URL", "https://api-inference.huggingface.co"),
			APIKey:         os.Getenv("HUGGINGFACE_API_KEY"),
			SentimentModel: envString("SENTIMENT_MODEL", "cardiffnlp/twitter-roberta-base-sentiment-latest"),
			ScoringModel:   envString("SCORING_MODEL", "nlptown/bert-base-multilingual-uncased-sentiment"),
			SummaryModel:   envString("SUMMARY_MODEL", "facebook/bart-large-cnn"),
			Timeout:        envDurationSecs("HUGGINGFACE_TIMEOUT_SECS", 30*time.Second),
		},
		Gemini: GeminiConfig{
			BaseURL: envString("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   envString("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: envDurationSecs("GEMINI_TIMEOUT_SECS", 60*time.Second),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if !strings.HasPrefix(c.HuggingFace.BaseURL, "http://") && !strings.HasPrefix(c.HuggingFace.BaseURL, "https://") {
		return fmt.Errorf("HUGGINGFACE_API_URL must start with http:// or https://, got %q", c.HuggingFace.BaseURL)
	}
	if !strings.HasPrefix(c.Gemini.BaseURL, "http://") && !strings.HasPrefix(c.Gemini.BaseURL, "https://") {
		return fmt.Errorf("GEMINI_API_URL must start with http:// or https://, got %q", c.Gemini.BaseURL)
	}

	return nil
}

// InferenceEnabled reports whether remote classification and scoring should
// be attempted. An unset API key means keyword fallback only.
func (c *Config) InferenceEnabled() bool {
	return c.HuggingFace.APIKey != ""
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
