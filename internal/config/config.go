// ABOUTME: Centralized configuration for the document assistant
// ABOUTME: Loads env vars with validation and defaults, plus an optional YAML file
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the assistant. The rate interval and
// token ceilings track the external provider's free tier and are policy,
// not invariants.
type Config struct {
	// Storage settings
	DBPath string `yaml:"db_path"`

	// OpenAI settings
	OpenAIKey      string        `yaml:"-"`
	ChatModel      string        `yaml:"chat_model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`

	// Index settings
	VectorDimension int `yaml:"vector_dimension"`
	ChunkSize       int `yaml:"chunk_size"`
	ChunkOverlap    int `yaml:"chunk_overlap"`

	// Retrieval settings
	TopK                int     `yaml:"top_k"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// Conversation settings
	HistoryTurns    int `yaml:"history_turns"`
	MaxSessionTurns int `yaml:"max_session_turns"`

	// Rate limit settings (free-tier provider policy)
	RequestInterval time.Duration `yaml:"request_interval"`
	MaxInputTokens  int           `yaml:"max_input_tokens"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`

	// Ingestion settings
	MaxFileSizeMB int64 `yaml:"max_file_size_mb"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:              os.Getenv("MEDASSIST_DB_PATH"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("MEDASSIST_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:      getEnv("MEDASSIST_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("MEDASSIST_TIMEOUT", 60*time.Second),
		MaxRetries:          getEnvInt("MEDASSIST_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("MEDASSIST_RETRY_DELAY", 2*time.Second),
		VectorDimension:     getEnvInt("MEDASSIST_VECTOR_DIMENSION", 1536),
		ChunkSize:           getEnvInt("MEDASSIST_CHUNK_SIZE", 1000),
		ChunkOverlap:        getEnvInt("MEDASSIST_CHUNK_OVERLAP", 200),
		TopK:                getEnvInt("MEDASSIST_TOP_K", 5),
		SimilarityThreshold: getEnvFloat("MEDASSIST_SIMILARITY_THRESHOLD", 0.7),
		HistoryTurns:        getEnvInt("MEDASSIST_HISTORY_TURNS", 5),
		MaxSessionTurns:     getEnvInt("MEDASSIST_MAX_SESSION_TURNS", 20),
		RequestInterval:     getEnvDuration("MEDASSIST_REQUEST_INTERVAL", 4*time.Second),
		MaxInputTokens:      getEnvInt("MEDASSIST_MAX_INPUT_TOKENS", 30000),
		MaxOutputTokens:     getEnvInt("MEDASSIST_MAX_OUTPUT_TOKENS", 8000),
		MaxFileSizeMB:       int64(getEnvInt("MEDASSIST_MAX_FILE_SIZE_MB", 50)),
	}

	if path := os.Getenv("MEDASSIST_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

// applyFile overlays settings from a YAML file onto the current config
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap <= 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk overlap must be in (0, %d), got %d", c.ChunkSize, c.ChunkOverlap)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("vector dimension must be positive, got %d", c.VectorDimension)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be 0-1, got %f", c.SimilarityThreshold)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.HistoryTurns <= 0 {
		return fmt.Errorf("history turns must be positive, got %d", c.HistoryTurns)
	}
	if c.MaxSessionTurns < c.HistoryTurns {
		return fmt.Errorf("max session turns (%d) must be at least history turns (%d)", c.MaxSessionTurns, c.HistoryTurns)
	}
	if c.RequestInterval <= 0 {
		return fmt.Errorf("request interval must be positive, got %s", c.RequestInterval)
	}
	if c.MaxInputTokens <= 0 || c.MaxOutputTokens <= 0 {
		return fmt.Errorf("token ceilings must be positive, got %d/%d", c.MaxInputTokens, c.MaxOutputTokens)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("max retries must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
