// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing, YAML overlay, and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 200 {
		t.Errorf("ChunkOverlap = %d, want 200", cfg.ChunkOverlap)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.SimilarityThreshold != 0.7 {
		t.Errorf("SimilarityThreshold = %f, want 0.7", cfg.SimilarityThreshold)
	}
	if cfg.HistoryTurns != 5 {
		t.Errorf("HistoryTurns = %d, want 5", cfg.HistoryTurns)
	}
	if cfg.MaxSessionTurns != 20 {
		t.Errorf("MaxSessionTurns = %d, want 20", cfg.MaxSessionTurns)
	}
	if cfg.RequestInterval != 4*time.Second {
		t.Errorf("RequestInterval = %v, want 4s", cfg.RequestInterval)
	}
	if cfg.MaxInputTokens != 30000 {
		t.Errorf("MaxInputTokens = %d, want 30000", cfg.MaxInputTokens)
	}
	if cfg.MaxOutputTokens != 8000 {
		t.Errorf("MaxOutputTokens = %d, want 8000", cfg.MaxOutputTokens)
	}
	if cfg.MaxFileSizeMB != 50 {
		t.Errorf("MaxFileSizeMB = %d, want 50", cfg.MaxFileSizeMB)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("MEDASSIST_CHUNK_SIZE", "500")
	t.Setenv("MEDASSIST_CHUNK_OVERLAP", "100")
	t.Setenv("MEDASSIST_TOP_K", "3")
	t.Setenv("MEDASSIST_SIMILARITY_THRESHOLD", "0.5")
	t.Setenv("MEDASSIST_REQUEST_INTERVAL", "2s")
	t.Setenv("MEDASSIST_CHAT_MODEL", "gpt-4o")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want 500", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 100 {
		t.Errorf("ChunkOverlap = %d, want 100", cfg.ChunkOverlap)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.SimilarityThreshold != 0.5 {
		t.Errorf("SimilarityThreshold = %f, want 0.5", cfg.SimilarityThreshold)
	}
	if cfg.RequestInterval != 2*time.Second {
		t.Errorf("RequestInterval = %v, want 2s", cfg.RequestInterval)
	}
	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %s, want gpt-4o", cfg.ChatModel)
	}
}

func TestLoad_InvalidEnvFallsBackToDefault(t *testing.T) {
	os.Clearenv()
	t.Setenv("MEDASSIST_CHUNK_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want default 1000", cfg.ChunkSize)
	}
}

func TestLoad_YAMLOverlay(t *testing.T) {
	os.Clearenv()

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "chunk_size: 800\ntop_k: 7\nchat_model: gpt-4o\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("MEDASSIST_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ChunkSize != 800 {
		t.Errorf("ChunkSize = %d, want 800 from YAML", cfg.ChunkSize)
	}
	if cfg.TopK != 7 {
		t.Errorf("TopK = %d, want 7 from YAML", cfg.TopK)
	}
	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %s, want gpt-4o from YAML", cfg.ChatModel)
	}
	// Unspecified fields keep their defaults
	if cfg.ChunkOverlap != 200 {
		t.Errorf("ChunkOverlap = %d, want default 200", cfg.ChunkOverlap)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	os.Clearenv()
	t.Setenv("MEDASSIST_CONFIG", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ChatModel:           "gpt-4o-mini",
			EmbeddingModel:      "text-embedding-3-small",
			VectorDimension:     1536,
			ChunkSize:           1000,
			ChunkOverlap:        200,
			TopK:                5,
			SimilarityThreshold: 0.7,
			HistoryTurns:        5,
			MaxSessionTurns:     20,
			RequestInterval:     4 * time.Second,
			MaxInputTokens:      30000,
			MaxOutputTokens:     8000,
			MaxRetries:          3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"overlap equals chunk size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }, true},
		{"zero overlap", func(c *Config) { c.ChunkOverlap = 0 }, true},
		{"zero dimension", func(c *Config) { c.VectorDimension = 0 }, true},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }, true},
		{"negative threshold", func(c *Config) { c.SimilarityThreshold = -0.1 }, true},
		{"zero top_k", func(c *Config) { c.TopK = 0 }, true},
		{"session smaller than history", func(c *Config) { c.MaxSessionTurns = 2 }, true},
		{"zero interval", func(c *Config) { c.RequestInterval = 0 }, true},
		{"zero input tokens", func(c *Config) { c.MaxInputTokens = 0 }, true},
		{"excessive retries", func(c *Config) { c.MaxRetries = 11 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
