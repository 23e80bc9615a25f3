package oracle

import (
	"fmt"
	"os"
	"strconv"
)

// Oracle provider names.
const (
	ProviderLexical   = "lexical"
	ProviderEmbedding = "embedding"
	ProviderAgent     = "agent"
)

// Config selects and parameterizes the oracle provider.
type Config struct {
	Provider string `toml:"provider"`
	// APIKey and BaseURL configure the embedding provider's API client.
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	// EmbeddingModel names the embedding model for the embedding provider.
	EmbeddingModel string `toml:"embedding_model"`
	// RelatednessThreshold is the similarity at which the lexical and
	// embedding providers report a parameter-name match.
	RelatednessThreshold float64 `toml:"relatedness_threshold"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider             string
	APIKey               string
	BaseURL              string
	EmbeddingModel       string
	RelatednessThreshold string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.EmbeddingModel != "" {
		c.EmbeddingModel = overlay.EmbeddingModel
	}
	if overlay.RelatednessThreshold != 0 {
		c.RelatednessThreshold = overlay.RelatednessThreshold
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLexical
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "text-embedding-3-small"
	}
	if c.RelatednessThreshold == 0 {
		c.RelatednessThreshold = 0.5
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.EmbeddingModel != "" {
		if v := os.Getenv(env.EmbeddingModel); v != "" {
			c.EmbeddingModel = v
		}
	}
	if env.RelatednessThreshold != "" {
		if v := os.Getenv(env.RelatednessThreshold); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.RelatednessThreshold = f
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderLexical, ProviderAgent:
	case ProviderEmbedding:
		if c.APIKey == "" {
			return fmt.Errorf("api_key required for embedding oracle")
		}
	default:
		return fmt.Errorf("unknown oracle provider: %s", c.Provider)
	}

	if c.RelatednessThreshold < 0 || c.RelatednessThreshold > 1 {
		return fmt.Errorf("relatedness_threshold must be within [0, 1]")
	}

	return nil
}
