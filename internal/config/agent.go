package config

import (
	"fmt"
	"maps"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "WARDEN_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "WARDEN_AGENT_BASE_URL"
	EnvAgentToken        = "WARDEN_AGENT_TOKEN"
	EnvAgentDeployment   = "WARDEN_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "WARDEN_AGENT_API_VERSION"
	EnvAgentAuthType     = "WARDEN_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "WARDEN_AGENT_MODEL_NAME"
)

// AgentConfig mirrors the go-agents agent configuration with TOML field tags
// so the [agent] section decodes through the same pipeline as every other
// section. go-agents tags its structs for JSON only, which silently drops
// multi-word TOML keys such as base_url. Resolve converts the finalized
// section back into the go-agents type.
type AgentConfig struct {
	Name         string               `toml:"name"`
	SystemPrompt string               `toml:"system_prompt"`
	Provider     *AgentProviderConfig `toml:"provider"`
	Model        *AgentModelConfig    `toml:"model"`
}

// AgentProviderConfig carries the LLM provider settings for the audit agent.
type AgentProviderConfig struct {
	Name    string         `toml:"name"`
	BaseURL string         `toml:"base_url"`
	Options map[string]any `toml:"options"`
}

// AgentModelConfig carries the model identifier and per-protocol options.
type AgentModelConfig struct {
	Name         string                    `toml:"name"`
	Capabilities map[string]map[string]any `toml:"capabilities"`
}

// Finalize applies go-agents defaults, environment variable overrides, and
// validation.
func (c *AgentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AgentConfig) Merge(overlay *AgentConfig) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.SystemPrompt != "" {
		c.SystemPrompt = overlay.SystemPrompt
	}
	if overlay.Provider != nil {
		if c.Provider == nil {
			c.Provider = overlay.Provider
		} else {
			c.Provider.merge(overlay.Provider)
		}
	}
	if overlay.Model != nil {
		if c.Model == nil {
			c.Model = overlay.Model
		} else {
			c.Model.merge(overlay.Model)
		}
	}
}

// Resolve converts the finalized section into the go-agents configuration
// consumed by agent constructors.
func (c *AgentConfig) Resolve() gaconfig.AgentConfig {
	resolved := gaconfig.DefaultAgentConfig()
	resolved.Merge(&gaconfig.AgentConfig{
		Name:         c.Name,
		SystemPrompt: c.SystemPrompt,
		Provider:     c.Provider.resolve(),
		Model:        c.Model.resolve(),
	})
	return resolved
}

func (p *AgentProviderConfig) merge(overlay *AgentProviderConfig) {
	if overlay.Name != "" {
		p.Name = overlay.Name
	}
	if overlay.BaseURL != "" {
		p.BaseURL = overlay.BaseURL
	}
	if overlay.Options != nil {
		if p.Options == nil {
			p.Options = make(map[string]any)
		}
		maps.Copy(p.Options, overlay.Options)
	}
}

func (p *AgentProviderConfig) resolve() *gaconfig.ProviderConfig {
	if p == nil {
		return nil
	}
	return &gaconfig.ProviderConfig{
		Name:    p.Name,
		BaseURL: p.BaseURL,
		Options: p.Options,
	}
}

func (m *AgentModelConfig) merge(overlay *AgentModelConfig) {
	if overlay.Name != "" {
		m.Name = overlay.Name
	}
	for protocol, options := range overlay.Capabilities {
		if m.Capabilities == nil {
			m.Capabilities = make(map[string]map[string]any)
		}
		if m.Capabilities[protocol] == nil {
			m.Capabilities[protocol] = options
		} else {
			maps.Copy(m.Capabilities[protocol], options)
		}
	}
}

func (m *AgentModelConfig) resolve() *gaconfig.ModelConfig {
	if m == nil {
		return nil
	}
	return &gaconfig.ModelConfig{
		Name:         m.Name,
		Capabilities: m.Capabilities,
	}
}

func (c *AgentConfig) loadDefaults() {
	defaults := gaconfig.DefaultAgentConfig()

	if c.Name == "" {
		c.Name = defaults.Name
	}
	if c.Provider == nil {
		c.Provider = &AgentProviderConfig{}
	}
	if c.Provider.Name == "" {
		c.Provider.Name = defaults.Provider.Name
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = defaults.Provider.BaseURL
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &AgentModelConfig{}
	}
	if c.Model.Capabilities == nil {
		c.Model.Capabilities = make(map[string]map[string]any)
	}
}

func (c *AgentConfig) loadEnv() {
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")
}

func (c *AgentConfig) validate() error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
