package engine

import (
	"fmt"
	"os"
	"strconv"
)

// Config centralizes the tunable constants of the matching engine. These
// values are the primary control surface of the whole audit: they decide when
// a policy or system rule is accepted as implementing a regulatory obligation.
type Config struct {
	// LinkThreshold is the minimum whole-text similarity for a
	// regulation-to-policy trace link.
	LinkThreshold float64 `toml:"link_threshold"`
	// SystemLinkThreshold relaxes LinkThreshold for regulation-to-system
	// links; system-authored text is terse and scores lower on free text.
	SystemLinkThreshold float64 `toml:"system_link_threshold"`
	// AcceptFloor is the minimum total score for a threshold match to be
	// accepted at all. Below it the regulatory threshold is unverifiable.
	AcceptFloor float64 `toml:"accept_floor"`
	// DirectSimilarity is the name similarity at which a candidate is
	// accepted without consulting the relatedness oracle.
	DirectSimilarity float64 `toml:"direct_similarity"`
	// OracleFloor is the name similarity below which the relatedness oracle
	// is not consulted.
	OracleFloor float64 `toml:"oracle_floor"`
	// OperatorBonus is added to a candidate's score when its operator is
	// compatible with the regulatory operator.
	OperatorBonus float64 `toml:"operator_bonus"`
	// MetricBonus is added to a trace-link score when both rules carry the
	// same non-empty metric.
	MetricBonus float64 `toml:"metric_bonus"`
	// Workers bounds concurrent per-regulation evaluation and with it the
	// concurrent load placed on the oracles.
	Workers int `toml:"workers"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	LinkThreshold       string
	SystemLinkThreshold string
	AcceptFloor         string
	DirectSimilarity    string
	OracleFloor         string
	OperatorBonus       string
	MetricBonus         string
	Workers             string
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
	if overlay.LinkThreshold != 0 {
		c.LinkThreshold = overlay.LinkThreshold
	}
	if overlay.SystemLinkThreshold != 0 {
		c.SystemLinkThreshold = overlay.SystemLinkThreshold
	}
	if overlay.AcceptFloor != 0 {
		c.AcceptFloor = overlay.AcceptFloor
	}
	if overlay.DirectSimilarity != 0 {
		c.DirectSimilarity = overlay.DirectSimilarity
	}
	if overlay.OracleFloor != 0 {
		c.OracleFloor = overlay.OracleFloor
	}
	if overlay.OperatorBonus != 0 {
		c.OperatorBonus = overlay.OperatorBonus
	}
	if overlay.MetricBonus != 0 {
		c.MetricBonus = overlay.MetricBonus
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
}

func (c *Config) loadDefaults() {
	if c.LinkThreshold == 0 {
		c.LinkThreshold = 0.6
	}
	if c.SystemLinkThreshold == 0 {
		c.SystemLinkThreshold = 0.45
	}
	if c.AcceptFloor == 0 {
		c.AcceptFloor = 0.4
	}
	if c.DirectSimilarity == 0 {
		c.DirectSimilarity = 0.7
	}
	if c.OracleFloor == 0 {
		c.OracleFloor = 0.3
	}
	if c.OperatorBonus == 0 {
		c.OperatorBonus = 0.1
	}
	if c.MetricBonus == 0 {
		c.MetricBonus = 0.25
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
}

func (c *Config) loadEnv(env *Env) {
	loadFloat := func(name string, target *float64) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*target = f
			}
		}
	}

	loadFloat(env.LinkThreshold, &c.LinkThreshold)
	loadFloat(env.SystemLinkThreshold, &c.SystemLinkThreshold)
	loadFloat(env.AcceptFloor, &c.AcceptFloor)
	loadFloat(env.DirectSimilarity, &c.DirectSimilarity)
	loadFloat(env.OracleFloor, &c.OracleFloor)
	loadFloat(env.OperatorBonus, &c.OperatorBonus)
	loadFloat(env.MetricBonus, &c.MetricBonus)

	if env.Workers != "" {
		if v := os.Getenv(env.Workers); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.Workers = n
			}
		}
	}
}

func (c *Config) validate() error {
	unit := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0, 1]: %g", name, v)
		}
		return nil
	}

	if err := unit("link_threshold", c.LinkThreshold); err != nil {
		return err
	}
	if err := unit("system_link_threshold", c.SystemLinkThreshold); err != nil {
		return err
	}
	if err := unit("accept_floor", c.AcceptFloor); err != nil {
		return err
	}
	if err := unit("direct_similarity", c.DirectSimilarity); err != nil {
		return err
	}
	if err := unit("oracle_floor", c.OracleFloor); err != nil {
		return err
	}
	if c.OracleFloor > c.DirectSimilarity {
		return fmt.Errorf("oracle_floor cannot exceed direct_similarity")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	return nil
}
