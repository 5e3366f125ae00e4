package metrics

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Env maps environment variable names for metrics configuration.
type Env struct {
	Enabled   string
	Namespace string
}

// Config controls metric naming and whether /metrics is exposed.
// Collection always happens; Enabled only governs exposition.
type Config struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero overlay values. An overlay can enable exposition
// but not disable it; use the environment for that.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Namespace != "" {
		c.Namespace = overlay.Namespace
	}
}

func (c *Config) loadDefaults() {
	if c.Namespace == "" {
		c.Namespace = "counter_api"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.Namespace != "" {
		if v := os.Getenv(env.Namespace); v != "" {
			c.Namespace = v
		}
	}
}

func (c *Config) validate() error {
	if !namespacePattern.MatchString(c.Namespace) {
		return fmt.Errorf("invalid namespace: %q", c.Namespace)
	}
	return nil
}
