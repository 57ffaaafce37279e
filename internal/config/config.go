// Package config loads the ninox CLI configuration from an HCL file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"

	"github.com/ninoxdb/ninox-go/pkg/ninox/api"
)

// Environment variables read when the config file leaves a field empty.
const (
	EnvAPIKey            = "NINOX_API_KEY"
	EnvBaseURL           = "NINOX_BASE_URL"
	EnvAPIVersion        = "NINOX_API_VERSION"
	EnvSkipTLSValidation = "NINOX_SKIP_TLS_VALIDATION"
)

// Config is the CLI configuration file.
//
// Example:
//
//	ninox {
//	  api_key  = env.NINOX_API_KEY
//	  base_url = "https://api.ninox.com"
//	  timeout  = "30s"
//	}
//
//	workspace = "w1"
//	database  = "d1"
type Config struct {
	// Ninox holds the connection settings.
	Ninox *NinoxConfig `hcl:"ninox,block"`

	// Workspace and Database are defaults for the -workspace and -database
	// flags.
	Workspace string `hcl:"workspace,optional"`
	Database  string `hcl:"database,optional"`

	// LogLevel is one of trace, debug, info, warn, error. Default: warn.
	LogLevel string `hcl:"log_level,optional"`
}

// NinoxConfig is the ninox block.
type NinoxConfig struct {
	APIKey            string `hcl:"api_key,optional"`
	BaseURL           string `hcl:"base_url,optional"`
	Version           string `hcl:"version,optional"`
	SkipTLSValidation bool   `hcl:"skip_tls_validation,optional"`
	Timeout           string `hcl:"timeout,optional"`
}

// Load reads the configuration file at path. An empty path yields a
// configuration built from the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}

		if err := hclsimple.DecodeFile(path, evalContext(), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	}

	if cfg.Ninox == nil {
		cfg.Ninox = &NinoxConfig{}
	}
	cfg.applyEnv()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	return cfg, nil
}

// evalContext exposes the process environment to the file as the env
// object, e.g. env.NINOX_API_KEY. Unset NINOX_* variables read as "".
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, name := range []string{EnvAPIKey, EnvBaseURL, EnvAPIVersion} {
		vars[name] = cty.StringVal("")
	}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func (c *Config) applyEnv() {
	if c.Ninox.APIKey == "" {
		c.Ninox.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.Ninox.BaseURL == "" {
		c.Ninox.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.Ninox.Version == "" {
		c.Ninox.Version = os.Getenv(EnvAPIVersion)
	}
	if !c.Ninox.SkipTLSValidation {
		if skip, err := strconv.ParseBool(os.Getenv(EnvSkipTLSValidation)); err == nil {
			c.Ninox.SkipTLSValidation = skip
		}
	}
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Ninox == nil {
		return multierror.Append(result, fmt.Errorf("ninox block is required"))
	}

	timeout, err := c.timeout()
	if err != nil {
		result = multierror.Append(result, err)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}

	apiCfg := c.apiConfig(timeout)
	if apiCfg.BaseURL == "" {
		apiCfg.BaseURL = api.DefaultBaseURL
	}
	if apiCfg.Version == "" {
		apiCfg.Version = api.DefaultVersion
	}
	if err := apiCfg.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// APIConfig converts the ninox block into an api.Config.
func (c *Config) APIConfig() (api.Config, error) {
	timeout, err := c.timeout()
	if err != nil {
		return api.Config{}, err
	}
	return c.apiConfig(timeout), nil
}

func (c *Config) apiConfig(timeout time.Duration) api.Config {
	return api.Config{
		APIKey:            c.Ninox.APIKey,
		BaseURL:           c.Ninox.BaseURL,
		Version:           c.Ninox.Version,
		SkipTLSValidation: c.Ninox.SkipTLSValidation,
		Timeout:           timeout,
	}
}

func (c *Config) timeout() (time.Duration, error) {
	if c.Ninox == nil || c.Ninox.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Ninox.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Ninox.Timeout, err)
	}
	return d, nil
}
