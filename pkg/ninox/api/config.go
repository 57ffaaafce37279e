package api

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultBaseURL is the public Ninox cloud API.
	DefaultBaseURL = "https://api.ninox.com"

	// DefaultVersion is the API version path segment.
	DefaultVersion = "v1"
)

// Config contains the connection settings for the Ninox REST API.
//
// Example configuration (HCL):
//
//	ninox {
//	  api_key             = env.NINOX_API_KEY
//	  base_url            = "https://api.ninox.com"
//	  version             = "v1"
//	  skip_tls_validation = false
//	}
type Config struct {
	// APIKey is the bearer token sent with every request.
	APIKey string `hcl:"api_key" json:"-"` // Don't marshal the key to JSON

	// BaseURL is the root of the API, without the version segment.
	// Default: "https://api.ninox.com"
	BaseURL string `hcl:"base_url,optional" json:"baseUrl"`

	// Version is the API version path segment.
	// Default: "v1"
	Version string `hcl:"version,optional" json:"version"`

	// SkipTLSValidation disables certificate verification.
	// Set to true only for private clouds with self-signed certs.
	SkipTLSValidation bool `hcl:"skip_tls_validation,optional" json:"skipTlsValidation,omitempty"`

	// Timeout for a whole request. Zero leaves the transport default
	// (no timeout) in place.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// DefaultConfig returns a Config pointing at the public Ninox cloud.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Version: DefaultVersion,
	}
}

// withDefaults fills empty fields from DefaultConfig.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = defaults.BaseURL
	}
	if strings.TrimSpace(c.Version) == "" {
		c.Version = defaults.Version
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Version = strings.Trim(strings.TrimSpace(c.Version), "/")
	return c
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIKey, validation.Required.Error("api_key is required")),
		validation.Field(&c.BaseURL,
			validation.Required.Error("base_url is required"),
			validation.By(validateBaseURL),
		),
		validation.Field(&c.Version,
			validation.Required.Error("version is required"),
			validation.By(func(value interface{}) error {
				if strings.Contains(value.(string), "/") {
					return errors.New("version must be a single path segment")
				}
				return nil
			}),
		),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0)).Error("timeout must be non-negative")),
	)
}

func validateBaseURL(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return errors.New("base_url must include a host")
	}
	return nil
}

// NewHTTPClient creates an HTTP client honouring the TLS and timeout settings.
func (c Config) NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	// Configure TLS verification
	if c.SkipTLSValidation {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402 -- opt-in via skip_tls_validation
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
