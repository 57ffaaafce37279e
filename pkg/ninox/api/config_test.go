package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
		errorMsg  string
	}{
		{
			name:   "Valid config",
			config: Config{APIKey: "k", BaseURL: "https://api.ninox.com", Version: "v1"},
		},
		{
			name:      "Missing API key",
			config:    Config{BaseURL: "https://api.ninox.com", Version: "v1"},
			wantError: true,
			errorMsg:  "api_key",
		},
		{
			name:      "Missing base URL",
			config:    Config{APIKey: "k", Version: "v1"},
			wantError: true,
			errorMsg:  "base_url",
		},
		{
			name:      "Invalid URL scheme",
			config:    Config{APIKey: "k", BaseURL: "ftp://api.ninox.com", Version: "v1"},
			wantError: true,
			errorMsg:  "scheme",
		},
		{
			name:      "Missing host",
			config:    Config{APIKey: "k", BaseURL: "https://", Version: "v1"},
			wantError: true,
			errorMsg:  "host",
		},
		{
			name:      "Version with slash",
			config:    Config{APIKey: "k", BaseURL: "https://api.ninox.com", Version: "v1/extra"},
			wantError: true,
			errorMsg:  "single path segment",
		},
		{
			name:      "Negative timeout",
			config:    Config{APIKey: "k", BaseURL: "https://api.ninox.com", Version: "v1", Timeout: -time.Second},
			wantError: true,
			errorMsg:  "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{APIKey: "k", BaseURL: " https://private.ninox.example/ ", Version: "/v2/"}.withDefaults()

	assert.Equal(t, "https://private.ninox.example", cfg.BaseURL)
	assert.Equal(t, "v2", cfg.Version)

	empty := Config{APIKey: "k"}.withDefaults()
	assert.Equal(t, DefaultBaseURL, empty.BaseURL)
	assert.Equal(t, DefaultVersion, empty.Version)
}

func TestConfig_NewHTTPClient(t *testing.T) {
	client := Config{SkipTLSValidation: true, Timeout: 5 * time.Second}.NewHTTPClient()
	assert.Equal(t, 5*time.Second, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, transport.TLSClientConfig)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)

	verified := Config{}.NewHTTPClient()
	transport, ok = verified.Transport.(*http.Transport)
	require.True(t, ok)
	if transport.TLSClientConfig != nil {
		assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
	}
}

func TestConfig_APIKeyNotMarshalled(t *testing.T) {
	data, err := json.Marshal(Config{APIKey: "super-secret", BaseURL: DefaultBaseURL})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret")
}

func TestNewAdapter_InvalidConfig(t *testing.T) {
	_, err := NewAdapter(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}
