package workspaces

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninoxdb/ninox-go/internal/cmd/base"
	"github.com/ninoxdb/ninox-go/internal/config"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPath string
	}{
		{
			name:     "list",
			wantPath: "/v1/teams",
		},
		{
			name:     "single",
			args:     []string{"-workspace=w1"},
			wantPath: "/v1/teams/w1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path, auth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				auth = r.Header.Get("Authorization")
				_, _ = io.WriteString(w, `{"id":"w1","name":"Team"}`)
			}))
			t.Cleanup(server.Close)

			t.Setenv(base.EnvConfig, "")
			t.Setenv(config.EnvAPIKey, "secret")
			t.Setenv(config.EnvBaseURL, server.URL)

			ui := cli.NewMockUi()
			cmd := &Command{Command: base.NewCommand(hclog.NewNullLogger(), ui)}

			require.Equal(t, 0, cmd.Run(tt.args), ui.ErrorWriter.String())
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, "Bearer secret", auth)
			assert.JSONEq(t, `{"id":"w1","name":"Team"}`, ui.OutputWriter.String())
		})
	}
}

func TestCommand_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"invalid key"}`)
	}))
	t.Cleanup(server.Close)

	t.Setenv(base.EnvConfig, "")
	t.Setenv(config.EnvAPIKey, "wrong")
	t.Setenv(config.EnvBaseURL, server.URL)

	ui := cli.NewMockUi()
	cmd := &Command{Command: base.NewCommand(hclog.NewNullLogger(), ui)}

	assert.Equal(t, 1, cmd.Run(nil))
	assert.Equal(t, "ninox returned status 401: {\"message\":\"invalid key\"}\n", ui.ErrorWriter.String())
}
