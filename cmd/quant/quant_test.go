package quant_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medalytics/medalytics-cli/cmd/quant"
	"github.com/medalytics/medalytics-cli/internal/client/optimizerclient"
	"github.com/medalytics/medalytics-cli/internal/runtime"
	"github.com/medalytics/medalytics-cli/internal/settings"
	"github.com/medalytics/medalytics-cli/internal/testutil"
)

func newRuntimeContext(t *testing.T, handler http.HandlerFunc) *runtime.Context {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	rtCtx := runtime.NewContext(testutil.NewTestLogger(), viper.New())
	rtCtx.Settings = &settings.Settings{
		BaseURL:       ts.URL,
		FetchTimeout:  2 * time.Second,
		RetryAttempts: 1,
	}
	return rtCtx
}

func runQuant(t *testing.T, rtCtx *runtime.Context, args ...string) (string, error) {
	t.Helper()
	cmd := quant.New(rtCtx)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = cmd.ExecuteContext(context.Background())
	})
	return out, err
}

func TestQuantCommand(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		args      []string
		wantErr   error
		wantSnips []string
	}{
		{
			name: "renders the series",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != optimizerclient.QuantPath {
					http.NotFound(w, r)
					return
				}
				_, _ = w.Write([]byte(`{"data":[1,5,3]}`))
			},
			wantSnips: []string{"Network Optimization", "Label 1", "Label 3", "min 1", "max 5", "VALUE"},
		},
		{
			name: "empty series",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":[]}`))
			},
			wantSnips: []string{"No data"},
		},
		{
			name: "json output",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":[2.5]}`))
			},
			args:      []string{"--output", "json"},
			wantSnips: []string{`"label": "Label 1"`, `"value": 2.5`},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			},
			wantErr: optimizerclient.ErrStatus,
		},
		{
			name: "missing data field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"values":[1]}`))
			},
			wantErr: optimizerclient.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runQuant(t, newRuntimeContext(t, tt.handler), tt.args...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Contains(t, err.Error(), "failed to fetch quant series")
				return
			}
			require.NoError(t, err)
			for _, snip := range tt.wantSnips {
				assert.Contains(t, out, snip)
			}
		})
	}
}

func TestQuantWritesYamlFile(t *testing.T) {
	rtCtx := newRuntimeContext(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[7]}`))
	})
	path := filepath.Join(t.TempDir(), "quant.yaml")

	out, err := runQuant(t, rtCtx, "-o", "yaml", "--output-path", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "label: Label 1")
}

func TestQuantRejectsBadOutputBeforeFetching(t *testing.T) {
	called := false
	rtCtx := newRuntimeContext(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := runQuant(t, rtCtx, "--output", "csv")
	assert.ErrorContains(t, err, "unsupported output format")
	assert.False(t, called)
}
