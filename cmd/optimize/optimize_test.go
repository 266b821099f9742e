package optimize

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medalytics/medalytics-cli/cmd/utils"
	"github.com/medalytics/medalytics-cli/internal/client/optimizerclient"
	"github.com/medalytics/medalytics-cli/internal/constants"
	"github.com/medalytics/medalytics-cli/internal/runtime"
	"github.com/medalytics/medalytics-cli/internal/settings"
	"github.com/medalytics/medalytics-cli/internal/testutil"
)

func newOptimizerServer(t *testing.T, status int, body string, gotPath *string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != optimizerclient.OptimizePath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var req struct {
			FilePath string `json:"file_path"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if gotPath != nil {
			*gotPath = req.FilePath
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestHandler(t *testing.T, baseURL string, output utils.OutputOptions) *handler {
	t.Helper()
	client := optimizerclient.New(baseURL, testutil.NewTestLogger(), optimizerclient.WithTimeout(2*time.Second))
	h, err := newHandler(testutil.NewTestLogger(), client, output)
	require.NoError(t, err)
	h.interactive = false
	h.prompt = func(func(string) error) (string, error) {
		t.Fatal("prompt must not be shown")
		return "", nil
	}
	return h
}

func TestExecutePrintsAllocation(t *testing.T) {
	var gotPath string
	ts := newOptimizerServer(t, http.StatusOK, `{"optimized_allocation":[40,25.5,0]}`, &gotPath)

	h := newTestHandler(t, ts.URL, utils.OutputOptions{Format: utils.RawOutputFormat})
	h.inputs = Inputs{FilePath: "data/hospitals.csv"}

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = h.Execute(t.Context())
	})
	require.NoError(t, err)

	assert.Equal(t, "data/hospitals.csv", gotPath)
	assert.Contains(t, out, "Optimized allocation")
	assert.Contains(t, out, "Hospital 1")
	assert.Contains(t, out, "Hospital 3")
	assert.Contains(t, out, "25.5")
	assert.Contains(t, out, "ALLOCATION")
}

func TestExecuteJSON(t *testing.T) {
	ts := newOptimizerServer(t, http.StatusOK, `{"optimized_allocation":[3,4]}`, nil)

	h := newTestHandler(t, ts.URL, utils.OutputOptions{Format: utils.JsonOutputFormat})
	h.inputs = Inputs{FilePath: "hospitals.csv"}

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = h.Execute(t.Context())
	})
	require.NoError(t, err)

	var got []utils.SeriesPointSerialized
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []utils.SeriesPointSerialized{
		{Label: "Hospital 1", Value: 3},
		{Label: "Hospital 2", Value: 4},
	}, got)
}

func TestExecuteFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", kind: optimizerclient.ErrStatus},
		{name: "missing field", status: http.StatusOK, body: `{"allocation":[1]}`, kind: optimizerclient.ErrDecode},
		{name: "not json", status: http.StatusOK, body: `<html>`, kind: optimizerclient.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newOptimizerServer(t, tt.status, tt.body, nil)
			h := newTestHandler(t, ts.URL, utils.OutputOptions{Format: utils.RawOutputFormat})
			h.inputs = Inputs{FilePath: "hospitals.csv"}

			var err error
			out := testutil.CaptureStdout(t, func() {
				err = h.Execute(t.Context())
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), "optimization failed")
			assert.Empty(t, out)
		})
	}
}

func TestResolveInputs(t *testing.T) {
	t.Run("flag wins over prompt", func(t *testing.T) {
		h := newTestHandler(t, "http://unused", utils.OutputOptions{Format: "raw"})
		h.interactive = true

		v := viper.New()
		v.Set(settings.Flags.FilePath.Name, "  beds.csv ")

		inputs, err := h.ResolveInputs(v)
		require.NoError(t, err)
		assert.Equal(t, "beds.csv", inputs.FilePath)
	})

	t.Run("non-interactive never prompts", func(t *testing.T) {
		h := newTestHandler(t, "http://unused", utils.OutputOptions{Format: "raw"})
		h.interactive = true

		v := viper.New()
		v.Set(settings.Flags.NonInteractive.Name, true)

		inputs, err := h.ResolveInputs(v)
		require.NoError(t, err)
		assert.Empty(t, inputs.FilePath)

		h.inputs = inputs
		assert.EqualError(t, h.ValidateInputs(), "--file-path is a required field")
	})

	t.Run("interactive prompt", func(t *testing.T) {
		h := newTestHandler(t, "http://unused", utils.OutputOptions{Format: "raw"})
		h.interactive = true
		h.prompt = func(validate func(string) error) (string, error) {
			assert.Error(t, validate("beds.txt"))
			assert.NoError(t, validate("beds.csv"))
			return "icu.csv", nil
		}

		inputs, err := h.ResolveInputs(viper.New())
		require.NoError(t, err)
		assert.Equal(t, "icu.csv", inputs.FilePath)
	})

	t.Run("empty prompt falls back to default", func(t *testing.T) {
		h := newTestHandler(t, "http://unused", utils.OutputOptions{Format: "raw"})
		h.interactive = true
		h.prompt = func(func(string) error) (string, error) { return "", nil }

		inputs, err := h.ResolveInputs(viper.New())
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultOptimizeFilePath, inputs.FilePath)
	})

	t.Run("prompt aborted", func(t *testing.T) {
		h := newTestHandler(t, "http://unused", utils.OutputOptions{Format: "raw"})
		h.interactive = true
		h.prompt = func(func(string) error) (string, error) { return "", errors.New("user aborted") }

		_, err := h.ResolveInputs(viper.New())
		assert.ErrorContains(t, err, "user aborted")
	})
}

func TestValidateInputs(t *testing.T) {
	h := newTestHandler(t, "http://unused", utils.OutputOptions{Format: "raw"})

	h.inputs = Inputs{FilePath: "hospitals.xlsx"}
	assert.EqualError(t, h.ValidateInputs(), "--file-path must point to a .csv file: hospitals.xlsx")

	h.inputs = Inputs{FilePath: "hospitals.csv"}
	assert.NoError(t, h.ValidateInputs())

	h.output = utils.OutputOptions{Format: "xml"}
	assert.ErrorContains(t, h.ValidateInputs(), "unsupported output format")
}

func TestCommand(t *testing.T) {
	var gotPath string
	ts := newOptimizerServer(t, http.StatusOK, `{"optimized_allocation":[1,2]}`, &gotPath)

	v := viper.New()
	rtCtx := runtime.NewContext(testutil.NewTestLogger(), v)
	rtCtx.Settings = &settings.Settings{
		BaseURL:       ts.URL,
		FetchTimeout:  2 * time.Second,
		RetryAttempts: 1,
	}

	cmd := New(rtCtx)
	require.NoError(t, v.BindPFlags(cmd.Flags()))
	cmd.SetArgs([]string{"--file-path", "ward.csv", "--non-interactive", "-o", "yaml"})

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = cmd.Execute()
	})
	require.NoError(t, err)
	assert.Equal(t, "ward.csv", gotPath)
	assert.Contains(t, out, "label: Hospital 2")
}

func TestCommandWithoutSettings(t *testing.T) {
	cmd := New(runtime.NewContext(testutil.NewTestLogger(), viper.New()))
	cmd.SetArgs([]string{"--file-path", "ward.csv"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	assert.ErrorContains(t, cmd.Execute(), "settings not loaded")
}
