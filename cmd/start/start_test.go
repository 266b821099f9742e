package start

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medalytics/medalytics-cli/internal/runtime"
	"github.com/medalytics/medalytics-cli/internal/settings"
	"github.com/medalytics/medalytics-cli/internal/testutil"
	"github.com/medalytics/medalytics-cli/internal/tui"
	"github.com/medalytics/medalytics-cli/internal/wizard"
)

func newTestRuntimeContext(s *settings.Settings) *runtime.Context {
	rtCtx := runtime.NewContext(testutil.NewTestLogger(), viper.New())
	rtCtx.Settings = s
	return rtCtx
}

func baseSettings(t *testing.T) *settings.Settings {
	return &settings.Settings{
		BaseURL:       "http://optimizer.test",
		FetchTimeout:  time.Second,
		RetryAttempts: 1,
		Layout:        wizard.LayoutFourStep,
		RestartPolicy: wizard.RestartKeepForm,
		LogFile:       filepath.Join(t.TempDir(), "logs", "medalytics.log"),
	}
}

func TestNewModelAppliesSettings(t *testing.T) {
	s := baseSettings(t)
	s.Layout = wizard.LayoutThreeStep
	s.RestartPolicy = wizard.RestartClearForm

	h := newHandler(newTestRuntimeContext(s))
	m, err := h.newModel(t.Context(), testutil.NewTestLogger())
	require.NoError(t, err)

	ctrl := m.Controller()
	assert.Equal(t, wizard.LayoutThreeStep, ctrl.Layout())
	assert.Equal(t, wizard.RestartClearForm, ctrl.RestartPolicy())
	assert.Equal(t, wizard.StepOrganization, ctrl.Step())
}

func TestNewModelStrictMetrics(t *testing.T) {
	for _, strict := range []bool{false, true} {
		s := baseSettings(t)
		s.StrictMetrics = strict

		h := newHandler(newTestRuntimeContext(s))
		m, err := h.newModel(t.Context(), testutil.NewTestLogger())
		require.NoError(t, err)

		ctrl := m.Controller()
		_, err = ctrl.Advance()
		require.NoError(t, err)
		ctrl.SetICUBeds("ten")

		_, err = ctrl.Advance()
		if strict {
			assert.ErrorIs(t, err, wizard.ErrInvalidMetrics)
			assert.Equal(t, wizard.StepMetrics, ctrl.Step())
		} else {
			assert.NoError(t, err)
			assert.Equal(t, wizard.StepDashboard, ctrl.Step())
		}
	}
}

func TestNewModelWithoutSettings(t *testing.T) {
	h := newHandler(newTestRuntimeContext(nil))
	_, err := h.newModel(t.Context(), testutil.NewTestLogger())
	assert.ErrorContains(t, err, "settings not loaded")
}

func TestExecuteWritesLogFile(t *testing.T) {
	s := baseSettings(t)
	h := newHandler(newTestRuntimeContext(s))
	h.run = func(ctx context.Context, m tui.Model) (tui.Model, error) {
		m.Controller().SetOrganizationName("St. Mary")
		return m, nil
	}

	require.NoError(t, h.Execute(t.Context()))

	data, err := os.ReadFile(s.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"Wizard started"`)
	assert.Contains(t, string(data), `"message":"Wizard closed"`)
	assert.Contains(t, string(data), `"organization":"St. Mary"`)
	assert.Contains(t, string(data), `"time"`)
}

func TestVerboseLogsDebug(t *testing.T) {
	s := baseSettings(t)
	rtCtx := newTestRuntimeContext(s)
	rtCtx.Viper.Set(settings.Flags.Verbose.Name, true)

	h := newHandler(rtCtx)
	require.True(t, h.verbose)

	log, closer := h.openLog()
	log.Debug().Msg("debug line")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(s.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
}

func TestExecuteOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		wantErr bool
	}{
		{name: "clean exit"},
		{name: "interrupted", runErr: context.Canceled},
		{name: "program failure", runErr: errors.New("wizard failed: tty lost"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(newTestRuntimeContext(baseSettings(t)))
			h.run = func(ctx context.Context, m tui.Model) (tui.Model, error) {
				return m, tt.runErr
			}

			err := h.Execute(t.Context())
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.runErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecuteWithoutLogFile(t *testing.T) {
	s := baseSettings(t)
	s.LogFile = ""

	ran := false
	h := newHandler(newTestRuntimeContext(s))
	h.run = func(ctx context.Context, m tui.Model) (tui.Model, error) {
		ran = true
		return m, nil
	}

	require.NoError(t, h.Execute(t.Context()))
	assert.True(t, ran)
}

func TestExecuteUnwritableLogFileStillRuns(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := baseSettings(t)
	s.LogFile = filepath.Join(blocker, "medalytics.log")

	ran := false
	h := newHandler(newTestRuntimeContext(s))
	h.run = func(ctx context.Context, m tui.Model) (tui.Model, error) {
		ran = true
		return m, nil
	}

	require.NoError(t, h.Execute(t.Context()))
	assert.True(t, ran)
}

func TestCommandNeedsTerminal(t *testing.T) {
	cmd := New(newTestRuntimeContext(nil))
	cmd.SetArgs(nil)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	assert.ErrorIs(t, cmd.Execute(), ErrNoTerminal)
}
