package test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"regexp"
	"testing"

	"github.com/medalytics/medalytics-cli/internal/client/optimizerclient"
	"github.com/medalytics/medalytics-cli/update"
)

// CLI path for testing
var CLIPath = os.TempDir() + string(os.PathSeparator) + "medalytics" + func() string {
	if os.PathSeparator == '\\' {
		return ".exe"
	}
	return ""
}()

// TestVersion is stamped into the binary built by TestMain.
const TestVersion = "build e2e"

// Regular expression to strip ANSI escape codes from output
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI strips the ANSI escape codes from the output
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// fakeOptimizer serves fixed quant and optimize responses.
type fakeOptimizer struct {
	*httptest.Server
	quantBody    string
	optimizeBody string
}

func newFakeOptimizer(t *testing.T, quantBody, optimizeBody string) *fakeOptimizer {
	t.Helper()
	f := &fakeOptimizer{quantBody: quantBody, optimizeBody: optimizeBody}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == optimizerclient.QuantPath:
			_, _ = w.Write([]byte(f.quantBody))
		case r.Method == http.MethodPost && r.URL.Path == optimizerclient.OptimizePath:
			_, _ = w.Write([]byte(f.optimizeBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.Close)
	return f
}

type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI runs the built binary in dir with a clean environment plus env.
func runCLI(t *testing.T, dir string, env []string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(CLIPath, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append([]string{
		"HOME=" + dir,
		"XDG_CACHE_HOME=" + dir,
		"PATH=" + os.Getenv("PATH"),
		update.DisableCheckEnvVar + "=1",
	}, env...)

	err := cmd.Run()
	return cliResult{
		Stdout: StripANSI(stdout.String()),
		Stderr: StripANSI(stderr.String()),
		Err:    err,
	}
}
