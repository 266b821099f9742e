package environments

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `ENVIRONMENTS:
  LOCAL:
    MEDALYTICS_OPTIMIZER_URL: http://localhost:5000

  SANDBOX:
    MEDALYTICS_OPTIMIZER_URL: http://sandbox.test:5000
`

func TestLoadEnvironmentFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "env.yaml")
	if err := os.WriteFile(file, []byte(testYAML), 0600); err != nil {
		t.Fatalf("failed to write temp YAML: %v", err)
	}

	ff, err := loadEnvironmentFile(file)
	if err != nil {
		t.Fatalf("loadEnvironmentFile returned error: %v", err)
	}

	sbx, ok := ff.Envs["SANDBOX"]
	if !ok {
		t.Fatal("SANDBOX environment missing")
	}
	if sbx.OptimizerURL != "http://sandbox.test:5000" {
		t.Errorf("OptimizerURL = %q; want http://sandbox.test:5000", sbx.OptimizerURL)
	}
	if got := ff.Names(); len(got) != 2 || got[0] != "LOCAL" || got[1] != "SANDBOX" {
		t.Errorf("Names() = %v; want [LOCAL SANDBOX]", got)
	}
}

func TestLoadEnvironmentFileMalformed(t *testing.T) {
	file := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(file, []byte("ENVIRONMENTS: [\n"), 0600); err != nil {
		t.Fatalf("failed to write temp YAML: %v", err)
	}
	if _, err := loadEnvironmentFile(file); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestNewEnvironmentSet(t *testing.T) {
	ff, err := parseEnvironmentFile([]byte(testYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	t.Run("known name, any case", func(t *testing.T) {
		t.Setenv(EnvVarOptimizerURL, "")
		set := NewEnvironmentSet(ff, " sandbox ")
		if set.Name != "SANDBOX" || set.OptimizerURL != "http://sandbox.test:5000" {
			t.Errorf("got %+v", set)
		}
	})

	t.Run("unknown name falls back to default", func(t *testing.T) {
		t.Setenv(EnvVarOptimizerURL, "")
		set := NewEnvironmentSet(ff, "MARS")
		if set.Name != DefaultEnv || set.OptimizerURL != "http://localhost:5000" {
			t.Errorf("got %+v", set)
		}
	})

	t.Run("env var overrides url", func(t *testing.T) {
		t.Setenv(EnvVarOptimizerURL, "http://override:9000")
		set := NewEnvironmentSet(ff, "SANDBOX")
		if set.OptimizerURL != "http://override:9000" {
			t.Errorf("OptimizerURL = %q; want override", set.OptimizerURL)
		}
	})
}

func TestEmbeddedEnvironments(t *testing.T) {
	t.Setenv(EnvVarOptimizerURL, "")
	t.Setenv(EnvVarEnv, "")

	names, err := Known()
	if err != nil {
		t.Fatalf("Known: %v", err)
	}
	want := []string{"LOCAL", "PRODUCTION", "STAGING"}
	if len(names) != len(want) {
		t.Fatalf("Known() = %v; want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Known()[%d] = %q; want %q", i, names[i], want[i])
		}
	}

	set, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if set.Name != "LOCAL" || set.OptimizerURL != "http://localhost:5000" {
		t.Errorf("default environment = %+v", set)
	}

	set, err = Named("production")
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	if set.OptimizerURL != "https://optimizer.medalytics.app" {
		t.Errorf("PRODUCTION OptimizerURL = %q", set.OptimizerURL)
	}
}
