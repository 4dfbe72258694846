package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/pulsesim"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

var allVars = []string{EnvLogLevel, EnvPresses, EnvLimit, EnvWorkers, EnvSinks}

// clearEnv unsets all variables for the duration of the test.
//
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)
	env, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Default(), env); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
	if env.Limit != pulsesim.DefaultLimit || env.Presses != 1000 {
		t.Fatalf("got %+v", env)
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	f := filepath.Join(t.TempDir(), ".env")
	src := "PULSESIM_PRESSES=25\nPULSESIM_SINKS=rx, out ,\nPULSESIM_LOG_LEVEL=debug\n"
	if err := os.WriteFile(f, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	// the environment wins over the file
	os.Setenv(EnvLogLevel, "warn")
	os.Setenv(EnvWorkers, "4")
	os.Setenv(EnvLimit, "5000")

	env, err := Load(f)
	if err != nil {
		t.Fatal(err)
	}
	want := &Environment{
		LogLevel: zapcore.WarnLevel,
		Presses:  25,
		Limit:    5000,
		Workers:  4,
		Sinks:    []string{"rx", "out"},
	}
	if d := cmp.Diff(want, env); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
}

func TestLoad_errors(t *testing.T) {
	for _, kv := range [][2]string{
		{EnvLogLevel, "loud"},
		{EnvPresses, "-1"},
		{EnvPresses, "many"},
		{EnvLimit, "-3"},
		{EnvWorkers, "x"},
	} {
		clearEnv(t)
		os.Setenv(kv[0], kv[1])
		if _, err := Load(); err == nil {
			t.Errorf("%s=%s: no error", kv[0], kv[1])
		}
	}
}

func TestEnvironment_Logger(t *testing.T) {
	env := Default()
	env.LogLevel = zapcore.WarnLevel
	l, err := env.Logger()
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) || !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("wrong logger level")
	}
}
