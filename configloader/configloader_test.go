// configloader_test.go: Test suite for property-map based Configurator construction
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package configloader

import (
	"testing"

	"github.com/agilira/beacon"
)

func TestLoadAppliesGlobalLevel(t *testing.T) {
	cfg, err := Load(map[string]string{KeyLevel: "warning"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	d := beacon.NewDispatcher()
	sink := beacon.NewCapturingDiscardSink()
	if err := cfg.Writer(sink).Activate(d); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	d.Info("suppressed")
	if len(sink.Records()) != 0 {
		t.Errorf("expected Info suppressed under a warning floor, got %d records", len(sink.Records()))
	}
	d.Warning("passes")
	if len(sink.Records()) != 1 {
		t.Errorf("expected 1 record at Warning, got %d", len(sink.Records()))
	}
}

func TestLoadInvalidLevelReturnsConfigError(t *testing.T) {
	_, err := Load(map[string]string{KeyLevel: "not-a-level"})
	if err == nil {
		t.Fatal("expected an error for an invalid level property")
	}
	if code := beacon.GetErrorCode(err); code != beacon.ErrCodeConfigError {
		t.Errorf("expected error code %s, got %s", beacon.ErrCodeConfigError, code)
	}
}

func TestLoadLevelOverride(t *testing.T) {
	cfg, err := Load(map[string]string{
		KeyLevel:                        "info",
		levelOverridePrefix + "some.pkg": "error",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	d := beacon.NewDispatcher()
	if err := cfg.Writer(beacon.NewDiscardSink()).Activate(d); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	got := d.IsEnabled(beacon.Info)
	if !got {
		t.Error("expected the global level to still allow Info overall")
	}
}

func TestLoadInvalidMaxStackTraceElements(t *testing.T) {
	_, err := Load(map[string]string{KeyMaxStackTraceElements: "not-a-number"})
	if err == nil {
		t.Fatal("expected an error for a non-numeric max_stack_trace_elements property")
	}
}

func TestLoadInvalidFormatPattern(t *testing.T) {
	_, err := Load(map[string]string{KeyFormatPattern: "{not_a_real_token}"})
	if err == nil {
		t.Fatal("expected an error for an unrecognised format pattern token")
	}
}

func TestLoadConsoleOutputStdout(t *testing.T) {
	cfg, err := Load(map[string]string{KeyConsoleOutput: "stdout"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Activate(beacon.NewDispatcher()); err != nil {
		t.Fatalf("Activate: %v", err)
	}
}

func TestLoadConsoleOutputUnsupportedValue(t *testing.T) {
	_, err := Load(map[string]string{KeyConsoleOutput: "/dev/null"})
	if err == nil {
		t.Fatal("expected an error for an unsupported console.output value")
	}
}

func TestLoadFileOutput(t *testing.T) {
	path := t.TempDir() + "/app.log"
	cfg, err := Load(map[string]string{KeyFileOutput: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Activate(beacon.NewDispatcher()); err != nil {
		t.Fatalf("Activate: %v", err)
	}
}

func TestLoadWritingThreadCapacity(t *testing.T) {
	cfg, err := Load(map[string]string{
		KeyWritingThreadCapacity: "64",
		KeyWritingThreadBlocking: "false",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	d := beacon.NewDispatcher()
	if err := cfg.Writer(beacon.NewDiscardSink()).Activate(d); err != nil {
		t.Fatalf("Activate: %v", err)
	}
}

func TestLoadFromEnvNoMatchingVars(t *testing.T) {
	_, err := LoadFromEnv("BEACON_NONEXISTENT_PREFIX_XYZ_")
	if err == nil {
		t.Fatal("expected an error when no environment variables match the prefix")
	}
}

func TestLoadFromEnvAppliesLevel(t *testing.T) {
	t.Setenv("BEACON_TEST_LEVEL", "error")

	cfg, err := LoadFromEnv("BEACON_TEST_")
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	d := beacon.NewDispatcher()
	sink := beacon.NewCapturingDiscardSink()
	if err := cfg.Writer(sink).Activate(d); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	d.Warning("suppressed under an error floor")
	if len(sink.Records()) != 0 {
		t.Errorf("expected Warning suppressed under an error floor, got %d records", len(sink.Records()))
	}
}

func TestLoadFromEnvPreservesUnderscoreInWritingThreadKey(t *testing.T) {
	t.Setenv("BEACON_TEST2_WRITING_THREAD_CAPACITY", "64")
	t.Setenv("BEACON_TEST2_WRITING_THREAD_BLOCK_ON_FULL", "false")

	cfg, err := LoadFromEnv("BEACON_TEST2_")
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	// Activating successfully is itself the assertion: if the env var
	// translation had mangled "writing_thread.capacity" into
	// "writing.thread.capacity" (an unrecognised key), the capacity/
	// blocking properties would simply be dropped rather than erroring,
	// so the only way to verify their effect end-to-end is a successful
	// Activate plus a capacity value that Load would reject if, say, a
	// stray unrelated key collided. The envKeyToPropertyKey unit tests
	// below assert the translation directly.
	if err := cfg.Writer(beacon.NewDiscardSink()).Activate(beacon.NewDispatcher()); err != nil {
		t.Fatalf("Activate: %v", err)
	}
}

func TestEnvKeyToPropertyKeyRoundTripsKnownKeys(t *testing.T) {
	cases := map[string]string{
		"WRITING_THREAD_CAPACITY":    KeyWritingThreadCapacity,
		"WRITING_THREAD_BLOCK_ON_FULL": KeyWritingThreadBlocking,
		"MAX_STACK_TRACE_ELEMENTS":   KeyMaxStackTraceElements,
		"LEVEL":                      KeyLevel,
		"PATTERN":                    KeyFormatPattern,
	}
	for env, want := range cases {
		if got := envKeyToPropertyKey(env); got != want {
			t.Errorf("envKeyToPropertyKey(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestEnvKeyToPropertyKeyLevelOverride(t *testing.T) {
	got := envKeyToPropertyKey("LEVEL_some_pkg")
	want := levelOverridePrefix + "some_pkg"
	if got != want {
		t.Errorf("envKeyToPropertyKey(%q) = %q, want %q", "LEVEL_some_pkg", got, want)
	}
}
