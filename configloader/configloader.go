// configloader.go: Property-map based Configurator construction
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package configloader builds a beacon.Configurator from a flat
// map[string]string of properties, for application code that wants to
// assemble its logging configuration from a properties file or environment
// variables without hand-writing the Configurator calls.
//
// This is a one-shot, startup-time convenience: Load is called once to
// produce a Configurator, which the caller then Activates. It does not
// watch its source and does not reintroduce hot-reload.
package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agilira/beacon"
)

// Recognised property keys.
const (
	KeyLevel                 = "level"
	KeyFormatPattern         = "pattern"
	KeyMaxStackTraceElements = "max_stack_trace_elements"
	KeyWritingThreadCapacity = "writing_thread.capacity"
	KeyWritingThreadBlocking = "writing_thread.block_on_full"
	KeyConsoleOutput         = "console.output" // "stdout" | "stderr"
	KeyConsoleFloor          = "console.floor"
	KeyFileOutput            = "file.path"
	KeyFileFloor             = "file.floor"

	// levelOverridePrefix marks a per-class/per-package override:
	// "level.github.com/acme/api=debug".
	levelOverridePrefix = "level."
)

// Load builds a Configurator from props. Unrecognised keys are ignored,
// matching the teacher's tolerant multi-source merge style; malformed
// values for a recognised key return a BEACON_CONFIG_ERROR.
func Load(props map[string]string) (*beacon.Configurator, error) {
	cfg := beacon.NewConfigurator()

	if raw, ok := props[KeyLevel]; ok {
		level, err := beacon.ParseLevel(raw)
		if err != nil {
			return nil, beacon.NewBeaconErrorWithField(beacon.ErrCodeConfigError, "invalid level property", KeyLevel, raw)
		}
		cfg.Level(level)
	}

	for key, raw := range props {
		if !strings.HasPrefix(key, levelOverridePrefix) || key == KeyLevel {
			continue
		}
		class := strings.TrimPrefix(key, levelOverridePrefix)
		level, err := beacon.ParseLevel(raw)
		if err != nil {
			return nil, beacon.NewBeaconErrorWithField(beacon.ErrCodeConfigError, "invalid level override property", key, raw)
		}
		cfg.AddOverride(class, level)
	}

	if raw, ok := props[KeyMaxStackTraceElements]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, beacon.NewBeaconErrorWithField(beacon.ErrCodeConfigError, "invalid max_stack_trace_elements property", KeyMaxStackTraceElements, raw)
		}
		cfg.MaxStackTraceElements(n)
	}

	if raw, ok := props[KeyFormatPattern]; ok {
		if _, err := cfg.FormatPattern(raw); err != nil {
			return nil, err
		}
	}

	if err := loadWriters(cfg, props); err != nil {
		return nil, err
	}

	if raw, ok := props[KeyWritingThreadCapacity]; ok {
		capacity, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, beacon.NewBeaconErrorWithField(beacon.ErrCodeConfigError, "invalid writing_thread.capacity property", KeyWritingThreadCapacity, raw)
		}
		blockOnFull := true
		if raw, ok := props[KeyWritingThreadBlocking]; ok {
			blockOnFull, err = strconv.ParseBool(raw)
			if err != nil {
				return nil, beacon.NewBeaconErrorWithField(beacon.ErrCodeConfigError, "invalid writing_thread.block_on_full property", KeyWritingThreadBlocking, raw)
			}
		}
		cfg.WritingThread(capacity, blockOnFull)
	}

	return cfg, nil
}

func loadWriters(cfg *beacon.Configurator, props map[string]string) error {
	if raw, ok := props[KeyConsoleOutput]; ok {
		floor := beacon.Off
		if f, ok := props[KeyConsoleFloor]; ok {
			parsed, err := beacon.ParseLevel(f)
			if err != nil {
				return beacon.NewBeaconErrorWithField(beacon.ErrCodeConfigError, "invalid console.floor property", KeyConsoleFloor, f)
			}
			floor = parsed
		}

		var out *os.File
		switch strings.ToLower(raw) {
		case "stdout", "":
			out = os.Stdout
		case "stderr":
			out = os.Stderr
		default:
			return beacon.NewBeaconErrorWithField(beacon.ErrCodeConfigError, "unsupported console.output property", KeyConsoleOutput, raw)
		}
		cfg.Writer(beacon.NewConsoleSink(out, floor))
	}

	if path, ok := props[KeyFileOutput]; ok && path != "" {
		floor := beacon.Off
		if f, ok := props[KeyFileFloor]; ok {
			parsed, err := beacon.ParseLevel(f)
			if err != nil {
				return beacon.NewBeaconErrorWithField(beacon.ErrCodeConfigError, "invalid file.floor property", KeyFileFloor, f)
			}
			floor = parsed
		}
		sink, err := beacon.NewFileSink(path, floor)
		if err != nil {
			return err
		}
		cfg.Writer(sink)
	}

	return nil
}

// knownPropertyKeys enumerates every fixed (non-override) Load property key,
// used to reverse LoadFromEnv's dot-for-underscore translation without
// colliding a key's own literal underscores (e.g. "writing_thread.capacity")
// with the separator a dotted key is flattened to in an env var name.
var knownPropertyKeys = []string{
	KeyLevel, KeyFormatPattern, KeyMaxStackTraceElements,
	KeyWritingThreadCapacity, KeyWritingThreadBlocking,
	KeyConsoleOutput, KeyConsoleFloor, KeyFileOutput, KeyFileFloor,
}

// envKeyToPropertyKey translates envSuffix (an env var name with prefix
// already stripped) back to its Load property key. A known key is matched
// by comparing envSuffix against that key with "." replaced by "_", so a
// key's own underscores survive the round trip. A "level_<class>" suffix
// maps to a level override; anything else falls back to a blanket
// underscore-to-dot translation, matching the property's dotted shape.
func envKeyToPropertyKey(envSuffix string) string {
	for _, key := range knownPropertyKeys {
		if strings.EqualFold(strings.ReplaceAll(key, ".", "_"), envSuffix) {
			return key
		}
	}

	lowered := strings.ToLower(envSuffix)
	if strings.HasPrefix(lowered, "level_") {
		return levelOverridePrefix + strings.TrimPrefix(lowered, "level_")
	}
	return strings.ReplaceAll(lowered, "_", ".")
}

// LoadFromEnv builds a Configurator from environment variables sharing
// prefix (e.g. "BEACON_"), translating each BEACON_LEVEL / BEACON_LEVEL_* /
// BEACON_PATTERN style variable into the corresponding Load property key.
func LoadFromEnv(prefix string) (*beacon.Configurator, error) {
	props := make(map[string]string)
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[0], prefix) {
			continue
		}
		suffix := strings.TrimPrefix(parts[0], prefix)
		props[envKeyToPropertyKey(suffix)] = parts[1]
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("configloader: no environment variables found with prefix %q", prefix)
	}
	return Load(props)
}
