// dispatcher_external_test.go: Caller-attribution regression test from outside package beacon
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon_test

import (
	"strings"
	"testing"

	"github.com/agilira/beacon"
)

// TestCallerAttributesToExternalCaller guards against callerDepth drifting
// back to a value that points at beacon's own dispatch/assemble frames
// instead of the real call site. It must run from a package distinct from
// "github.com/agilira/beacon" (an internal _test.go file can't catch this,
// since beacon's own package path is indistinguishable from an
// under-resolved frame that also lands inside beacon).
func TestCallerAttributesToExternalCaller(t *testing.T) {
	d := beacon.NewDispatcher()
	sink := beacon.NewCapturingDiscardSink()

	if err := beacon.NewConfigurator().Writer(sink).Activate(d); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	d.Info("logged from outside the beacon package")

	got := sink.Records()
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}

	class := got[0].Caller.Class
	if strings.HasPrefix(class, "github.com/agilira/beacon") && !strings.HasPrefix(class, "github.com/agilira/beacon_test") {
		t.Fatalf("expected the resolved caller class to be this external test package, got %q (caller attribution pointed inside beacon itself)", class)
	}
	if !strings.Contains(class, "beacon_test") {
		t.Fatalf("expected the resolved caller class to name the external test package, got %q", class)
	}
}
