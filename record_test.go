// record_test.go: Test suite for Caller/LogRecord helpers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import "testing"

func TestCallerPackageAndClassName(t *testing.T) {
	cases := []struct {
		class       string
		wantPackage string
		wantName    string
	}{
		{"github.com/acme/api/handlers", "github.com/acme/api", "handlers"},
		{"main", "", "main"},
		{"", "", ""},
	}

	for _, tc := range cases {
		c := Caller{Class: tc.class}
		if got := c.Package(); got != tc.wantPackage {
			t.Errorf("Package(%q) = %q, want %q", tc.class, got, tc.wantPackage)
		}
		if got := c.ClassName(); got != tc.wantName {
			t.Errorf("ClassName(%q) = %q, want %q", tc.class, got, tc.wantName)
		}
	}
}

func TestLogRecordDefaults(t *testing.T) {
	r := &LogRecord{Level: Warning}
	if r.MessagePresent {
		t.Error("new LogRecord should not report a present message")
	}
	if r.Exception != nil {
		t.Error("new LogRecord should have no exception")
	}
	if r.Level != Warning {
		t.Errorf("expected Level Warning, got %s", r.Level)
	}
}
