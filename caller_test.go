// caller_test.go: Test suite for the caller-frame discovery ladder
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"runtime"
	"testing"
)

func TestSplitFuncName(t *testing.T) {
	cases := []struct {
		name       string
		wantClass  string
		wantMethod string
	}{
		{"github.com/agilira/beacon.(*Dispatcher).log", "github.com/agilira/beacon", "(*Dispatcher).log"},
		{"github.com/agilira/beacon.FormatMessage", "github.com/agilira/beacon", "FormatMessage"},
		{"main.main", "main", "main"},
		{"", "<unknown>", "<unknown>"},
	}

	for _, tc := range cases {
		class, method := splitFuncName(tc.name)
		if class != tc.wantClass || method != tc.wantMethod {
			t.Errorf("splitFuncName(%q) = (%q, %q), want (%q, %q)", tc.name, class, method, tc.wantClass, tc.wantMethod)
		}
	}
}

func TestResolveCallerSingleFrame(t *testing.T) {
	var chain PluginChain
	caller := resolveCaller(&chain, 0, false)

	if caller.Class == "" {
		t.Error("expected a non-empty class from the runtime caller strategy")
	}
	if caller.Line <= 0 {
		t.Errorf("expected a resolved line number, got %d", caller.Line)
	}
}

func TestResolveCallerOnlyClassName(t *testing.T) {
	var chain PluginChain
	caller := resolveCaller(&chain, 0, true)

	if caller.Method != "<unknown>" || caller.File != "<unknown>" || caller.Line != -1 {
		t.Errorf("expected method/file/line unresolved for an only-class-name request, got %+v", caller)
	}
}

func TestResolveCallerPluginChainWins(t *testing.T) {
	var chain PluginChain
	chain.AddPlugin(StackFrameProviderFunc(func(depth int, onlyClassName bool) *Caller {
		return &Caller{Class: "plugin-supplied"}
	}))

	caller := resolveCaller(&chain, 0, false)
	if caller.Class != "plugin-supplied" {
		t.Errorf("expected the plugin chain's frame to win, got %+v", caller)
	}
}

func TestCachedFuncNameMemoizes(t *testing.T) {
	pc, _, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller(0) failed")
	}
	first := cachedFuncName(pc)
	second := cachedFuncName(pc)
	if first != second {
		t.Errorf("expected a stable name across calls, got %q then %q", first, second)
	}
	if first == "<unknown>" {
		t.Error("expected a resolvable function name for a real PC")
	}
}
