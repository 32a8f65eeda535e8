// message_test.go: Test suite for beacon's {}-placeholder message formatter
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import "testing"

func TestFormatMessage(t *testing.T) {
	cases := []struct {
		name     string
		pattern  string
		args     []interface{}
		expected string
	}{
		{"no placeholders", "hello world", nil, "hello world"},
		{"single placeholder", "hello {}", []interface{}{"world"}, "hello world"},
		{"multiple placeholders", "{} plus {} is {}", []interface{}{1, 2, 3}, "1 plus 2 is 3"},
		{"excess args ignored", "value {}", []interface{}{1, 2, 3}, "value 1"},
		{"missing args left verbatim", "{} and {}", []interface{}{"a"}, "a and {}"},
		{"escaped open brace", "{{}} literal", nil, "{} literal"},
		{"escaped brace then placeholder", "{{{}", []interface{}{"x"}, "{x"},
		{"no args no braces", "plain text", nil, "plain text"},
		{"empty pattern", "", nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatMessage(tc.pattern, tc.args...); got != tc.expected {
				t.Errorf("FormatMessage(%q, %v) = %q, want %q", tc.pattern, tc.args, got, tc.expected)
			}
		})
	}
}

func TestFormatMessageDoubleBraceEscape(t *testing.T) {
	if got := FormatMessage("{{}}"); got != "{}" {
		t.Errorf(`FormatMessage("{{}}") = %q, want "{}"`, got)
	}
}
