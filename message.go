// message.go: "{}" placeholder substitution for emission messages
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"fmt"
	"strings"
)

// FormatMessage substitutes "{}" placeholders in pattern with args in
// order, per spec.md §4.1 step 5 / §6 Message grammar / §8 Placeholder law:
//
//   - "{}" consumes the next positional argument, rendered with fmt's
//     default verb ("%v"), equivalent to fmt.Sprint on that single value.
//   - Excess arguments (more args than placeholders) are ignored.
//   - A missing argument (more placeholders than args) leaves "{}" in the
//     output verbatim.
//   - "{{" emits a literal "{" and does not consume an argument; "}}" emits a
//     literal "}" the same way, so "{{}}" renders as "{}" with zero args
//     consumed, distinct from a real "{}" placeholder.
//   - A lone "{" not followed by "}" or another "{" is emitted as-is, and
//     likewise for a lone "}".
//
// FormatMessage never panics.
func FormatMessage(pattern string, args ...interface{}) string {
	if !strings.Contains(pattern, "{") && !strings.Contains(pattern, "}") {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern) + 16*len(args))

	argIdx := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		switch {
		case c == '{' && i+1 < len(pattern) && pattern[i+1] == '{':
			// "{{" escape emits a literal "{"
			b.WriteByte('{')
			i++
		case c == '{' && i+1 < len(pattern) && pattern[i+1] == '}':
			if argIdx < len(args) {
				fmt.Fprint(&b, args[argIdx])
				argIdx++
			} else {
				b.WriteString("{}")
			}
			i++
		case c == '}' && i+1 < len(pattern) && pattern[i+1] == '}':
			// "}}" escape emits a literal "}"
			b.WriteByte('}')
			i++
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// RenderMessageValue converts an arbitrary emission payload to its textual
// representation for a LogRecord's RenderedMessage, per spec.md §4.1 step 5:
// a string always runs through FormatMessage, with or without arguments;
// any other value, nil included ("<nil>"), uses its default textual
// representation. Absence is not detected here: callers check
// MessagePresent before calling it.
func RenderMessageValue(v interface{}, args ...interface{}) string {
	if s, ok := v.(string); ok {
		return FormatMessage(s, args...)
	}
	return fmt.Sprint(v)
}
