// pattern.go: Format-pattern parser
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"strings"
)

// DefaultFormatPattern is used by a sink added without an explicit pattern.
const DefaultFormatPattern = "{date}#{level}#{class}#{message}"

// CompilePattern parses a format-pattern string into a FormatPattern,
// compiling each `{token}` or `{token:options}` placeholder into the
// matching built-in Token and every run of literal text into a
// literalToken. maxStackTraceElements bounds the "message" token's
// exception-stack-trace suffix.
//
// An unrecognized token name is a ConfigError, surfaced to the configurator
// caller per §7.
func CompilePattern(pattern string, maxStackTraceElements int) (*FormatPattern, error) {
	var tokens []Token
	var required RequiredFieldSet

	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, literalToken{text: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(pattern) {
		c := pattern[i]
		if c != '{' {
			literal.WriteByte(c)
			i++
			continue
		}

		end := strings.IndexByte(pattern[i:], '}')
		if end < 0 {
			// Unterminated placeholder: treat the rest as literal text.
			literal.WriteString(pattern[i:])
			break
		}
		end += i

		flushLiteral()

		spec := pattern[i+1 : end]
		name, option, _ := strings.Cut(spec, ":")

		tok, err := compileToken(name, option, maxStackTraceElements)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		required = required.Union(tok.RequiredFields())

		i = end + 1
	}
	flushLiteral()

	tokens = append(tokens, lineTerminatorToken{})

	return &FormatPattern{tokens: tokens, required: required}, nil
}

func compileToken(name, option string, maxStackTraceElements int) (Token, error) {
	switch name {
	case "pid":
		return pidToken{}, nil
	case "thread":
		return threadToken{}, nil
	case "thread_id":
		return threadIDToken{}, nil
	case "class":
		return classToken{}, nil
	case "package":
		return packageToken{}, nil
	case "class_name":
		return classNameToken{}, nil
	case "method":
		return methodToken{}, nil
	case "file":
		return fileToken{}, nil
	case "line":
		return lineToken{}, nil
	case "level":
		return levelToken{}, nil
	case "date":
		return newDateToken(option), nil
	case "message":
		return messageToken{maxStackTraceElements: maxStackTraceElements}, nil
	default:
		return nil, NewBeaconErrorWithField(ErrCodeConfigError,
			"unrecognized format pattern token", "token", name)
	}
}
