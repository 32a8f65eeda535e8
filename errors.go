// errors.go: Error handling integration for the beacon dispatch pipeline
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/agilira/go-errors"
)

// Error codes for the five kinds of failure the dispatch pipeline can raise.
const (
	// ErrCodeConfigError marks an invalid configuration: a malformed
	// configloader property, an unrecognized format-pattern token, a file
	// sink that could not be opened, or a writing thread that failed to start.
	ErrCodeConfigError errors.ErrorCode = "BEACON_CONFIG_ERROR"

	// ErrCodeRecordAssemblyError marks a failure while assembling a
	// LogRecord — caller resolution, placeholder substitution, or exception
	// sanitization raised instead of returning.
	ErrCodeRecordAssemblyError errors.ErrorCode = "BEACON_RECORD_ASSEMBLY_ERROR"

	// ErrCodeSinkWriteError marks a sink's write/flush/close returning an
	// error. Per spec, a failing sink never blocks its siblings.
	ErrCodeSinkWriteError errors.ErrorCode = "BEACON_SINK_WRITE_ERROR"

	// ErrCodeFrameLookupWarning marks a caller-frame resolution that fell
	// back to a cheaper or sentinel strategy; never fatal.
	ErrCodeFrameLookupWarning errors.ErrorCode = "BEACON_FRAME_LOOKUP_WARNING"

	// ErrCodePluginInitError marks a sink's Init rejecting the configuration
	// it was handed during Configurator.Activate.
	ErrCodePluginInitError errors.ErrorCode = "BEACON_PLUGIN_INIT_ERROR"
)

// ErrorHandler is a function that handles the errors passed to handleError
// (the panics SafeExecute recovers) without routing them back through the
// dispatcher itself.
type ErrorHandler func(err *errors.Error)

// defaultErrorHandler prints to stderr. It never calls back into the
// dispatcher, matching internallogger.go's own isolation rule.
var defaultErrorHandler ErrorHandler = func(err *errors.Error) {
	fmt.Fprintf(os.Stderr, "[BEACON ERROR] %s: %s\n", err.Code, err.Message)
	if err.Cause != nil {
		fmt.Fprintf(os.Stderr, "[BEACON ERROR] Caused by: %v\n", err.Cause)
	}
}

var currentErrorHandler = defaultErrorHandler

// SetErrorHandler installs a custom handler for pipeline-internal errors.
// Passing nil restores the stderr default.
func SetErrorHandler(handler ErrorHandler) {
	if handler == nil {
		currentErrorHandler = defaultErrorHandler
		return
	}
	currentErrorHandler = handler
}

// GetErrorHandler returns the currently installed handler.
func GetErrorHandler() ErrorHandler {
	return currentErrorHandler
}

// handleError routes err through the current handler, attaching runtime
// context first.
func handleError(err *errors.Error) {
	if err == nil {
		return
	}

	if err.Context == nil {
		err.Context = make(map[string]interface{})
	}
	err.Context["go_version"] = runtime.Version()
	err.Context["goroutines"] = runtime.NumGoroutine()

	currentErrorHandler(err)
}

// NewBeaconError creates a pipeline error tagged with standard context.
func NewBeaconError(code errors.ErrorCode, message string) *errors.Error {
	err := errors.New(code, message).
		WithSeverity("error").
		WithContext("component", "beacon_dispatcher").
		WithContext("timestamp", time.Now().UTC())

	if pc, file, line, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			_ = err.WithContext("caller_func", fn.Name())
		}
		_ = err.WithContext("caller_file", file)
		_ = err.WithContext("caller_line", line)
	}

	return err
}

// NewBeaconErrorWithField creates a pipeline error carrying a field/value
// pair, for configuration validation failures that name the offending field.
func NewBeaconErrorWithField(code errors.ErrorCode, message, field, value string) *errors.Error {
	return errors.NewWithField(code, message, field, value).
		WithSeverity("error").
		WithContext("component", "beacon_dispatcher").
		WithContext("timestamp", time.Now().UTC())
}

// WrapBeaconError wraps an existing error (typically from a sink or plugin)
// with pipeline context.
func WrapBeaconError(originalErr error, code errors.ErrorCode, message string) *errors.Error {
	err := errors.Wrap(originalErr, code, message).
		WithSeverity("error").
		WithContext("component", "beacon_dispatcher").
		WithContext("timestamp", time.Now().UTC())

	if pc, file, line, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			_ = err.WithContext("caller_func", fn.Name())
		}
		_ = err.WithContext("caller_file", file)
		_ = err.WithContext("caller_line", line)
	}

	return err
}

// IsRetryableError reports whether err is a beacon error marked retryable.
func IsRetryableError(err error) bool {
	if beaconErr, ok := err.(*errors.Error); ok {
		return beaconErr.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from err, or "" if err is not a
// beacon error.
func GetErrorCode(err error) errors.ErrorCode {
	if beaconErr, ok := err.(*errors.Error); ok {
		return beaconErr.ErrorCode()
	}
	return ""
}

// GetUserMessage extracts a user-facing message from err.
func GetUserMessage(err error) string {
	if beaconErr, ok := err.(*errors.Error); ok {
		return beaconErr.UserMessage()
	}
	return err.Error()
}

// IsBeaconError reports whether err carries the given code.
func IsBeaconError(err error, code errors.ErrorCode) bool {
	return errors.HasCode(err, code)
}

// RecoverWithError recovers from a panic in progress and converts it into a
// beacon error carrying a stack trace, for use in a deferred call at plugin
// and sink call sites.
func RecoverWithError(code errors.ErrorCode) *errors.Error {
	if r := recover(); r != nil {
		message := fmt.Sprintf("panic recovered: %v", r)

		err := NewBeaconError(code, message)
		_ = err.WithContext("panic_value", r)
		_ = err.WithContext("recovery_time", time.Now().UTC())

		_ = err.WithContext("panic_stack", fastStacktrace(0))

		return err
	}
	return nil
}

// SafeExecute runs fn and returns its error. A panic in fn is recovered
// into a BEACON_SINK_WRITE_ERROR routed through the current error handler
// rather than propagated, and SafeExecute then returns nil. The dispatcher
// and writing thread do not call it; they recover sink panics themselves.
func SafeExecute(fn func() error, operation string) error {
	defer func() {
		if r := recover(); r != nil {
			err := NewBeaconError(ErrCodeSinkWriteError, fmt.Sprintf("panic recovered: %v", r))
			_ = err.WithContext("panic_value", r)
			_ = err.WithContext("operation", operation)
			handleError(err)
		}
	}()

	return fn()
}

// validateErrorCodes ensures every error code follows the BEACON_ prefix
// convention. Run once from init so a typo in a new code constant fails at
// import time instead of surfacing as a silently unmatched HasCode check.
func validateErrorCodes() {
	codes := []errors.ErrorCode{
		ErrCodeConfigError, ErrCodeRecordAssemblyError, ErrCodeSinkWriteError,
		ErrCodeFrameLookupWarning, ErrCodePluginInitError,
	}

	for _, code := range codes {
		if len(string(code)) == 0 {
			panic("beacon: empty error code detected")
		}
		if string(code)[:7] != "BEACON_" {
			panic(fmt.Sprintf("beacon: error code %s does not follow BEACON_ prefix convention", code))
		}
	}
}

func init() {
	validateErrorCodes()
}
