// caller.go: Caller-frame discovery strategy ladder
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"runtime"
	"sync"
)

// funcNameCache memoizes runtime.FuncForPC lookups by program counter.
// sync.Map is tuned for read-heavy, append-mostly workloads, which matches
// this cache: the set of distinct call sites in a running program is small
// and stable relative to the call volume that looks them up.
var funcNameCache sync.Map // map[uintptr]string

func cachedFuncName(pc uintptr) string {
	if cached, ok := funcNameCache.Load(pc); ok {
		return cached.(string)
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "<unknown>"
	}
	name := fn.Name()
	funcNameCache.Store(pc, name)
	return name
}

// unknownCaller is the sentinel returned when every strategy in the ladder
// fails to resolve a frame.
var unknownCaller = Caller{Class: "<unknown>", Method: "<unknown>", File: "<unknown>", Line: -1}

// resolveCaller runs the caller-frame provider ladder: a plugin chain if
// one is installed, then a fast class-name path, then single-frame
// extraction, then a full-trace fallback. depth is the number of frames
// above resolveCaller's own caller (the dispatcher's canonical depth).
func resolveCaller(chain *PluginChain, depth int, onlyClassName bool) Caller {
	if provider := chain.FrameProvider(); provider != nil {
		if frame := provider.Get(depth+1, onlyClassName); frame != nil {
			return *frame
		}
	}

	if onlyClassName {
		if c, ok := classNameOnly(depth + 1); ok {
			return c
		}
	}

	if c, ok := singleFrame(depth + 1); ok {
		return c
	}

	return fullTraceFrame(depth + 1)
}

// classNameOnly is the fast path for configurations that only need a
// per-class level override decision (§4.2 strategy 2): it resolves only
// the caller's package path, leaving method/file/line unresolved.
func classNameOnly(skip int) (Caller, bool) {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return Caller{}, false
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return Caller{}, false
	}
	return Caller{
		Class:         packagePathFromFuncName(fn.Name()),
		Method:        "<unknown>",
		File:          "<unknown>",
		Line:          -1,
		OnlyClassName: true,
	}, true
}

// singleFrame extracts exactly one frame by index via runtime.Caller, the
// cheaper alternative to materializing and walking a full trace.
func singleFrame(skip int) (Caller, bool) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Caller{}, false
	}

	name := cachedFuncName(pc)
	class, method := splitFuncName(name)

	return Caller{
		Class:  class,
		Method: method,
		File:   file,
		Line:   line,
	}, true
}

// fullTraceFrame captures a full stack trace and indexes the target frame,
// the last-resort strategy when the runtime offers no cheaper primitive.
func fullTraceFrame(skip int) Caller {
	stack := CaptureStack(skip+1, FullStack)
	defer FreeStack(stack)

	frame, ok := stack.Next()
	if !ok {
		return unknownCaller
	}

	class, method := splitFuncName(frame.Function)
	return Caller{
		Class:  class,
		Method: method,
		File:   frame.File,
		Line:   frame.Line,
	}
}

// splitFuncName splits a fully qualified function name such as
// "github.com/agilira/beacon.(*Dispatcher).log" into a class (the package
// import path, "github.com/agilira/beacon") and a method (the rest,
// including any receiver type, "(*Dispatcher).log").
func splitFuncName(name string) (class, method string) {
	if name == "" {
		return "<unknown>", "<unknown>"
	}

	lastSlashIdx := lastSlash(name)
	searchFrom := 0
	if lastSlashIdx >= 0 {
		searchFrom = lastSlashIdx
	}

	dotIdx := -1
	for i := searchFrom; i < len(name); i++ {
		if name[i] == '.' {
			dotIdx = i
			break
		}
	}

	if dotIdx < 0 {
		return name, "<unknown>"
	}

	return name[:dotIdx], name[dotIdx+1:]
}

// packagePathFromFuncName extracts just the class portion of a qualified
// function name, for the fast class-name-only path.
func packagePathFromFuncName(name string) string {
	class, _ := splitFuncName(name)
	return class
}
