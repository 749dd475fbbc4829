// Package selflog reports problems inside msgtmpl that would otherwise be
// swallowed: values that fail to serialize while rendering, panics recovered
// from user String methods, sinks that cannot write.
//
// Output is off by default. Turn it on with a writer:
//
//	selflog.Enable(os.Stderr)
//	defer selflog.Disable()
//
// or with a callback:
//
//	selflog.EnableFunc(func(line string) { t.Log(line) })
//
// Each line is prefixed with an RFC 3339 UTC timestamp and the component that
// reported it, e.g.
//
//	2026-03-02T09:14:05Z [render] value of type chan int is not serializable
//
// Setting MSGTMPL_SELFLOG to "stderr", "stdout" or a file path enables output
// at startup.
package selflog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// EnvVar names the environment variable read at startup.
const EnvVar = "MSGTMPL_SELFLOG"

// output is swapped atomically so Printf never takes a lock on the fast path.
type output struct {
	w  io.Writer
	fn func(string)
}

var current atomic.Pointer[output]

// Enable sends diagnostics to w. Wrap non thread-safe writers with Sync.
func Enable(w io.Writer) {
	if w == nil {
		return
	}
	current.Store(&output{w: w})
}

// EnableFunc sends each formatted diagnostic line to fn.
func EnableFunc(fn func(string)) {
	if fn == nil {
		return
	}
	current.Store(&output{fn: fn})
}

// Disable turns diagnostics off.
func Disable() {
	current.Store(nil)
}

// IsEnabled reports whether diagnostics are on. Check it before building
// expensive arguments.
func IsEnabled() bool {
	return current.Load() != nil
}

// Printf writes one diagnostic line. The format should start with the
// component in square brackets, e.g. "[sentry] capture failed: %v".
func Printf(format string, args ...any) {
	out := current.Load()
	if out == nil {
		return
	}

	line := time.Now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...)
	if out.w != nil {
		fmt.Fprintln(out.w, line)
		return
	}
	out.fn(line)
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Sync wraps w so concurrent Printf calls do not interleave.
func Sync(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

func init() {
	enableFromEnv(os.Getenv(EnvVar))
}

func enableFromEnv(dest string) {
	switch dest {
	case "":
	case "stderr":
		Enable(os.Stderr)
	case "stdout":
		Enable(os.Stdout)
	default:
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot open %s: %v\n", EnvVar, dest, err)
			return
		}
		Enable(Sync(f))
	}
}
