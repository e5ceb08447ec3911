package monitoring

import (
	"fmt"
	"sync"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// ReportPanic records a recovered panic value.
	ReportPanic(v any)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) ReportPanic(any)                           {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init sets the global monitor implementation.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

func get() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	get().CaptureException(err, tags)
}

// Recover reports a panic in the calling goroutine and re-panics.
// It must be deferred directly: defer monitoring.Recover().
func Recover() {
	if r := recover(); r != nil {
		m := get()
		m.ReportPanic(r)
		m.Flush(2 * time.Second)
		panic(r)
	}
}

// RecoverError reports a panic and converts it into *err instead of
// re-panicking. Used by goroutines that must keep the process alive.
func RecoverError(err *error) {
	if r := recover(); r != nil {
		get().ReportPanic(r)
		if err != nil {
			*err = fmt.Errorf("panic: %v", r)
		}
	}
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	get().Flush(d)
}
