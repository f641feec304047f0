// FILE: lixenwraith/siteconfig/timing.go
package siteconfig

import "time"

// Timing constants for the file watcher.
const (
	SpinWaitInterval     = 5 * time.Millisecond   // busy-wait quantum during shutdown
	MinPollInterval      = 100 * time.Millisecond // hard floor for file stat polling
	ShutdownTimeout      = 100 * time.Millisecond // graceful watcher termination window
	DefaultDebounce      = 500 * time.Millisecond // file change coalescence period
	DefaultPollInterval  = time.Second            // standard file monitoring frequency
	DefaultReloadTimeout = 5 * time.Second        // maximum duration of a rebuild
)
