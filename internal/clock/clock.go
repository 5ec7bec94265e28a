package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// SleepFunc pauses the calling goroutine. Override in tests so that bounded
// waits (retry backoff, visibility polling) complete instantly instead of
// sleeping for real.
var SleepFunc = time.Sleep

// Sleep is a thin wrapper around SleepFunc.
func Sleep(d time.Duration) { SleepFunc(d) }
