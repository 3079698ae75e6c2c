//go:build tinygo

package main

import "time"

// runtimeClock derives the millisecond counter from the TinyGo runtime
// tick source. Truncation to uint32 gives the 49.7 day wrap the core's
// modular arithmetic expects.
type runtimeClock struct {
	origin time.Time
}

func newRuntimeClock() *runtimeClock {
	return &runtimeClock{origin: time.Now()}
}

func (c *runtimeClock) NowMillis() uint32 {
	return uint32(time.Since(c.origin).Milliseconds())
}
