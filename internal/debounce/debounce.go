// Package debounce holds a value that only settles after it stopped changing for a delay.
package debounce

import "time"

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Value keeps the latest input apart from the settled value that consumers read.
type Value struct {
	delay   time.Duration
	clock   Clock
	pending string
	settled string
	changed time.Time
	gen     int
}

func New(delay time.Duration, clock Clock) *Value {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	return &Value{delay: delay, clock: clock}
}

// Set records new input and returns a generation number that identifies it.
func (v *Value) Set(s string) int {
	v.pending = s
	v.changed = v.clock.Now()
	v.gen++
	if v.delay <= 0 {
		v.settled = s
	}
	return v.gen
}

// Settle promotes the pending value once the delay has passed since the last Set.
// It reports whether the settled value changed.
func (v *Value) Settle() bool {
	if v.pending == v.settled || v.clock.Now().Sub(v.changed) < v.delay {
		return false
	}
	v.settled = v.pending
	return true
}

// SettleGen settles only if gen is still the latest generation. Timers
// started by earlier calls to Set are ignored this way.
func (v *Value) SettleGen(gen int) bool {
	if gen != v.gen {
		return false
	}
	return v.Settle()
}

// Flush settles immediately.
func (v *Value) Flush() bool {
	changed := v.pending != v.settled
	v.settled = v.pending
	return changed
}

// Reset clears both values.
func (v *Value) Reset() {
	v.pending, v.settled = "", ""
	v.gen++
}

func (v *Value) Pending() string { return v.pending }
func (v *Value) Settled() string { return v.settled }
func (v *Value) Delay() time.Duration { return v.delay }

// IsPending reports whether input is waiting to settle.
func (v *Value) IsPending() bool { return v.pending != v.settled }
