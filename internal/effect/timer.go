package effect

// Timer counts down an instance's remaining ticks.
// A timer with zero duration is permanent and never ends.
type Timer struct {
	duration int
	current  int
	elapsed  int
}

// NewTimer creates a timer running for duration ticks. duration <= 0
// makes it permanent.
func NewTimer(duration int) Timer {
	duration = max(duration, 0)
	return Timer{duration: duration, current: duration}
}

// Duration returns the ticks the timer was (re)started with.
func (t *Timer) Duration() int { return t.duration }

// Current returns the remaining ticks.
func (t *Timer) Current() int { return t.current }

// Elapsed returns ticks since the timer was created. Refreshing does not
// reset it.
func (t *Timer) Elapsed() int { return t.elapsed }

// Permanent reports whether the timer never ends.
func (t *Timer) Permanent() bool { return t.duration == 0 }

// Tick advances the timer by one tick.
func (t *Timer) Tick() {
	t.elapsed++
	if t.current > 0 {
		t.current--
	}
}

// IsEnd reports whether a non-permanent timer reached zero.
func (t *Timer) IsEnd() bool {
	return !t.Permanent() && t.current == 0
}

// Reset restarts the timer with a new duration.
func (t *Timer) Reset(duration int) {
	t.duration = max(duration, 0)
	t.current = t.duration
}

// IsPulse reports whether the last tick brought the remaining time to a
// whole second. The tick that ends the timer counts, so a timer of N
// seconds pulses N times. Permanent timers never pulse.
func (t *Timer) IsPulse(ticksPerSecond int) bool {
	if t.Permanent() || t.elapsed == 0 {
		return false
	}
	return t.current%max(ticksPerSecond, 1) == 0
}

// remaining orders timers for stack refresh; permanent timers sort last.
func (t *Timer) remaining() int {
	if t.Permanent() {
		return int(^uint(0) >> 1)
	}
	return t.current
}
