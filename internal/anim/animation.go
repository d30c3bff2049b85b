package anim

// Animation is a frame-stepped animation handle.
// Each handle is owned by exactly one holder; Release must be called once the
// holder is done with it.
type Animation struct {
	name          string
	frames        int
	ticksPerFrame int
	loop          bool

	current int
	tick    int
	done    bool

	released bool
	lib      *Library
}

// Name returns the name the animation was resolved by.
func (a *Animation) Name() string {
	return a.name
}

// Frame returns the current frame index.
func (a *Animation) Frame() int {
	return a.current
}

// AdvanceFrame steps the animation by one tick.
func (a *Animation) AdvanceFrame() {
	if a.done || a.frames <= 0 {
		return
	}
	a.tick++
	if a.tick < a.ticksPerFrame {
		return
	}
	a.tick = 0

	if a.current+1 < a.frames {
		a.current++
		return
	}
	if a.loop {
		a.current = 0
		return
	}
	a.done = true
}

// IsLastFrame reports whether the animation shows its final frame.
func (a *Animation) IsLastFrame() bool {
	return a.current == a.frames-1
}

// IsCompleted reports whether a non-looping animation has finished.
func (a *Animation) IsCompleted() bool {
	return a.done
}

// Reset rewinds the animation to the first frame.
func (a *Animation) Reset() {
	a.current = 0
	a.tick = 0
	a.done = false
}

// Release returns the handle to its library. Safe to call more than once.
func (a *Animation) Release() {
	if a == nil || a.released {
		return
	}
	a.released = true
	if a.lib != nil {
		a.lib.live--
	}
}

// Released reports whether Release has been called.
func (a *Animation) Released() bool {
	return a.released
}
