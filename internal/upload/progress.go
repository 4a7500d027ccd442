package upload

import "math/rand"

// Progress is a decorative upload indicator, not a measured quantity:
// the transport exposes no progress events, so the bar advances on a
// timer in random 5–25 point steps, holds below the cap until the
// request resolves, then jumps to 100.
type Progress struct {
	value float64
	done  bool
}

const progressCap = 90

// Step advances the animation. No-op once finished.
func (p *Progress) Step() {
	if p.done {
		return
	}
	p.value += 5 + rand.Float64()*20
	if p.value > progressCap {
		p.value = progressCap
	}
}

// Jump raises the animation to at least value, still capped.
func (p *Progress) Jump(value float64) {
	if p.done || value <= p.value {
		return
	}
	p.value = value
	if p.value > progressCap {
		p.value = progressCap
	}
}

// Finish completes the animation.
func (p *Progress) Finish() {
	p.done = true
	p.value = 100
}

// Reset returns the animation to zero, e.g. after a failed upload.
func (p *Progress) Reset() {
	p.done = false
	p.value = 0
}

// Percent reports the current display value in [0, 100].
func (p *Progress) Percent() float64 {
	return p.value
}

// Done reports whether the animation has completed.
func (p *Progress) Done() bool {
	return p.done
}
