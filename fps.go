package glf

import "fmt"

// FPSCounter estimates the frame rate from frame deltas, refreshing its
// reading every Interval seconds.
type FPSCounter struct {
	Interval float64

	frames  int
	elapsed float64
	fps     float64
}

// NewFPSCounter returns a counter that refreshes every half second.
func NewFPSCounter() *FPSCounter {
	return &FPSCounter{Interval: 0.5}
}

// Tick records one frame that took dt seconds. It reports whether the
// reading was refreshed.
func (c *FPSCounter) Tick(dt float64) bool {
	c.frames++
	c.elapsed += dt
	if c.elapsed < c.Interval || c.elapsed <= 0 {
		return false
	}
	c.fps = float64(c.frames) / c.elapsed
	c.frames = 0
	c.elapsed = 0
	return true
}

// FPS returns the last reading.
func (c *FPSCounter) FPS() float64 { return c.fps }

func (c *FPSCounter) String() string {
	return fmt.Sprintf("FPS: %.1f", c.fps)
}
