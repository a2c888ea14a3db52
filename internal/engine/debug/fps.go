package debug

import (
	"fmt"
	"math"
	"time"
)

// DefaultFPSInterval is how often the frame rate is sampled.
const DefaultFPSInterval = 250 * time.Millisecond

// FPSCounter samples the frame rate over fixed intervals.
type FPSCounter struct {
	interval time.Duration
	start    time.Time
	frames   int
	fps      int
}

// NewFPSCounter creates a counter sampling every interval.
func NewFPSCounter(interval time.Duration) *FPSCounter {
	if interval <= 0 {
		interval = DefaultFPSInterval
	}
	return &FPSCounter{interval: interval}
}

// Frame records one presented frame at now. It returns true when the
// interval has elapsed and FPS holds a fresh sample.
func (c *FPSCounter) Frame(now time.Time) bool {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++

	elapsed := now.Sub(c.start)
	if elapsed < c.interval {
		return false
	}

	c.fps = int(math.Round(float64(c.frames) / elapsed.Seconds()))
	c.frames = 0
	c.start = now
	return true
}

// FPS returns the last sampled frame rate.
func (c *FPSCounter) FPS() int {
	return c.fps
}

// WindowTitle formats the viewer's title bar.
func WindowTitle(name string, fps, width, height int) string {
	return fmt.Sprintf("%s: %d Frames Per Second @ %d x %d", name, fps, width, height)
}
