package plot

import (
	"fmt"
	"math"
	"time"
)

// Counter is a high-resolution tick source.
type Counter interface {
	// Frequency returns the number of ticks per second.
	Frequency() (int64, error)
	Counter() (int64, error)
}

// Timestamp is a raw counter reading.
type Timestamp int64

// Clock samples a Counter once per frame. Total and Delta only change
// when Reset is called.
type Clock struct {
	counter Counter

	frequency int64
	start     int64
	previous  int64
	current   int64
}

func NewClock(counter Counter) (*Clock, error) {
	frequency, err := counter.Frequency()
	if err != nil {
		return nil, fmt.Errorf("%w: frequency: %v", ErrClockUnavailable, err)
	}
	if frequency <= 0 {
		return nil, fmt.Errorf("%w: frequency %d", ErrClockUnavailable, frequency)
	}
	now, err := counter.Counter()
	if err != nil {
		return nil, fmt.Errorf("%w: counter: %v", ErrClockUnavailable, err)
	}
	return &Clock{
		counter:   counter,
		frequency: frequency,
		start:     now,
		previous:  now,
		current:   now,
	}, nil
}

// Reset marks a frame boundary.
func (c *Clock) Reset() error {
	now, err := c.counter.Counter()
	if err != nil {
		return fmt.Errorf("%w: counter: %v", ErrClockUnavailable, err)
	}
	c.previous = c.current
	c.current = now
	return nil
}

// Total is the number of seconds between NewClock and the last Reset.
func (c *Clock) Total() float64 {
	return c.seconds(c.current - c.start)
}

// Delta is the number of seconds between the last two Resets.
func (c *Clock) Delta() float64 {
	return c.seconds(c.current - c.previous)
}

func (c *Clock) Now() (Timestamp, error) {
	now, err := c.counter.Counter()
	if err != nil {
		return 0, fmt.Errorf("%w: counter: %v", ErrClockUnavailable, err)
	}
	return Timestamp(now), nil
}

func (c *Clock) ElapsedSince(t Timestamp) (time.Duration, error) {
	now, err := c.Now()
	if err != nil {
		return 0, err
	}
	return c.duration(int64(now - t)), nil
}

// duration converts ticks exactly. The remainder product fits in int64 for
// any frequency below 9 GHz.
func (c *Clock) duration(ticks int64) time.Duration {
	whole := ticks / c.frequency
	rem := ticks % c.frequency
	return time.Duration(whole)*time.Second + time.Duration(rem*int64(time.Second)/c.frequency)
}

func (c *Clock) seconds(ticks int64) float64 {
	return float64(ticks) / float64(c.frequency)
}

// MonotonicCounter reads the Go runtime's monotonic clock at nanosecond
// resolution.
type MonotonicCounter struct {
	epoch time.Time
}

func NewMonotonicCounter() *MonotonicCounter {
	return &MonotonicCounter{epoch: time.Now()}
}

func (m *MonotonicCounter) Frequency() (int64, error) { return int64(time.Second), nil }

func (m *MonotonicCounter) Counter() (int64, error) {
	return int64(time.Since(m.epoch)), nil
}

// AngleFunc maps total elapsed seconds to a viewing angle in radians.
type AngleFunc func(total float64) float64

// Linear turns the plot at a constant speed in radians per second.
func Linear(speed float64) AngleFunc {
	return func(total float64) float64 { return speed * total }
}

// Oscillate swings the plot between -amplitude and amplitude radians once
// every period seconds.
func Oscillate(amplitude, period float64) AngleFunc {
	return func(total float64) float64 {
		return amplitude * math.Sin(2*math.Pi*total/period)
	}
}

// FrameRate counts rendered frames over one-second windows.
type FrameRate struct {
	frames  int
	elapsed float64
	last    int
}

// Tick records one frame that took delta seconds. It reports the frame
// count of a window each time one completes.
func (f *FrameRate) Tick(delta float64) (fps int, updated bool) {
	f.frames++
	f.elapsed += delta
	if f.elapsed < 1 {
		return f.last, false
	}
	f.last = f.frames
	f.frames = 0
	f.elapsed = 0
	return f.last, true
}

// Elapse accounts for delta seconds in which no frame was shown.
func (f *FrameRate) Elapse(delta float64) {
	f.elapsed += delta
}

// Current returns the count of the last completed window.
func (f *FrameRate) Current() int { return f.last }
