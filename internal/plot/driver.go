package plot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// State is the lifecycle state of a Driver.
type State int

const (
	Uninitialized State = iota
	Ready
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Host is the windowing side of the render loop.
type Host interface {
	// ShouldClose reports a pending shutdown request.
	ShouldClose() bool
	// Visible reports whether frames should be drawn at all.
	Visible() bool
	// PollEvents processes pending events without blocking.
	PollEvents()
	// WaitEvents blocks until at least one event is processed.
	WaitEvents()
}

// FrameInfo describes a completed frame.
type FrameInfo struct {
	Frame uint64
	Total float64
	Delta float64
	Angle float64
	FPS   int
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

func WithLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) { d.logger = logger }
}

// WithSkipDrawErrors makes Run log DrawErrors and continue with the next
// frame instead of returning them.
func WithSkipDrawErrors(skip bool) DriverOption {
	return func(d *Driver) { d.skipDrawErrors = skip }
}

// WithFrameHook registers fn to be called after every successful frame.
func WithFrameHook(fn func(FrameInfo)) DriverOption {
	return func(d *Driver) { d.onFrame = fn }
}

// Driver owns the render loop state: the clock, the renderer and the
// surface it draws to. It is not safe for concurrent use.
type Driver struct {
	state    State
	clock    *Clock
	angle    AngleFunc
	renderer *Renderer
	surface  Surface

	rate   FrameRate
	frames uint64

	logger         *slog.Logger
	skipDrawErrors bool
	onFrame        func(FrameInfo)
}

func NewDriver(clock *Clock, angle AngleFunc, opts ...DriverOption) *Driver {
	if angle == nil {
		angle = Linear(1)
	}
	d := &Driver{
		state:  Uninitialized,
		clock:  clock,
		angle:  angle,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) State() State { return d.state }

// Frames returns the number of frames rendered successfully.
func (d *Driver) Frames() uint64 { return d.frames }

// Attach binds the renderer and surface and moves the driver to Ready.
func (d *Driver) Attach(r *Renderer, s Surface) error {
	if d.state == Terminated {
		return fmt.Errorf("plot: attach: driver is %s", d.state)
	}
	if r == nil || s == nil {
		return errors.New("plot: attach: nil renderer or surface")
	}
	d.renderer = r
	d.surface = s
	d.state = Ready
	return nil
}

// Frame advances the clock and renders one frame. The driver stays Ready
// whether or not rendering succeeded.
func (d *Driver) Frame() error {
	if d.state != Ready {
		return fmt.Errorf("%w: state %s", ErrNotReady, d.state)
	}
	if err := d.clock.Reset(); err != nil {
		return err
	}
	total, delta := d.clock.Total(), d.clock.Delta()
	angle := d.angle(total)
	d.logger.Debug("frame", "t", total, "dt", delta, "angle", angle)

	if err := d.renderer.Render(d.surface, angle); err != nil {
		d.rate.Elapse(delta)
		return err
	}

	d.frames++
	fps, updated := d.rate.Tick(delta)
	if updated {
		d.logger.Debug("frame rate", "fps", fps)
	}
	if d.onFrame != nil {
		d.onFrame(FrameInfo{Frame: d.frames, Total: total, Delta: delta, Angle: angle, FPS: fps})
	}
	return nil
}

// OnResize passes a new viewport size to the surface. The model placement
// is left as it is.
func (d *Driver) OnResize(width, height int) {
	d.logger.Info("viewport resized", "width", width, "height", height)
	if r, ok := d.surface.(Resizer); ok {
		r.Resize(width, height)
	}
}

// Run renders frames until the host asks to close. Shutdown is only
// observed between frames.
func (d *Driver) Run(host Host) error {
	if d.state != Ready {
		return fmt.Errorf("%w: state %s", ErrNotReady, d.state)
	}
	defer d.Terminate()

	for !host.ShouldClose() {
		if !host.Visible() {
			host.WaitEvents()
			continue
		}

		if err := d.Frame(); err != nil {
			if !d.skipDrawErrors || !errors.Is(err, ErrDraw) {
				return err
			}
			d.logger.Warn("skipping frame", "frame", d.frames+1, "err", err)
		}
		host.PollEvents()
	}
	return nil
}

// Terminate ends the driver's lifecycle. Further Frame calls fail.
func (d *Driver) Terminate() {
	if d.state == Terminated {
		return
	}
	d.state = Terminated
	d.logger.Info("render loop terminated", "frames", d.frames)
}
