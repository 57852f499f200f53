package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"plot3d/internal/config"
	"plot3d/internal/plot"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		snapshot   = flag.String("snapshot", "", "render one frame to this PNG file and exit")
		angle      = flag.Float64("angle", 0, "viewing angle in radians for -snapshot")
		logLevel   = flag.String("log-level", "", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	renderer, err := newRenderer(cfg)
	if err != nil {
		logger.Error("failed to build surface model", "err", err)
		os.Exit(1)
	}

	if *snapshot != "" {
		err = writeSnapshot(cfg, renderer, *snapshot, *angle)
	} else {
		err = runWindow(cfg, renderer, logger)
	}
	if err != nil {
		logger.Error("plot3d failed", "err", err)
		os.Exit(1)
	}
}

func newRenderer(cfg *config.Config) (*plot.Renderer, error) {
	f, err := plot.LookupFunc(cfg.Plot.Function)
	if err != nil {
		return nil, err
	}
	model, err := plot.Build(f, cfg.ModelOptions())
	if err != nil {
		return nil, err
	}
	return plot.NewRenderer(model, cfg.Colors.Background.Color()), nil
}

func writeSnapshot(cfg *config.Config, renderer *plot.Renderer, path string, angle float64) error {
	surface := plot.NewImageSurface(cfg.Window.Width, cfg.Window.Height, cfg.Colors.Foreground.Color())
	if err := renderer.Render(surface, angle); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, surface.Image()); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

func runWindow(cfg *config.Config, renderer *plot.Renderer, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	clock, err := plot.NewClock(glfwCounter{})
	if err != nil {
		return err
	}

	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Window.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}
	logger.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	// No frame-rate cap unless vsync is requested.
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	surface, err := newGLSurface(window, cfg.Colors.Foreground.Color(), renderer.Segments())
	if err != nil {
		return err
	}
	defer surface.Delete()

	shownFPS := -1
	driver := plot.NewDriver(clock, cfg.AngleFunc(),
		plot.WithLogger(logger),
		plot.WithSkipDrawErrors(cfg.Animation.SkipDrawErrors),
		plot.WithFrameHook(func(info plot.FrameInfo) {
			if info.FPS != shownFPS {
				shownFPS = info.FPS
				window.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Window.Title, info.FPS))
			}
		}),
	)
	if err := driver.Attach(renderer, surface); err != nil {
		return err
	}
	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		driver.OnResize(width, height)
	})

	m := renderer.Model()
	logger.Info("rendering", "function", cfg.Plot.Function, "rows", m.Rows(), "cols", m.Cols(),
		"segments", renderer.Segments())

	err = driver.Run(glfwHost{window})
	if errors.Is(err, plot.ErrDraw) {
		return fmt.Errorf("frame %d: %w", driver.Frames()+1, err)
	}
	return err
}

// glfwHost feeds the window's event loop to plot.Driver.
type glfwHost struct {
	window *glfw.Window
}

func (h glfwHost) ShouldClose() bool { return h.window.ShouldClose() }
func (h glfwHost) PollEvents()       { glfw.PollEvents() }
func (h glfwHost) WaitEvents()       { glfw.WaitEvents() }

func (h glfwHost) Visible() bool {
	return h.window.GetAttrib(glfw.Iconified) == glfw.False
}

// glfwCounter reads GLFW's raw high-resolution timer.
type glfwCounter struct{}

func (glfwCounter) Frequency() (int64, error) {
	f := glfw.GetTimerFrequency()
	if f == 0 {
		return 0, errors.New("glfw timer frequency is zero")
	}
	return int64(f), nil
}

func (glfwCounter) Counter() (int64, error) {
	return int64(glfw.GetTimerValue()), nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
