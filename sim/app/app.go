package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/galaxy/sim/core"
	"github.com/gekko3d/galaxy/sim/gpu"
)

// App ties the pieces into one ordered sequence per displayed frame:
// reduce pending input, advance the camera, rebuild the shared
// parameter block, then hand the step to the backend. It owns no
// simulation state of its own beyond the SimState snapshot.
type App struct {
	Window *glfw.Window
	Log    core.Logger
	State  core.SimState
	Debug  bool

	backend *gpu.WgpuBackend
	driver  *gpu.StepDriver
	hud     *Hud

	frames         int
	fps            float64
	fpsTime        float64
	lastRenderTime float64
}

func NewApp(window *glfw.Window, log core.Logger, debug bool) *App {
	return &App{
		Window: window,
		Log:    log,
		Debug:  debug,
	}
}

// Init seeds a fresh scenario and brings up every GPU resource. A nil
// error means the first frame can be drawn; there is no partial
// recovery below this point.
func (a *App) Init(fontPath string) error {
	scenario := core.NewScenario()
	a.Log.Infof("scenario %s: %d particles (%d per disk)", scenario.ID, len(scenario.Particles), core.DiskSize)

	seed := core.EncodeParticles(scenario.Particles)
	a.backend = gpu.NewWgpuBackend(a.Window, seed, a.Log)
	a.driver = gpu.NewStepDriver(a.backend, core.ParticleCount)

	width, height := a.Window.GetFramebufferSize()
	a.State = core.NewSimState(width, height)

	if fontPath != "" {
		text, err := core.NewTextRenderer(fontPath, 22)
		if err != nil {
			a.Log.Warnf("hud disabled: %v", err)
		} else {
			a.backend.EnableOverlay(text.Atlas)
			a.hud = NewHud(text, a.backend)
		}
	}
	return nil
}

// HandleEvent folds one platform event into the state snapshot.
func (a *App) HandleEvent(ev core.Event) {
	a.State = core.Reduce(a.State, ev)
}

// Resize reconfigures the swapchain before the next frame; the
// simulation only sees the new aspect ratio.
func (a *App) Resize(width, height int) {
	a.State = core.Reduce(a.State, core.ResizeEvent{Width: width, Height: height})
	a.backend.Resize(width, height)
}

// Frame runs one simulation step and one render step.
func (a *App) Frame() {
	if !a.State.Running {
		return
	}

	a.State.StepCamera()

	globals := core.Globals{
		Matrix:        a.State.Camera.ViewProjection(a.State.Aspect()),
		CameraPos:     a.State.Camera.Position,
		ParticleCount: core.ParticleCount,
		TimeStep:      a.State.TimeStep,
	}

	if a.hud != nil {
		a.hud.Stage(&a.State, a.fps, a.Debug)
	}

	if err := a.driver.Frame(globals.Bytes()); err != nil {
		// Transient surface loss (resize races, minimize); skip the
		// frame and let the next one reacquire.
		a.Log.Errorf("frame skipped: %v", err)
		return
	}

	a.tickFPS()
}

func (a *App) tickFPS() {
	now := glfw.GetTime()
	if a.lastRenderTime > 0 {
		a.frames++
		a.fpsTime += now - a.lastRenderTime
		if a.fpsTime >= 1.0 {
			a.fps = float64(a.frames) / a.fpsTime
			a.frames = 0
			a.fpsTime = 0
		}
	}
	a.lastRenderTime = now
}
