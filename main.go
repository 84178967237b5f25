package main

import (
	"flag"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/galaxy/sim/app"
	"github.com/gekko3d/galaxy/sim/core"
)

func init() {
	runtime.LockOSThread()
}

var keyFromGlfw = map[glfw.Key]core.Key{
	glfw.KeyW:         core.KeyW,
	glfw.KeyA:         core.KeyA,
	glfw.KeyS:         core.KeyS,
	glfw.KeyD:         core.KeyD,
	glfw.KeySpace:     core.KeySpace,
	glfw.KeyLeftShift: core.KeyShift,
	glfw.KeyEscape:    core.KeyEscape,
	glfw.KeyF11:       core.KeyFullscreen,
	glfw.Key0:         core.Key0,
	glfw.Key1:         core.Key1,
	glfw.Key2:         core.Key2,
	glfw.Key3:         core.Key3,
	glfw.Key4:         core.Key4,
	glfw.Key5:         core.Key5,
	glfw.Key6:         core.Key6,
	glfw.Key7:         core.Key7,
	glfw.Key8:         core.Key8,
	glfw.Key9:         core.Key9,
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging and the FPS readout")
	font := flag.String("font", "", "TTF font for the HUD overlay (HUD off when empty)")
	flag.Parse()

	log := core.NewDefaultLogger("galaxy", *debug)

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(1280, 720, "Galaxy Collider", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	// Grab the mouse for free-look.
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	application := app.NewApp(window, log, *debug)
	if err := application.Init(*font); err != nil {
		panic(err)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		application.Resize(width, height)
	})

	var lastX, lastY float64
	var haveCursor bool
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if haveCursor {
			application.HandleEvent(core.MouseMoveEvent{
				DX: float32(xpos - lastX),
				DY: float32(ypos - lastY),
			})
		}
		lastX, lastY = xpos, ypos
		haveCursor = true
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		// glfw normalizes wheel and touchpad input into one line-based
		// offset stream, so Pixels is never set here.
		application.HandleEvent(core.ScrollEvent{Delta: float32(yoff)})
	})

	var windowedX, windowedY, windowedW, windowedH int
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		ck, ok := keyFromGlfw[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			if ck == core.KeyFullscreen {
				if w.GetMonitor() == nil {
					windowedX, windowedY = w.GetPos()
					windowedW, windowedH = w.GetSize()
					monitor := glfw.GetPrimaryMonitor()
					mode := monitor.GetVideoMode()
					w.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
				} else {
					w.SetMonitor(nil, windowedX, windowedY, windowedW, windowedH, 0)
				}
			}
			application.HandleEvent(core.KeyDownEvent{Key: ck})
		case glfw.Release:
			application.HandleEvent(core.KeyUpEvent{Key: ck})
		}
	})

	window.SetCloseCallback(func(w *glfw.Window) {
		application.HandleEvent(core.CloseEvent{})
	})

	// One simulation step and one render per iteration, paced by the
	// vsync'd present inside Frame.
	for application.State.Running && !window.ShouldClose() {
		glfw.PollEvents()
		application.Frame()
	}
}
