package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Key is a backend-independent key code. The platform layer maps its
// native codes (glfw) onto these before events reach the reducer.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyShift
	KeyEscape
	KeyFullscreen
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	keyCount
)

// TimeSteps is the fixed set of selectable simulated-seconds-per-frame
// values, indexed by digit key.
var TimeSteps = [10]float32{0, 10, 20, 40, 80, 160, 320, 640, 1280, 2560}

// Event is one input event: any of the types below. The platform layer
// translates window-system callbacks into these; everything downstream
// of the translation is pure.
type Event any

type (
	KeyDownEvent struct{ Key Key }
	KeyUpEvent   struct{ Key Key }

	// MouseMoveEvent carries a pointer-motion delta in screen units.
	MouseMoveEvent struct{ DX, DY float32 }

	// ScrollEvent carries a raw scroll delta. Pixels marks pixel-based
	// (touchpad) input, which uses a finer conversion than line-based
	// wheel clicks.
	ScrollEvent struct {
		Delta  float32
		Pixels bool
	}

	ResizeEvent struct{ Width, Height int }
	CloseEvent  struct{}
)

// SimState is the whole mutable state of the event loop: camera,
// held-key set, selected time step and window geometry. Rendering is a
// pure read of the latest snapshot; the only writer is Reduce plus the
// per-frame StepCamera.
type SimState struct {
	Camera   CameraState
	Pressed  [keyCount]bool
	TimeStep float32
	Width    int
	Height   int
	Running  bool
}

func NewSimState(width, height int) SimState {
	return SimState{
		Camera:  *NewCameraState(),
		Width:   width,
		Height:  height,
		Running: true,
	}
}

func scrollUnits(ev ScrollEvent) float32 {
	if ev.Pixels {
		return ev.Delta / 64
	}
	return ev.Delta / 8
}

// Reduce folds one input event into the state. Look and scroll apply
// immediately; held movement keys only take effect once per rendered
// frame, in StepCamera.
func Reduce(s SimState, ev Event) SimState {
	switch e := ev.(type) {
	case KeyDownEvent:
		s.Pressed[e.Key] = true
		switch {
		case e.Key == KeyEscape:
			s.Running = false
		case e.Key >= Key0 && e.Key <= Key9:
			s.TimeStep = TimeSteps[e.Key-Key0]
		}
	case KeyUpEvent:
		s.Pressed[e.Key] = false
	case MouseMoveEvent:
		s.Camera.Look(e.DX, e.DY)
	case ScrollEvent:
		s.Camera.ApplyScroll(scrollUnits(e))
	case ResizeEvent:
		s.Width, s.Height = e.Width, e.Height
	case CloseEvent:
		s.Running = false
	}
	return s
}

// StepCamera applies one frame of camera motion: refresh the derived
// right axis, then translate along the axes selected by the held keys.
// Space lowers the camera and Shift raises it, matching the original
// key feel.
func (s *SimState) StepCamera() {
	s.Camera.BeginFrame()

	var move mgl32.Vec3
	if s.Pressed[KeyA] {
		move[0] -= 1
	}
	if s.Pressed[KeyD] {
		move[0] += 1
	}
	if s.Pressed[KeyW] {
		move[2] += 1
	}
	if s.Pressed[KeyS] {
		move[2] -= 1
	}
	if s.Pressed[KeySpace] {
		move[1] -= 1
	}
	if s.Pressed[KeyShift] {
		move[1] += 1
	}
	s.Camera.Move(move)
}

// Aspect is the projection aspect ratio for the current surface size.
func (s *SimState) Aspect() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}
