package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitKeysSelectTimeStep(t *testing.T) {
	s := NewSimState(800, 600)
	require.Zero(t, s.TimeStep)

	digits := []Key{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9}
	for i, k := range digits {
		s = Reduce(s, KeyDownEvent{Key: k})
		assert.Equal(t, TimeSteps[i], s.TimeStep)
		s = Reduce(s, KeyUpEvent{Key: k})
	}

	// any sequence of presses keeps the step inside the fixed set
	rng := rand.New(rand.NewSource(5))
	valid := map[float32]bool{}
	for _, v := range TimeSteps {
		valid[v] = true
	}
	for i := 0; i < 1000; i++ {
		s = Reduce(s, KeyDownEvent{Key: digits[rng.Intn(len(digits))]})
		require.True(t, valid[s.TimeStep], "time step %v not in the fixed set", s.TimeStep)
	}
}

func TestEscapeAndCloseStopTheLoop(t *testing.T) {
	s := NewSimState(800, 600)
	require.True(t, s.Running)

	s = Reduce(s, KeyDownEvent{Key: KeyEscape})
	assert.False(t, s.Running)

	s = NewSimState(800, 600)
	s = Reduce(s, CloseEvent{})
	assert.False(t, s.Running)
}

func TestHeldKeysDriveCamera(t *testing.T) {
	s := NewSimState(800, 600)
	start := s.Camera.Position

	s = Reduce(s, KeyDownEvent{Key: KeyW})
	require.True(t, s.Pressed[KeyW])

	// held keys do nothing until the frame applies them
	assert.Equal(t, start, s.Camera.Position)

	s.StepCamera()
	moved := s.Camera.Position.Sub(start)
	assert.InEpsilon(t, float64(s.Camera.FlySpeed), float64(moved.Len()), 1e-5)

	s = Reduce(s, KeyUpEvent{Key: KeyW})
	require.False(t, s.Pressed[KeyW])
	before := s.Camera.Position
	s.StepCamera()
	assert.Equal(t, before, s.Camera.Position)
}

func TestVerticalKeys(t *testing.T) {
	s := NewSimState(800, 600)
	y := s.Camera.Position[1]

	s = Reduce(s, KeyDownEvent{Key: KeySpace})
	s.StepCamera()
	assert.Equal(t, y-s.Camera.FlySpeed, s.Camera.Position[1])

	s = Reduce(s, KeyUpEvent{Key: KeySpace})
	s = Reduce(s, KeyDownEvent{Key: KeyShift})
	y = s.Camera.Position[1]
	s.StepCamera()
	assert.Equal(t, y+s.Camera.FlySpeed, s.Camera.Position[1])
}

func TestResizeOnlyChangesAspect(t *testing.T) {
	s := NewSimState(800, 600)
	cam := s.Camera
	ts := s.TimeStep

	s = Reduce(s, ResizeEvent{Width: 1920, Height: 1080})
	assert.Equal(t, 1920, s.Width)
	assert.Equal(t, 1080, s.Height)
	assert.InEpsilon(t, 16.0/9.0, float64(s.Aspect()), 1e-6)
	assert.Equal(t, cam, s.Camera)
	assert.Equal(t, ts, s.TimeStep)
}

func TestMouseMoveTurnsCamera(t *testing.T) {
	s := NewSimState(800, 600)
	dir := s.Camera.Direction

	s = Reduce(s, MouseMoveEvent{DX: 30, DY: 0})
	assert.NotEqual(t, dir, s.Camera.Direction)

	// direction stays unit length through rotations
	assert.InEpsilon(t, 1.0, float64(s.Camera.Direction.Len()), 1e-5)
}
