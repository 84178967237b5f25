package gpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/galaxy/sim/core"
)

func TestFrameProtocolOrder(t *testing.T) {
	backend := NewMemoryBackend(make([]byte, 96))
	driver := NewStepDriver(backend, 2)

	globals := []byte{1, 2, 3, 4}
	require.NoError(t, driver.Frame(globals))

	assert.Equal(t, []string{"begin", "globals", "copy", "compute", "draw", "end"}, backend.Ops)
	assert.Equal(t, globals, backend.Globals)
}

func TestDoubleBufferFreshness(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}

	backend := NewMemoryBackend(seed)
	// stand-in integration kernel: derive current purely from old
	backend.Compute = func(old, current []byte) {
		for i := range current {
			current[i] = old[i] + 1
		}
	}
	driver := NewStepDriver(backend, uint32(len(seed)/core.ParticleStride))

	previous := append([]byte(nil), backend.Current...)
	for step := 0; step < 5; step++ {
		require.NoError(t, driver.Frame(nil))

		// old holds exactly the state from the immediately preceding
		// step, never partially updated
		require.True(t, bytes.Equal(previous, backend.Old),
			"step %d: old buffer is not the previous step's state", step)
		previous = append(previous[:0], backend.Current...)
	}
}

type failingBackend struct {
	MemoryBackend
	err error
}

func (f *failingBackend) BeginFrame() error { return f.err }

func TestFrameStopsWhenSurfaceUnavailable(t *testing.T) {
	backend := &failingBackend{err: errors.New("surface lost")}
	driver := NewStepDriver(backend, 1)

	err := driver.Frame(nil)
	require.Error(t, err)
	assert.Empty(t, backend.Ops, "no commands may be enqueued after a failed begin")
}

func TestSeedOnlyWrittenOnce(t *testing.T) {
	seed := []byte{9, 9, 9, 9}
	backend := NewMemoryBackend(seed)
	driver := NewStepDriver(backend, 1)

	// frames without a compute stage never touch current
	for i := 0; i < 3; i++ {
		require.NoError(t, driver.Frame(nil))
	}
	assert.Equal(t, seed, backend.Current)
	assert.Equal(t, seed, backend.Old)
}
