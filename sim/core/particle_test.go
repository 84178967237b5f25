package core

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestParticleRadius(t *testing.T) {
	core := NewParticle(mgl32.Vec3{}, mgl32.Vec3{}, 1e30, 1.0)
	want := float32(math.Cbrt(3e30 / (4 * math.Pi)))
	assert.InEpsilon(t, want, core.Radius, 1e-6)

	dust := NewParticle(mgl32.Vec3{}, mgl32.Vec3{}, 0, 1.408)
	assert.Zero(t, dust.Radius)
}

func TestParticleWireLayout(t *testing.T) {
	p := NewParticle(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6}, 1e30, 1.0)
	buf := EncodeParticles([]Particle{p, p})
	require.Len(t, buf, 2*ParticleStride)

	assert.Equal(t, float32(1), f32At(buf, 0))
	assert.Equal(t, float32(2), f32At(buf, 4))
	assert.Equal(t, float32(3), f32At(buf, 8))
	assert.Equal(t, p.Radius, f32At(buf, 12))
	assert.Equal(t, float32(4), f32At(buf, 16))
	assert.Equal(t, float32(5), f32At(buf, 20))
	assert.Equal(t, float32(6), f32At(buf, 24))

	// pad word between velocity and mass
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[28:]))

	mass := math.Float64frombits(binary.LittleEndian.Uint64(buf[32:]))
	assert.Equal(t, 1e30, mass)

	// trailing pad
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(buf[40:]))

	// second particle starts exactly one stride in
	assert.Equal(t, float32(1), f32At(buf, ParticleStride))
}

func TestGlobalsWireLayout(t *testing.T) {
	g := Globals{
		Matrix:        mgl32.Translate3D(7, 8, 9),
		CameraPos:     mgl32.Vec3{10, 11, 12},
		ParticleCount: 20002,
		TimeStep:      160,
	}
	buf := g.Bytes()
	require.Len(t, buf, GlobalsSize)

	// column-major: the translation column is elements 12..14
	assert.Equal(t, float32(1), f32At(buf, 0))
	assert.Equal(t, float32(7), f32At(buf, 48))
	assert.Equal(t, float32(8), f32At(buf, 52))
	assert.Equal(t, float32(9), f32At(buf, 56))

	assert.Equal(t, float32(10), f32At(buf, 64))
	assert.Equal(t, float32(11), f32At(buf, 68))
	assert.Equal(t, float32(12), f32At(buf, 72))
	assert.Equal(t, uint32(20002), binary.LittleEndian.Uint32(buf[76:]))
	assert.Equal(t, float32(160), f32At(buf, 80))

	for off := 84; off < GlobalsSize; off += 4 {
		assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[off:]), "padding at %d", off)
	}
}
