package core

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleStride is the byte stride of one particle in the GPU storage
// buffers. The layout matches the WGSL struct in sim/shaders/gravity.wgsl:
//
//	pos: vec3<f32>   -- 0
//	radius: f32      -- 12
//	vel: vec3<f32>   -- 16
//	pad: f32         -- 28
//	mass: f64        -- 32 (two u32 words on the shader side)
//	pad: 8 bytes     -- 40
//
// 48 bytes total, 16-byte aligned.
const ParticleStride = 48

type Particle struct {
	Position mgl32.Vec3
	Radius   float32
	Velocity mgl32.Vec3
	Mass     float64
}

// NewParticle derives the descriptive radius from mass and density:
// V = m/d and V = 4/3*pi*r^3, so r = cbrt(3m / (4*d*pi)).
// A zero mass yields a zero radius.
func NewParticle(pos, vel mgl32.Vec3, mass, density float64) Particle {
	return Particle{
		Position: pos,
		Radius:   float32(math.Cbrt(3.0 * mass / (4.0 * density * math.Pi))),
		Velocity: vel,
		Mass:     mass,
	}
}

func putVec3(buf []byte, v mgl32.Vec3) {
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(v[2]))
}

// EncodeParticles packs particles into the fixed 48-byte wire stride
// consumed by the compute and render stages. Padding words are zeroed.
func EncodeParticles(particles []Particle) []byte {
	buf := make([]byte, len(particles)*ParticleStride)
	for i, p := range particles {
		b := buf[i*ParticleStride:]
		putVec3(b[0:], p.Position)
		binary.LittleEndian.PutUint32(b[12:], math.Float32bits(p.Radius))
		putVec3(b[16:], p.Velocity)
		binary.LittleEndian.PutUint64(b[32:], math.Float64bits(p.Mass))
	}
	return buf
}
