package core

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GlobalsSize is the byte size of the shared parameter block uniform.
// Layout (load-bearing, mirrored by every shader):
//
//	matrix: mat4x4<f32>     -- 0
//	camera_pos: vec3<f32>   -- 64
//	particles: u32          -- 76
//	delta: f32              -- 80
//	pad: 12 bytes           -- 84
//
// 96 bytes total, 16-byte aligned.
const GlobalsSize = 96

// Globals is the per-frame shared parameter block read by both the
// gravity compute stage and the point render stage. ParticleCount is
// fixed for the lifetime of the process.
type Globals struct {
	Matrix        mgl32.Mat4
	CameraPos     mgl32.Vec3
	ParticleCount uint32
	TimeStep      float32
}

// Bytes packs the block into its 96-byte wire form, column-major matrix
// first, little endian throughout.
func (g *Globals) Bytes() []byte {
	buf := make([]byte, GlobalsSize)
	for i, v := range g.Matrix {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	putVec3(buf[64:], g.CameraPos)
	binary.LittleEndian.PutUint32(buf[76:], g.ParticleCount)
	binary.LittleEndian.PutUint32(buf[80:], math.Float32bits(g.TimeStep))
	return buf
}
