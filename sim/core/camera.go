package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the fixed up axis; yaw always rotates about it.
var WorldUp = mgl32.Vec3{0, 1, 0}

const (
	MinFlySpeed = 1e6
	MaxFlySpeed = 1e10

	lookSensitivity = 1.0 / 300.0
)

// CameraState holds the free-fly camera. Direction stays unit length
// (rotations preserve it); Right is derived from Direction but only at
// the start of each frame, never mid-frame. Pitch applied during Look
// therefore rotates about the previous frame's right axis. That stale
// axis is part of the camera feel and must not be recomputed early.
type CameraState struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Right     mgl32.Vec3
	FlySpeed  float32
}

func NewCameraState() *CameraState {
	pos := mgl32.Vec3{2e10, 0, 0}
	dir := pos.Mul(-1).Normalize()
	return &CameraState{
		Position:  pos,
		Direction: dir,
		Right:     dir.Cross(WorldUp).Normalize(),
		FlySpeed:  3e7,
	}
}

// Look applies a pointer-motion delta: yaw about WorldUp by -dx/300,
// then pitch the yawed direction about the stale Right by dy/300.
func (c *CameraState) Look(dx, dy float32) {
	c.Direction = mgl32.QuatRotate(-dx*lookSensitivity, WorldUp).Rotate(c.Direction)
	c.Direction = mgl32.QuatRotate(dy*lookSensitivity, c.Right).Rotate(c.Direction)
}

// BeginFrame renormalizes Direction and refreshes Right. Called once
// per redraw, before movement is applied.
func (c *CameraState) BeginFrame() {
	c.Direction = c.Direction.Normalize()
	c.Right = c.Direction.Cross(WorldUp).Normalize()
}

// Move translates the camera by one frame's worth of held-key motion:
// move[0] strafes along Right, move[1] adjusts the vertical position
// component directly, move[2] goes along Direction. Magnitudes are
// FlySpeed per frame, not scaled by elapsed time.
func (c *CameraState) Move(move mgl32.Vec3) {
	c.Position = c.Position.Add(c.Right.Mul(move[0] * c.FlySpeed))
	c.Position = c.Position.Add(c.Direction.Mul(move[2] * c.FlySpeed))
	c.Position[1] += move[1] * c.FlySpeed
}

// ApplyScroll multiplies FlySpeed by 1 + clamp(units, -4, 4) and clamps
// the result to [MinFlySpeed, MaxFlySpeed].
func (c *CameraState) ApplyScroll(units float32) {
	c.FlySpeed *= 1 + mgl32.Clamp(units, -4, 4)
	c.FlySpeed = mgl32.Clamp(c.FlySpeed, MinFlySpeed, MaxFlySpeed)
}

// ViewProjection builds the frame's view-projection matrix:
// perspective(90deg, 0.01, 1e25) * lookAt(pos, pos+dir, up) *
// translate(pos). The trailing translate after the look-at reproduces
// the long-observed behavior of this camera; do not fold it away.
func (c *CameraState) ViewProjection(aspect float32) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(90), aspect, 0.01, 1e25)
	look := mgl32.LookAtV(c.Position, c.Position.Add(c.Direction), WorldUp)
	return proj.Mul4(look).Mul4(mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]))
}
