package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCore() Particle {
	return NewParticle(mgl32.Vec3{0, 1.5e9, 2e9}, mgl32.Vec3{0, 0, -5e4}, CoreMass, CoreDensity)
}

// planar distance from the disk center, in the disk (XY) plane
func orbitRadius(p, center Particle) float64 {
	dx := float64(p.Position[0] - center.Position[0])
	dy := float64(p.Position[1] - center.Position[1])
	return math.Hypot(dx, dy)
}

func TestNewScenario(t *testing.T) {
	s := NewScenario()
	require.Len(t, s.Particles, ParticleCount)
	require.NotEmpty(t, s.ID)

	first, second := s.Particles[0], s.Particles[1]
	assert.Equal(t, float64(CoreMass), first.Mass)
	assert.Equal(t, float64(CoreMass), second.Mass)
	assert.Equal(t, mgl32.Vec3{0, 1.5e9, 2e9}, first.Position)
	assert.Equal(t, mgl32.Vec3{0, -1.5e9, -2e9}, second.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, -5e4}, first.Velocity)
	assert.Equal(t, mgl32.Vec3{0, 0, 5e4}, second.Velocity)

	for i, p := range s.Particles[2:] {
		if p.Mass != 0 {
			t.Fatalf("disk particle %d has mass %v", i, p.Mass)
		}
		if p.Radius != 0 {
			t.Fatalf("disk particle %d has radius %v", i, p.Radius)
		}
	}
}

func TestDiskRadiusBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	center := testCore()
	particles := GenerateDisk(rng, nil, center, DiskSize, true)
	require.Len(t, particles, DiskSize)

	for i, p := range particles {
		r := orbitRadius(p, center)
		if r < 4e8*(1-1e-4) || r > (4e8+3e9)*(1+1e-4) {
			t.Fatalf("particle %d at radius %g outside [4e8, 3.4e9]", i, r)
		}
		// disks are flat: no displacement out of the plane
		assert.Equal(t, center.Position[2], p.Position[2])
	}
}

func TestOrbitalSpeedMatchesRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	center := testCore()
	particles := GenerateDisk(rng, nil, center, 1000, false)

	for i, p := range particles {
		rel := p.Velocity.Sub(center.Velocity)
		r := orbitRadius(p, center)
		want := OrbitalSpeed(CoreMass, r)
		if got := float64(rel.Len()); math.Abs(got-want)/want > 1e-3 {
			t.Fatalf("particle %d: speed %g, want %g at r=%g", i, got, want, r)
		}
	}
}

func TestDisksRotateInOppositeSenses(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	center := testCore()

	// z component of the angular momentum about the center
	spinSign := func(p Particle) float64 {
		relPos := p.Position.Sub(center.Position)
		relVel := p.Velocity.Sub(center.Velocity)
		return float64(relPos[0]*relVel[1] - relPos[1]*relVel[0])
	}

	for _, p := range GenerateDisk(rng, nil, center, 200, true) {
		require.Positive(t, spinSign(p))
	}
	for _, p := range GenerateDisk(rng, nil, center, 200, false) {
		require.Negative(t, spinSign(p))
	}
}

func TestInnerEdgeSample(t *testing.T) {
	// u=0 pins the inner edge exactly
	assert.Equal(t, float32(4e8), DiskRadius(0))

	want := math.Sqrt(G * 1e30 / 4e8)
	assert.InEpsilon(t, want, OrbitalSpeed(1e30, 4e8), 1e-12)
}
