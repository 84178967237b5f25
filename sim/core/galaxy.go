package core

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const (
	// G is the gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67408e-11

	CoreMass    = 1e30
	CoreDensity = 1.0
	DiskDensity = 1.408
	DiskSize    = 10000

	// ParticleCount is fixed for the process lifetime: two cores plus
	// one disk per core. No particles are created or destroyed after
	// the scenario is seeded.
	ParticleCount = 2 + 2*DiskSize

	diskInnerRadius = 4e8
	diskRadiusSpan  = 3e9
)

// Scenario is the full starting particle set: two counter-drifting
// massive cores set up to collide, each carrying a disk of zero-mass
// test particles in opposite rotational senses.
type Scenario struct {
	ID        string
	Particles []Particle
}

// NewScenario seeds a fresh galaxy pair. The random source is
// deliberately unseeded per run: every launch produces a different
// disk layout.
func NewScenario() *Scenario {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	center := NewParticle(mgl32.Vec3{0, 1.5e9, 2e9}, mgl32.Vec3{0, 0, -5e4}, CoreMass, CoreDensity)
	center2 := NewParticle(mgl32.Vec3{0, -1.5e9, -2e9}, mgl32.Vec3{0, 0, 5e4}, CoreMass, CoreDensity)

	particles := make([]Particle, 0, ParticleCount)
	particles = append(particles, center, center2)
	particles = GenerateDisk(rng, particles, center, DiskSize, true)
	particles = GenerateDisk(rng, particles, center2, DiskSize, false)

	return &Scenario{
		ID:        uuid.NewString(),
		Particles: particles,
	}
}

// DiskRadius maps a uniform sample u in [0,1) onto an orbital radius.
// Squaring u biases samples toward the inner edge, giving a
// center-dense disk.
func DiskRadius(u float32) float32 {
	return diskInnerRadius + u*u*diskRadiusSpan
}

// OrbitalSpeed is the circular-orbit speed around a point mass:
// G*M*m/r^2 = m*v^2/r, so v = sqrt(G*M/r).
func OrbitalSpeed(centerMass, radius float64) float64 {
	return math.Sqrt(G * centerMass / radius)
}

// GenerateDisk appends count test particles orbiting center in the XY
// plane, inheriting the center's own drift. The clockwise flag flips
// the tangential direction so paired disks rotate in opposite senses.
// Disk particles are massless; they trace the field without
// contributing gravity of their own.
func GenerateDisk(rng *rand.Rand, particles []Particle, center Particle, count int, clockwise bool) []Particle {
	for i := 0; i < count; i++ {
		radius := DiskRadius(rng.Float32())
		angle := rng.Float32() * 2 * math.Pi

		sin, cos := math.Sincos(float64(angle))

		pos := center.Position
		pos[0] += radius * float32(cos)
		pos[1] += radius * float32(sin)

		speed := float32(OrbitalSpeed(center.Mass, float64(radius)))
		spin := float32(1)
		if clockwise {
			spin = -1
		}

		vel := center.Velocity
		vel[0] += speed * float32(sin) * spin
		vel[1] -= speed * float32(cos) * spin

		particles = append(particles, NewParticle(pos, vel, 0, DiskDensity))
	}
	return particles
}
