package gpu

// Backend is the narrow surface the frame loop drives. One frame is a
// single ordered command stream: globals upload, whole-buffer copy of
// the current particle state into the old buffer, the gravity compute
// dispatch (reads old, writes current), then the point draw reading
// current. Implementations must preserve that ordering within a frame.
type Backend interface {
	BeginFrame() error
	UploadGlobals(data []byte)
	CopyParticleState()
	DispatchCompute(particles uint32)
	Draw(particles uint32)
	EndFrame()
}

// OverlayBackend is implemented by backends that can draw a HUD text
// overlay on top of the particle field.
type OverlayBackend interface {
	SetOverlay(vertices []byte, vertexCount uint32)
}

// MemoryBackend runs the frame protocol against plain byte slices, with
// no device behind it. Compute, when set, stands in for the gravity
// kernel: it may read Old and write Current, nothing else. Ops records
// the call order for protocol assertions.
type MemoryBackend struct {
	Old     []byte
	Current []byte
	Globals []byte
	Compute func(old []byte, current []byte)
	Ops     []string
}

// NewMemoryBackend seeds the current buffer and leaves old undefined
// (zeroed here; the real device leaves it unwritten) until the first
// frame's copy.
func NewMemoryBackend(seed []byte) *MemoryBackend {
	m := &MemoryBackend{
		Old:     make([]byte, len(seed)),
		Current: make([]byte, len(seed)),
	}
	copy(m.Current, seed)
	return m
}

func (m *MemoryBackend) BeginFrame() error {
	m.Ops = append(m.Ops, "begin")
	return nil
}

func (m *MemoryBackend) UploadGlobals(data []byte) {
	m.Ops = append(m.Ops, "globals")
	m.Globals = append(m.Globals[:0], data...)
}

func (m *MemoryBackend) CopyParticleState() {
	m.Ops = append(m.Ops, "copy")
	copy(m.Old, m.Current)
}

func (m *MemoryBackend) DispatchCompute(particles uint32) {
	m.Ops = append(m.Ops, "compute")
	if m.Compute != nil {
		m.Compute(m.Old, m.Current)
	}
}

func (m *MemoryBackend) Draw(particles uint32) {
	m.Ops = append(m.Ops, "draw")
}

func (m *MemoryBackend) EndFrame() {
	m.Ops = append(m.Ops, "end")
}
