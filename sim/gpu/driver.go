package gpu

// StepDriver runs exactly one simulation step and one render step per
// displayed frame. The particle count is fixed at construction; there
// is no resizing or insertion at runtime.
type StepDriver struct {
	backend Backend
	count   uint32
}

func NewStepDriver(backend Backend, particleCount uint32) *StepDriver {
	return &StepDriver{backend: backend, count: particleCount}
}

// Frame enqueues one full frame. The copy must land before the compute
// dispatch so that, at any render time, the old buffer holds exactly
// the previous step's state with one full frame of lag.
func (d *StepDriver) Frame(globals []byte) error {
	if err := d.backend.BeginFrame(); err != nil {
		return err
	}
	d.backend.UploadGlobals(globals)
	d.backend.CopyParticleState()
	d.backend.DispatchCompute(d.count)
	d.backend.Draw(d.count)
	d.backend.EndFrame()
	return nil
}
