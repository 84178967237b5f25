package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/galaxy/sim/core"
	"github.com/gekko3d/galaxy/sim/shaders"
)

const computeWorkgroupSize = 64

// WgpuBackend owns every GPU resource of the simulation: the surface,
// the gravity compute pipeline, the point render pipeline, the shared
// parameter uniform and the two fixed-size particle buffers. The
// compute bind group sees all three buffers (0 = uniform, 1 = read-only
// old state, 2 = writable current state); the render bind group sees
// the uniform and a read-only view of the current buffer, because the
// vertex stage may not bind writable storage.
type WgpuBackend struct {
	log core.Logger

	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	config  *wgpu.SurfaceConfiguration

	computePipeline  *wgpu.ComputePipeline
	renderPipeline   *wgpu.RenderPipeline
	computeBindGroup *wgpu.BindGroup
	renderBindGroup  *wgpu.BindGroup

	globalsBuf    *wgpu.Buffer
	oldBuf        *wgpu.Buffer
	currentBuf    *wgpu.Buffer
	particleBytes uint64

	overlay *overlayState

	// per-frame, valid between BeginFrame and EndFrame
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
	encoder      *wgpu.CommandEncoder
}

// NewWgpuBackend acquires the device and builds every pipeline and
// buffer up front. Any failure here panics: there is nothing to retry
// and no state worth saving before the first frame.
func NewWgpuBackend(window *glfw.Window, seed []byte, log core.Logger) *WgpuBackend {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Galaxy Device",
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	config := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo, // vsync paces the loop
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &config)

	b := &WgpuBackend{
		log:           log,
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         queue,
		config:        &config,
		particleBytes: uint64(len(seed)),
	}
	b.createBuffers(seed)
	b.createPipelines()

	log.Debugf("wgpu backend ready, surface %dx%d format %v", width, height, config.Format)
	return b
}

func (b *WgpuBackend) createBuffers(seed []byte) {
	var err error

	b.globalsBuf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Globals",
		Size:  core.GlobalsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}

	// The old buffer starts with undefined content; nothing reads it
	// before the first frame's copy lands.
	b.oldBuf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Old Particles",
		Size:  b.particleBytes,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}

	// The current buffer is seeded once here. The host never writes it
	// again; from now on only the compute stage does.
	b.currentBuf, err = b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Current Particles",
		Contents: seed,
		Usage:    wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		panic(err)
	}
}

func (b *WgpuBackend) createPipelines() {
	gravity, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Gravity CS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.GravityWGSL},
	})
	if err != nil {
		panic(err)
	}
	defer gravity.Release()

	points, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Particles VS/FS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.ParticlesWGSL},
	})
	if err != nil {
		panic(err)
	}
	defer points.Release()

	computeBGL, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Gravity BGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageCompute,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageCompute,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageCompute,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	defer computeBGL.Release()

	// The render pipeline gets its own layout: writable storage is not
	// valid in the vertex stage, so the current buffer binds read-only
	// here.
	renderBGL, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Particles BGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	defer renderBGL.Release()

	computeLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Gravity Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{computeBGL},
	})
	if err != nil {
		panic(err)
	}
	defer computeLayout.Release()

	renderLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Particles Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{renderBGL},
	})
	if err != nil {
		panic(err)
	}
	defer renderLayout.Release()

	b.computePipeline, err = b.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  "Gravity Pipeline",
		Layout: computeLayout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     gravity,
			EntryPoint: "main",
		},
	})
	if err != nil {
		panic(err)
	}

	b.renderPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Particles Pipeline",
		Layout: renderLayout,
		Vertex: wgpu.VertexState{
			Module:     points,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     points,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    b.config.Format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyPointList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}

	b.computeBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Gravity Bind Group",
		Layout: computeBGL,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.globalsBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.oldBuf, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: b.currentBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}

	b.renderBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Particles Bind Group",
		Layout: renderBGL,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.globalsBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.currentBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}
}

// Resize reconfigures the swapchain. Simulation state is untouched;
// only the projection aspect changes, and that comes in with the next
// frame's globals.
func (b *WgpuBackend) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.config.Width = uint32(width)
	b.config.Height = uint32(height)
	b.surface.Configure(b.adapter, b.device, b.config)
}

func (b *WgpuBackend) BeginFrame() error {
	texture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		texture.Release()
		return err
	}

	b.frameTexture = texture
	b.frameView = view
	b.encoder = encoder
	return nil
}

func (b *WgpuBackend) UploadGlobals(data []byte) {
	b.queue.WriteBuffer(b.globalsBuf, 0, data)
}

func (b *WgpuBackend) CopyParticleState() {
	b.encoder.CopyBufferToBuffer(b.currentBuf, 0, b.oldBuf, 0, b.particleBytes)
}

func (b *WgpuBackend) DispatchCompute(particles uint32) {
	pass := b.encoder.BeginComputePass(nil)
	pass.SetPipeline(b.computePipeline)
	pass.SetBindGroup(0, b.computeBindGroup, nil)
	pass.DispatchWorkgroups((particles+computeWorkgroupSize-1)/computeWorkgroupSize, 1, 1)
	if err := pass.End(); err != nil {
		b.log.Errorf("compute pass end: %v", err)
	}
}

func (b *WgpuBackend) Draw(particles uint32) {
	pass := b.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       b.frameView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.02, G: 0.02, B: 0.02, A: 1.0},
		}},
	})
	pass.SetPipeline(b.renderPipeline)
	pass.SetBindGroup(0, b.renderBindGroup, nil)
	pass.Draw(particles, 1, 0, 0)

	b.drawOverlay(pass)

	if err := pass.End(); err != nil {
		b.log.Errorf("render pass end: %v", err)
	}
}

func (b *WgpuBackend) EndFrame() {
	cmd, err := b.encoder.Finish(nil)
	if err != nil {
		b.log.Errorf("encoder finish: %v", err)
	} else {
		b.queue.Submit(cmd)
		b.surface.Present()
	}

	b.frameView.Release()
	b.frameTexture.Release()
	b.frameView = nil
	b.frameTexture = nil
	b.encoder = nil
}
