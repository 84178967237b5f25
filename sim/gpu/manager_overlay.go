package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/galaxy/sim/shaders"
)

// 2x pos + 2x uv + 4x color, all float32
const overlayVertexStride = 32

type overlayState struct {
	pipeline  *wgpu.RenderPipeline
	bindGroup *wgpu.BindGroup

	vertexBuf    *wgpu.Buffer
	pendingCount uint32
}

// EnableOverlay builds the HUD text pipeline around a pre-rasterized
// alpha glyph atlas. Called once at startup when a font was provided;
// without it SetOverlay is a no-op.
func (b *WgpuBackend) EnableOverlay(atlas *image.Alpha) {
	w := uint32(atlas.Bounds().Dx())
	h := uint32(atlas.Bounds().Dy())

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Text Atlas",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		panic(err)
	}
	b.queue.WriteTexture(tex.AsImageCopy(), atlas.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  w,
		RowsPerImage: h,
	}, &wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1})

	atlasView, err := tex.CreateView(nil)
	if err != nil {
		panic(err)
	}

	sampler, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(err)
	}

	textMod, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Text Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.TextWGSL},
	})
	if err != nil {
		panic(err)
	}
	defer textMod.Release()

	pipeline, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Text Pipeline",
		Vertex: wgpu.VertexState{
			Module:     textMod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: overlayVertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     textMod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: b.config.Format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOne,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: atlasView},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		panic(err)
	}

	b.overlay = &overlayState{
		pipeline:  pipeline,
		bindGroup: bindGroup,
	}
}

// SetOverlay stages HUD vertices for this frame's render pass. The
// vertex buffer grows on demand and is reused across frames.
func (b *WgpuBackend) SetOverlay(vertices []byte, vertexCount uint32) {
	o := b.overlay
	if o == nil {
		return
	}
	o.pendingCount = vertexCount
	if vertexCount == 0 {
		return
	}

	size := uint64(len(vertices))
	if o.vertexBuf == nil || o.vertexBuf.GetSize() < size {
		if o.vertexBuf != nil {
			o.vertexBuf.Release()
		}
		var err error
		o.vertexBuf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Text VB",
			Size:  size,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			b.log.Errorf("text vertex buffer: %v", err)
			o.pendingCount = 0
			return
		}
	}
	b.queue.WriteBuffer(o.vertexBuf, 0, vertices)
}

func (b *WgpuBackend) drawOverlay(pass *wgpu.RenderPassEncoder) {
	o := b.overlay
	if o == nil || o.pendingCount == 0 || o.vertexBuf == nil {
		return
	}
	pass.SetPipeline(o.pipeline)
	pass.SetBindGroup(0, o.bindGroup, nil)
	pass.SetVertexBuffer(0, o.vertexBuf, 0, o.vertexBuf.GetSize())
	pass.Draw(o.pendingCount, 1, 0, 0)
}
