package app

import (
	"fmt"
	"unsafe"

	"github.com/gekko3d/galaxy/sim/core"
	"github.com/gekko3d/galaxy/sim/gpu"
)

var hudColor = [4]float32{1, 1, 1, 0.85}

// Hud overlays the selected time step and fly speed, plus FPS in debug
// mode. Purely cosmetic; the simulation never reads it.
type Hud struct {
	text    *core.TextRenderer
	overlay gpu.OverlayBackend
}

func NewHud(text *core.TextRenderer, overlay gpu.OverlayBackend) *Hud {
	return &Hud{text: text, overlay: overlay}
}

// Stage lays this frame's readout out and hands the vertices to the
// backend for the coming render pass.
func (h *Hud) Stage(state *core.SimState, fps float64, debug bool) {
	lines := fmt.Sprintf("dt %.0f s\nfly %.2e m/s", state.TimeStep, state.Camera.FlySpeed)
	if debug {
		lines += fmt.Sprintf("\n%.1f fps", fps)
	}

	items := []core.TextItem{{
		Text:     lines,
		Position: [2]float32{10, 10},
		Scale:    1,
		Color:    hudColor,
	}}

	vertices := h.text.BuildVertices(items, state.Width, state.Height)
	if len(vertices) == 0 {
		h.overlay.SetOverlay(nil, 0)
		return
	}

	size := len(vertices) * int(unsafe.Sizeof(core.TextVertex{}))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), size)
	h.overlay.SetOverlay(raw, uint32(len(vertices)))
}
