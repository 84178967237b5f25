package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Core WebGPU rejects writable storage buffers in the vertex stage, so
// every buffer a vertex entry point touches must be declared read-only.
func TestVertexShadersBindStorageReadOnly(t *testing.T) {
	for name, src := range map[string]string{
		"particles": ParticlesWGSL,
		"text":      TextWGSL,
	} {
		if !strings.Contains(src, "@vertex") {
			t.Fatalf("%s: no vertex entry point", name)
		}
		require.NotContains(t, src, "read_write", "%s declares writable storage", name)
	}
}

func TestGravityShaderBuffersMatchDoubleBuffering(t *testing.T) {
	require.Contains(t, GravityWGSL, "var<storage, read> old_state")
	require.Contains(t, GravityWGSL, "var<storage, read_write> current")
}

// The render shader reads particle positions straight out of the
// integration output, never the stale buffer.
func TestParticlesShaderReadsCurrentState(t *testing.T) {
	require.Contains(t, ParticlesWGSL, "var<storage, read> current")
	require.NotContains(t, ParticlesWGSL, "old_state")
}
