package shaders

import (
	_ "embed"
)

//go:embed gravity.wgsl
var GravityWGSL string

//go:embed particles.wgsl
var ParticlesWGSL string

//go:embed text.wgsl
var TextWGSL string
