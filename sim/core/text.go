package core

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextVertex matches the HUD text pipeline's vertex layout.
type TextVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// TextItem is one HUD string at a pixel position (top-left origin).
type TextItem struct {
	Text     string
	Position [2]float32
	Scale    float32
	Color    [4]float32
}

type glyph struct {
	uvMin [2]float32
	uvMax [2]float32
	size  [2]float32
	off   [2]float32
	adv   float32
}

// TextRenderer rasterizes ASCII glyphs into a single alpha atlas at
// startup and lays HUD strings out as textured quads each frame.
type TextRenderer struct {
	Atlas  *image.Alpha
	glyphs map[rune]glyph
	face   font.Face
}

const textAtlasSize = 512

func NewTextRenderer(fontPath string, fontSize float64) (*TextRenderer, error) {
	raw, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	parsed, err := opentype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}

	tr := &TextRenderer{
		Atlas:  image.NewAlpha(image.Rect(0, 0, textAtlasSize, textAtlasSize)),
		glyphs: make(map[rune]glyph),
		face:   face,
	}

	x, y, rowH := 2, 2, 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := mask.Bounds().Dx(), mask.Bounds().Dy()

		if x+w >= textAtlasSize {
			x = 2
			y += rowH + 4
			rowH = 0
		}
		if y+h >= textAtlasSize {
			break
		}

		draw.Draw(tr.Atlas, image.Rect(x, y, x+w, y+h), mask, mask.Bounds().Min, draw.Src)
		tr.glyphs[r] = glyph{
			uvMin: [2]float32{float32(x) / textAtlasSize, float32(y) / textAtlasSize},
			uvMax: [2]float32{float32(x+w) / textAtlasSize, float32(y+h) / textAtlasSize},
			size:  [2]float32{float32(w), float32(h)},
			off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			adv:   float32(adv) / 64.0,
		}

		x += w + 4
		if h > rowH {
			rowH = h
		}
	}

	return tr, nil
}

// BuildVertices converts HUD items into clip-space triangles for the
// given surface size. Two triangles per glyph.
func (tr *TextRenderer) BuildVertices(items []TextItem, screenW, screenH int) []TextVertex {
	sw, sh := float32(screenW), float32(screenH)
	metrics := tr.face.Metrics()
	ascent := float32(metrics.Ascent.Ceil())
	lineH := float32(metrics.Height.Ceil())

	var vertices []TextVertex
	for _, item := range items {
		penX := item.Position[0]
		penY := item.Position[1] + ascent*item.Scale

		for _, r := range item.Text {
			if r == '\n' {
				penX = item.Position[0]
				penY += lineH * item.Scale
				continue
			}
			g, ok := tr.glyphs[r]
			if !ok {
				continue
			}

			x0 := (penX+g.off[0]*item.Scale)/sw*2 - 1
			y0 := 1 - (penY+g.off[1]*item.Scale)/sh*2
			x1 := (penX+(g.off[0]+g.size[0])*item.Scale)/sw*2 - 1
			y1 := 1 - (penY+(g.off[1]+g.size[1])*item.Scale)/sh*2

			quad := [6]TextVertex{
				{Pos: [2]float32{x0, y0}, UV: [2]float32{g.uvMin[0], g.uvMin[1]}},
				{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}},
				{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}},
				{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}},
				{Pos: [2]float32{x1, y1}, UV: [2]float32{g.uvMax[0], g.uvMax[1]}},
				{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}},
			}
			for i := range quad {
				quad[i].Color = item.Color
			}
			vertices = append(vertices, quad[:]...)

			penX += g.adv * item.Scale
		}
	}
	return vertices
}

// LineHeight is the scaled line advance, for stacking HUD rows.
func (tr *TextRenderer) LineHeight(scale float32) float32 {
	return float32(tr.face.Metrics().Height.Ceil()) * scale
}
