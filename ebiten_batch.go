package pixelscene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// lightingShaderSrc applies the multiply/additive lighting pair.
// Ebitengine uses premultiplied alpha; the shader un-premultiplies before
// lighting and re-premultiplies the output.
const lightingShaderSrc = `//kage:unit pixels
package main

var Multiply vec4
var Additive vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	c = clamp(c*Multiply+Additive, 0, 1)
	return vec4(c.rgb*c.a, c.a)
}
`

// EbitenBatch is the Ebitengine DrawBatch. Vertex buffers live on the CPU
// and are expanded into screen-space triangles at submit time.
type EbitenBatch struct {
	target *ebiten.Image
	shader *ebiten.Shader
	white  *ebiten.Image

	src  *ebiten.Image
	srcW float32
	srcH float32

	blend BlendMode

	buffers map[GeometryHandle][]float32
	next    GeometryHandle

	verts []ebiten.Vertex
	inds  []uint32
}

// NewEbitenBatch compiles the lighting shader.
func NewEbitenBatch() (*EbitenBatch, error) {
	sh, err := ebiten.NewShader([]byte(lightingShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("pixelscene: compile lighting shader: %w", err)
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &EbitenBatch{
		shader:  sh,
		white:   white,
		buffers: make(map[GeometryHandle][]float32),
	}, nil
}

// Begin sets the image that subsequent submissions draw into.
func (b *EbitenBatch) Begin(target *ebiten.Image) {
	b.target = target
}

// BindTexture implements DrawBatch.
func (b *EbitenBatch) BindTexture(t Texture) {
	b.src = nil
	switch tex := t.(type) {
	case *ImageTexture:
		if tex != nil && tex.Image != nil {
			b.src = tex.Image
		}
	case whiteTexture:
		b.src = b.white
	}
	if b.src != nil {
		s := b.src.Bounds().Size()
		b.srcW, b.srcH = float32(s.X), float32(s.Y)
	}
}

// SetBlendMode implements DrawBatch.
func (b *EbitenBatch) SetBlendMode(m BlendMode) {
	b.blend = m
}

// UploadOrUpdate implements DrawBatch.
func (b *EbitenBatch) UploadOrUpdate(h GeometryHandle, g *QuadGeometry) GeometryHandle {
	if h == 0 {
		b.next++
		h = b.next
	}
	buf := b.buffers[h]
	if cap(buf) < len(g.verts) {
		buf = make([]float32, len(g.verts))
	}
	buf = buf[:len(g.verts)]
	copy(buf, g.verts)
	b.buffers[h] = buf
	return h
}

// Release implements DrawBatch.
func (b *EbitenBatch) Release(h GeometryHandle) {
	delete(b.buffers, h)
}

// Submit implements DrawBatch.
func (b *EbitenBatch) Submit(call DrawCall) {
	if b.target == nil || b.src == nil {
		return
	}
	buf, ok := b.buffers[call.Geometry]
	if !ok {
		return
	}
	m := multiplyAffine(call.Camera.Matrix, call.Model)

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	for q := call.First; q < call.First+call.Count; q++ {
		off := q * floatsPerQuad
		if off+floatsPerQuad > len(buf) {
			break
		}
		base := uint32(len(b.verts))
		for v := 0; v < 4; v++ {
			i := off + v*4
			x, y := transformPoint(m, float64(buf[i]), float64(buf[i+1]))
			b.verts = append(b.verts, ebiten.Vertex{
				DstX: float32(x), DstY: float32(y),
				SrcX: buf[i+2] * b.srcW, SrcY: buf[i+3] * b.srcH,
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			})
		}
		b.inds = append(b.inds, base, base+1, base+2, base, base+2, base+3)
	}
	if len(b.inds) == 0 {
		return
	}

	dst := b.target
	if !call.Camera.FullScreen {
		vp := call.Camera.Viewport
		r := image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.Width), int(vp.Y+vp.Height))
		dst = b.target.SubImage(r).(*ebiten.Image)
	}

	l := call.Lighting
	var op ebiten.DrawTrianglesShaderOptions
	op.Blend = b.blend.EbitenBlend()
	op.Images[0] = b.src
	op.Uniforms = map[string]any{
		"Multiply": []float32{float32(l.RM), float32(l.GM), float32(l.BM), float32(l.AM)},
		"Additive": []float32{float32(l.RA), float32(l.GA), float32(l.BA), float32(l.AA)},
	}
	dst.DrawTrianglesShader32(b.verts, b.inds, b.shader, &op)
}
