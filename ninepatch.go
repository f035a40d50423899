package pixelscene

// ninePatchQuads is the fixed quad count of a nine-patch.
const ninePatchQuads = 9

// NinePatchGrid is the 3x3 destination partition of a nine-patch.
// Margins are in source-texture pixels and map 1:1 onto destination units.
type NinePatchGrid struct {
	MarginLeft, MarginTop, MarginRight, MarginBottom float64
	Width, Height                                    float64
	FlipH, FlipV                                     bool
}

// cuts returns the monotone destination cuts for one axis. When the target is
// smaller than both margins combined, the middle (and then the far) band
// collapses to zero extent instead of going negative.
func cuts(lo, hi, size float64) (c0, c1, c2 float64) {
	if size < 0 {
		size = 0
	}
	c0 = clamp(lo, 0, size)
	c1 = clamp(size-hi, c0, size)
	return c0, c1, size
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GenerateNinePatch produces the 9 quads for grid, row-major from the
// top-left cell. outer is the region's full UV rect and inner is the UV rect
// inset by the margins. Flips swap UV edges only; destination cuts stay put.
func GenerateNinePatch(outer, inner UVRect, grid NinePatchGrid) [ninePatchQuads]Quad {
	x1, x2, x3 := cuts(grid.MarginLeft, grid.MarginRight, grid.Width)
	y1, y2, y3 := cuts(grid.MarginTop, grid.MarginBottom, grid.Height)

	outL, outR := outer.Left, outer.Right
	inL, inR := inner.Left, inner.Right
	if grid.FlipH {
		outL, outR = outR, outL
		inL, inR = inR, inL
	}
	outT, outB := outer.Top, outer.Bottom
	inT, inB := inner.Top, inner.Bottom
	if grid.FlipV {
		outT, outB = outB, outT
		inT, inB = inB, inT
	}

	xs := [4]float32{0, float32(x1), float32(x2), float32(x3)}
	ys := [4]float32{0, float32(y1), float32(y2), float32(y3)}
	us := [4]float32{outL, inL, inR, outR}
	vs := [4]float32{outT, inT, inB, outB}

	var quads [ninePatchQuads]Quad
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			quads[row*3+col] = Quad{
				X1: xs[col], X2: xs[col+1],
				Y1: ys[row], Y2: ys[row+1],
				U1: us[col], U2: us[col+1],
				V1: vs[row], V2: vs[row+1],
			}
		}
	}
	return quads
}

// NinePatch is a nine-sliced panel node. Margins are fixed at construction;
// Size and the flip setters regenerate all nine quads.
type NinePatch struct {
	// Node is the scene graph node that draws this patch.
	Node *Node

	region TextureRegion

	marginLeft, marginTop, marginRight, marginBottom int

	flipH, flipV bool

	outer, inner UVRect
	uvReady      bool

	geometry *QuadGeometry
}

// NewNinePatch creates a patch over region with the given margins.
// The patch starts at zero size.
func NewNinePatch(name string, region TextureRegion, left, top, right, bottom int) *NinePatch {
	n := newNode(name, NodeTypeNinePatch)
	np := &NinePatch{
		Node:         n,
		region:       region,
		marginLeft:   left,
		marginTop:    top,
		marginRight:  right,
		marginBottom: bottom,
		geometry:     NewQuadGeometry(ninePatchQuads),
	}
	n.NinePatch = np
	np.updateVertices()
	return np
}

// NewUniformNinePatch creates a patch with the same margin on all sides.
func NewUniformNinePatch(name string, region TextureRegion, margin int) *NinePatch {
	return NewNinePatch(name, region, margin, margin, margin, margin)
}

// resolveUV computes the outer and inner UV rects once the texture is loaded.
func (p *NinePatch) resolveUV() bool {
	if p.uvReady {
		return true
	}
	w, h := p.region.Size()
	outer, err := p.region.SubUV(0, 0, float64(w), float64(h))
	if err != nil {
		return false
	}
	inner, err := p.region.SubUV(
		float64(p.marginLeft), float64(p.marginTop),
		float64(w-p.marginRight), float64(h-p.marginBottom))
	if err != nil {
		return false
	}
	p.outer, p.inner = outer, inner
	p.uvReady = true
	return true
}

// updateVertices regenerates all nine quads. While the texture is not loaded
// the geometry is left as is and regenerated on the next draw.
func (p *NinePatch) updateVertices() {
	if !p.resolveUV() {
		return
	}
	quads := GenerateNinePatch(p.outer, p.inner, p.grid())
	for i := range quads {
		p.geometry.SetQuad(i, quads[i])
	}
}

func (p *NinePatch) grid() NinePatchGrid {
	return NinePatchGrid{
		MarginLeft:   float64(p.marginLeft),
		MarginTop:    float64(p.marginTop),
		MarginRight:  float64(p.marginRight),
		MarginBottom: float64(p.marginBottom),
		Width:        p.Node.Width,
		Height:       p.Node.Height,
		FlipH:        p.flipH,
		FlipV:        p.flipV,
	}
}

// Size sets the destination size and regenerates the geometry.
func (p *NinePatch) Size(width, height float64) {
	p.Node.Width = width
	p.Node.Height = height
	p.Node.transformDirty = true
	p.updateVertices()
}

// FlipHorizontal mirrors the texture content left-to-right.
func (p *NinePatch) FlipHorizontal(value bool) {
	if p.flipH != value {
		p.flipH = value
		p.updateVertices()
	}
}

// FlipVertical mirrors the texture content top-to-bottom.
func (p *NinePatch) FlipVertical(value bool) {
	if p.flipV != value {
		p.flipV = value
		p.updateVertices()
	}
}

// MarginLeft returns the left margin in source pixels.
func (p *NinePatch) MarginLeft() int { return p.marginLeft }

// MarginTop returns the top margin in source pixels.
func (p *NinePatch) MarginTop() int { return p.marginTop }

// MarginRight returns the right margin in source pixels.
func (p *NinePatch) MarginRight() int { return p.marginRight }

// MarginBottom returns the bottom margin in source pixels.
func (p *NinePatch) MarginBottom() int { return p.marginBottom }

// MarginHor returns left + right margins.
func (p *NinePatch) MarginHor() int { return p.marginLeft + p.marginRight }

// MarginVer returns top + bottom margins.
func (p *NinePatch) MarginVer() int { return p.marginTop + p.marginBottom }

// Width returns the current destination width.
func (p *NinePatch) Width() float64 { return p.Node.Width }

// Height returns the current destination height.
func (p *NinePatch) Height() float64 { return p.Node.Height }

// InnerWidth is the stretched center width.
func (p *NinePatch) InnerWidth() float64 {
	return p.Node.Width - float64(p.marginLeft+p.marginRight)
}

// InnerHeight is the stretched center height.
func (p *NinePatch) InnerHeight() float64 {
	return p.Node.Height - float64(p.marginTop+p.marginBottom)
}

// Geometry exposes the quad buffer.
func (p *NinePatch) Geometry() *QuadGeometry {
	return p.geometry
}

// Region returns the source region.
func (p *NinePatch) Region() TextureRegion {
	return p.region
}
