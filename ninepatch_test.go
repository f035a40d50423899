package pixelscene

import "testing"

// testTexture is a fixed-size texture.
type testTexture struct{ w, h int }

func (t testTexture) Width() int  { return t.w }
func (t testTexture) Height() int { return t.h }

// lazyTexture reports zero size until loaded is set.
type lazyTexture struct {
	w, h   int
	loaded bool
}

func (t *lazyTexture) Width() int {
	if !t.loaded {
		return 0
	}
	return t.w
}

func (t *lazyTexture) Height() int {
	if !t.loaded {
		return 0
	}
	return t.h
}

func geometryQuads(g *QuadGeometry) []Quad {
	out := make([]Quad, g.Len())
	for i := range out {
		out[i] = g.Quad(i)
	}
	return out
}

func sameVertices(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGenerateNinePatchLayout(t *testing.T) {
	outer := UVRect{Left: 0, Top: 0, Right: 1, Bottom: 1}
	inner := UVRect{Left: 0.25, Top: 0.25, Right: 0.75, Bottom: 0.75}
	q := GenerateNinePatch(outer, inner, NinePatchGrid{
		MarginLeft: 4, MarginTop: 4, MarginRight: 4, MarginBottom: 4,
		Width: 40, Height: 20,
	})

	// Corners keep margin size; edges and center stretch.
	if q[0] != (Quad{X1: 0, X2: 4, Y1: 0, Y2: 4, U1: 0, U2: 0.25, V1: 0, V2: 0.25}) {
		t.Errorf("top-left = %+v", q[0])
	}
	if q[4] != (Quad{X1: 4, X2: 36, Y1: 4, Y2: 16, U1: 0.25, U2: 0.75, V1: 0.25, V2: 0.75}) {
		t.Errorf("center = %+v", q[4])
	}
	if q[8] != (Quad{X1: 36, X2: 40, Y1: 16, Y2: 20, U1: 0.75, U2: 1, V1: 0.75, V2: 1}) {
		t.Errorf("bottom-right = %+v", q[8])
	}
}

func TestNinePatchDeterministic(t *testing.T) {
	region := FullRegion(testTexture{16, 16})
	for _, m := range [][4]int{{0, 0, 0, 0}, {3, 4, 5, 6}, {8, 1, 2, 7}} {
		for _, size := range [][2]float64{{20, 20}, {64, 33}, {19, 17}} {
			if float64(m[0]+m[2]) > size[0] || float64(m[1]+m[3]) > size[1] {
				continue
			}
			a := NewNinePatch("a", region, m[0], m[1], m[2], m[3])
			b := NewNinePatch("b", region, m[0], m[1], m[2], m[3])
			a.Size(size[0], size[1])
			b.Size(size[0], size[1])
			if !sameVertices(a.Geometry().Vertices(), b.Geometry().Vertices()) {
				t.Errorf("margins %v size %v: geometry differs between runs", m, size)
			}
			before := append([]float32(nil), a.Geometry().Vertices()...)
			a.Size(size[0], size[1])
			if !sameVertices(before, a.Geometry().Vertices()) {
				t.Errorf("margins %v size %v: regenerating changed geometry", m, size)
			}
		}
	}
}

func TestNinePatchDegenerateSizeNonNegative(t *testing.T) {
	region := FullRegion(testTexture{32, 32})
	p := NewNinePatch("p", region, 10, 6, 12, 8)
	for _, size := range [][2]float64{{0, 0}, {5, 5}, {21, 13}, {15, 30}, {-4, 2}} {
		p.Size(size[0], size[1])
		for i, q := range geometryQuads(p.Geometry()) {
			if q.X2 < q.X1 || q.Y2 < q.Y1 {
				t.Errorf("size %v quad %d has negative extent: %+v", size, i, q)
			}
			if q.X1 < 0 || q.Y1 < 0 {
				t.Errorf("size %v quad %d starts before origin: %+v", size, i, q)
			}
		}
	}
}

func TestNinePatchDoubleFlipRestoresGeometry(t *testing.T) {
	p := NewNinePatch("p", FullRegion(testTexture{16, 16}), 3, 4, 5, 2)
	p.Size(40, 30)
	orig := append([]float32(nil), p.Geometry().Vertices()...)

	p.FlipHorizontal(true)
	if sameVertices(orig, p.Geometry().Vertices()) {
		t.Fatal("horizontal flip should change UVs")
	}
	p.FlipHorizontal(false)
	if !sameVertices(orig, p.Geometry().Vertices()) {
		t.Error("flipping horizontal twice should restore the geometry")
	}

	p.FlipVertical(true)
	p.FlipVertical(false)
	if !sameVertices(orig, p.Geometry().Vertices()) {
		t.Error("flipping vertical twice should restore the geometry")
	}
}

func TestNinePatchFlipSwapsUVOnly(t *testing.T) {
	p := NewNinePatch("p", FullRegion(testTexture{16, 16}), 4, 4, 4, 4)
	p.Size(32, 32)
	before := geometryQuads(p.Geometry())
	p.FlipHorizontal(true)
	after := geometryQuads(p.Geometry())
	for i := range before {
		if before[i].X1 != after[i].X1 || before[i].X2 != after[i].X2 {
			t.Errorf("quad %d moved on flip", i)
		}
	}
	// Left column now samples the right edge of the texture.
	if after[0].U1 != 1 || after[0].U2 != 0.75 {
		t.Errorf("flipped top-left UV = %v..%v, want 1..0.75", after[0].U1, after[0].U2)
	}
}

func TestNinePatchWithRegionOffset(t *testing.T) {
	region := TextureRegion{Texture: testTexture{64, 64}, X: 32, Y: 16, Width: 16, Height: 16}
	p := NewUniformNinePatch("p", region, 4)
	p.Size(20, 20)
	q := p.Geometry().Quad(0)
	if q.U1 != 0.5 || q.U2 != 36.0/64 || q.V1 != 0.25 || q.V2 != 20.0/64 {
		t.Errorf("top-left UV = %+v", q)
	}
	if p.InnerWidth() != 12 || p.InnerHeight() != 12 {
		t.Errorf("inner = %vx%v, want 12x12", p.InnerWidth(), p.InnerHeight())
	}
	if p.MarginHor() != 8 || p.MarginVer() != 8 {
		t.Errorf("margins = %d/%d, want 8/8", p.MarginHor(), p.MarginVer())
	}
}

func TestNinePatchWaitsForTexture(t *testing.T) {
	tex := &lazyTexture{w: 16, h: 16}
	p := NewUniformNinePatch("p", FullRegion(tex), 4)
	p.Size(32, 32)
	if p.uvReady {
		t.Fatal("UVs should not resolve before the texture loads")
	}
	if q := p.Geometry().Quad(4); q != (Quad{}) {
		t.Errorf("geometry written before load: %+v", q)
	}

	tex.loaded = true
	p.updateVertices()
	if q := p.Geometry().Quad(4); q.X1 != 4 || q.X2 != 28 {
		t.Errorf("center after load = %+v", q)
	}
}
