package pixelscene

// floatsPerQuad is 4 vertices of (x, y, u, v).
const floatsPerQuad = 16

// Quad is one destination rectangle with its texture coordinates. U1/V1 map
// to the X1/Y1 corner, so swapping U1 and U2 mirrors the content.
type Quad struct {
	X1, X2, Y1, Y2 float32
	U1, U2, V1, V2 float32
}

// GeometryHandle identifies a vertex buffer owned by a DrawBatch.
// The zero handle means "not uploaded".
type GeometryHandle uint32

// QuadGeometry is a fixed-size buffer of position+UV quads. Mutations mark it
// dirty; the upload to the backend is deferred until the next draw so several
// mutations in one frame coalesce into a single upload.
//
// Vertex order per quad is top-left, top-right, bottom-right, bottom-left.
type QuadGeometry struct {
	verts  []float32
	dirty  bool
	handle GeometryHandle
	owner  DrawBatch
}

// NewQuadGeometry allocates room for n quads.
func NewQuadGeometry(n int) *QuadGeometry {
	return &QuadGeometry{
		verts: make([]float32, n*floatsPerQuad),
		dirty: true,
	}
}

// Len returns the quad capacity.
func (g *QuadGeometry) Len() int {
	return len(g.verts) / floatsPerQuad
}

// SetQuad writes quad i and marks the buffer dirty.
func (g *QuadGeometry) SetQuad(i int, q Quad) {
	v := g.verts[i*floatsPerQuad : (i+1)*floatsPerQuad]
	v[0], v[1], v[2], v[3] = q.X1, q.Y1, q.U1, q.V1
	v[4], v[5], v[6], v[7] = q.X2, q.Y1, q.U2, q.V1
	v[8], v[9], v[10], v[11] = q.X2, q.Y2, q.U2, q.V2
	v[12], v[13], v[14], v[15] = q.X1, q.Y2, q.U1, q.V2
	g.dirty = true
}

// Quad reads back quad i.
func (g *QuadGeometry) Quad(i int) Quad {
	v := g.verts[i*floatsPerQuad : (i+1)*floatsPerQuad]
	return Quad{
		X1: v[0], Y1: v[1], U1: v[2], V1: v[3],
		X2: v[8], Y2: v[9], U2: v[10], V2: v[11],
	}
}

// Vertices returns the raw interleaved buffer. The returned slice MUST NOT be mutated.
func (g *QuadGeometry) Vertices() []float32 {
	return g.verts
}

// Dirty reports whether the buffer changed since the last upload.
func (g *QuadGeometry) Dirty() bool {
	return g.dirty
}

// Handle returns the backend handle, or 0 before the first upload.
func (g *QuadGeometry) Handle() GeometryHandle {
	return g.handle
}

// sync uploads the buffer through b if it is dirty or has never been uploaded.
func (g *QuadGeometry) sync(b DrawBatch) GeometryHandle {
	if g.dirty || g.handle == 0 || g.owner != b {
		if g.owner != nil && g.owner != b && g.handle != 0 {
			g.owner.Release(g.handle)
			g.handle = 0
		}
		g.handle = b.UploadOrUpdate(g.handle, g)
		g.owner = b
		g.dirty = false
	}
	return g.handle
}

// Release frees the backend buffer. Safe to call more than once.
func (g *QuadGeometry) Release() {
	if g.owner != nil && g.handle != 0 {
		g.owner.Release(g.handle)
	}
	g.handle = 0
	g.owner = nil
	g.dirty = true
}
