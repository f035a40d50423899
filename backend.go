package pixelscene

// CameraView is the per-camera state a backend needs to place geometry: the
// camera-to-screen matrix and the device-pixel scissor rect.
type CameraView struct {
	Matrix     [6]float64
	Viewport   Rect
	FullScreen bool
}

// viewOf snapshots c for a draw call.
func viewOf(c *Camera) CameraView {
	return CameraView{Matrix: c.Matrix(), Viewport: c.Viewport(), FullScreen: c.FullScreen}
}

// DrawCall is one geometry submission. Model maps the geometry's local space
// to camera space; the backend composes it with Camera.Matrix.
type DrawCall struct {
	Geometry GeometryHandle
	// First and Count select a quad range of the geometry.
	First, Count int
	Camera       CameraView
	Model        [6]float64
	Lighting     Lighting
}

// DrawBatch is the graphics backend. The renderer never touches a graphics
// API directly; every texture bind, buffer upload and draw goes through here.
type DrawBatch interface {
	// BindTexture selects the texture sampled by subsequent submissions.
	BindTexture(t Texture)
	// UploadOrUpdate uploads g's vertices, reusing h when it is non-zero,
	// and returns the handle to draw with.
	UploadOrUpdate(h GeometryHandle, g *QuadGeometry) GeometryHandle
	// SetBlendMode selects the compositing operation.
	SetBlendMode(m BlendMode)
	// Submit draws a quad range with the bound texture and blend mode.
	Submit(call DrawCall)
	// Release frees a buffer returned by UploadOrUpdate.
	Release(h GeometryHandle)
}
