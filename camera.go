package pixelscene

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// scrollAnim holds active scroll-to tweens for the camera scroll X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps camera space (virtual canvas units) onto a device-pixel
// rectangle of the screen.
//
// X and Y are the screen-space top-left corner in device pixels. Width and
// Height are the visible extent in camera units, so the screen rect is
// Width*Zoom by Height*Zoom. Scroll is the camera-space point drawn at the
// top-left of the rect.
type Camera struct {
	X, Y          int
	Width, Height int

	// FullScreen cameras are centered and letterboxed on the display.
	FullScreen bool

	// Visible cameras are drawn and receive pointer input.
	Visible bool

	zoom   float64
	scroll Vec2
	shake  Vec2

	shakeMagX, shakeMagY float64
	shakeTime            float64
	shakeDuration        float64

	followTarget *Node
	followLerp   float64

	scrollTween *scrollAnim

	matrix [6]float64
	dirty  bool

	guard *invariantGuard
	rng   func() float64
}

// NewCamera creates a camera at screen position (x, y) showing width x height
// camera units at zoom.
func NewCamera(x, y, width, height int, zoom float64) *Camera {
	c := &Camera{
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		Visible: true,
		zoom:    1,
		dirty:   true,
		rng:     rand.Float64,
	}
	c.SetZoom(zoom)
	return c
}

// NewFullscreenCamera creates a camera covering the display at zoom. The
// virtual canvas is floor(display/zoom) units; the remainder pixels are split
// evenly between both sides, rounding down.
func NewFullscreenCamera(displayW, displayH int, zoom float64) *Camera {
	c := NewCamera(0, 0, 0, 0, zoom)
	c.FullScreen = true
	c.Letterbox(displayW, displayH)
	return c
}

// Letterbox recomputes a fullscreen camera's canvas size and centered screen
// position for a new display size.
func (c *Camera) Letterbox(displayW, displayH int) {
	z := c.zoom
	c.Width = int(math.Floor(float64(displayW) / z))
	c.Height = int(math.Floor(float64(displayH) / z))
	c.X = int(math.Floor((float64(displayW) - float64(c.Width)*z) / 2))
	c.Y = int(math.Floor((float64(displayH) - float64(c.Height)*z) / 2))
	c.dirty = true
}

// Zoom returns the pixel zoom factor.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom sets the zoom factor without moving the screen rect. A
// non-positive zoom is a programmer error: it panics in debug mode and is
// clamped to 1 otherwise.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 || math.IsNaN(z) {
		c.guard.violated("non-positive camera zoom", zap.Float64("zoom", z))
		z = 1
	}
	if z != c.zoom {
		c.zoom = z
		c.dirty = true
	}
}

// ZoomTo changes the zoom while keeping the screen size and the camera-space
// point at the center of the view fixed.
func (c *Camera) ZoomTo(z float64) {
	sw, sh := c.ScreenWidth(), c.ScreenHeight()
	cx := c.scroll.X + float64(c.Width)/2
	cy := c.scroll.Y + float64(c.Height)/2
	c.SetZoom(z)
	c.Width = int(sw / c.zoom)
	c.Height = int(sh / c.zoom)
	c.FocusOn(cx, cy)
}

// Resize changes the visible extent in camera units.
func (c *Camera) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.Width, c.Height = width, height
	c.dirty = true
}

// SetPosition moves the screen rect's top-left corner.
func (c *Camera) SetPosition(x, y int) {
	if c.X != x || c.Y != y {
		c.X, c.Y = x, y
		c.dirty = true
	}
}

// ScreenWidth returns the rect width in device pixels.
func (c *Camera) ScreenWidth() float64 { return float64(c.Width) * c.zoom }

// ScreenHeight returns the rect height in device pixels.
func (c *Camera) ScreenHeight() float64 { return float64(c.Height) * c.zoom }

// Viewport returns the screen rect in device pixels.
func (c *Camera) Viewport() Rect {
	return Rect{X: float64(c.X), Y: float64(c.Y), Width: c.ScreenWidth(), Height: c.ScreenHeight()}
}

// Scroll returns the camera-space point at the top-left of the view.
func (c *Camera) Scroll() Vec2 { return c.scroll }

// SetScroll moves the view so (x, y) is at the top-left.
func (c *Camera) SetScroll(x, y float64) {
	if c.scroll.X != x || c.scroll.Y != y {
		c.scroll = Vec2{X: x, Y: y}
		c.dirty = true
	}
}

// FocusOn centers the view on the camera-space point (x, y).
func (c *Camera) FocusOn(x, y float64) {
	c.SetScroll(x-float64(c.Width)/2, y-float64(c.Height)/2)
}

// Center returns the camera-space point at the center of the view.
func (c *Camera) Center() Vec2 {
	return Vec2{X: c.scroll.X + float64(c.Width)/2, Y: c.scroll.Y + float64(c.Height)/2}
}

// Align snaps a camera-space coordinate to the nearest device pixel:
// round(p*zoom)/zoom.
func (c *Camera) Align(p float64) float64 {
	return Align(p, c.zoom)
}

// AlignVec snaps both components of v.
func (c *Camera) AlignVec(v Vec2) Vec2 {
	return Vec2{X: c.Align(v.X), Y: c.Align(v.Y)}
}

// Align snaps p to the device-pixel grid of zoom. Idempotent for any zoom > 0.
func Align(p, zoom float64) float64 {
	return math.Round(p*zoom) / zoom
}

// Matrix returns the camera-to-screen affine matrix, recomputing it first if
// scroll, shake, zoom or the screen rect changed.
//
//	screen = (X, Y) + (p - align(scroll + shake)) * zoom
func (c *Camera) Matrix() [6]float64 {
	if c.dirty {
		z := c.zoom
		sx := c.Align(c.scroll.X + c.shake.X)
		sy := c.Align(c.scroll.Y + c.shake.Y)
		c.matrix = [6]float64{z, 0, 0, z, float64(c.X) - sx*z, float64(c.Y) - sy*z}
		c.dirty = false
	}
	return c.matrix
}

// MarkDirty forces a recomputation of the matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// ScreenToCamera converts a device pixel to camera space.
func (c *Camera) ScreenToCamera(sx, sy float64) (x, y float64) {
	return (sx-float64(c.X))/c.zoom + c.scroll.X, (sy-float64(c.Y))/c.zoom + c.scroll.Y
}

// CameraToScreen converts a camera-space point to device pixels.
func (c *Camera) CameraToScreen(x, y float64) (sx, sy float64) {
	return (x-c.scroll.X)*c.zoom + float64(c.X), (y-c.scroll.Y)*c.zoom + float64(c.Y)
}

// HitTest reports whether the device pixel (sx, sy) is inside the screen rect.
func (c *Camera) HitTest(sx, sy float64) bool {
	return c.Viewport().Contains(sx, sy)
}

// Shake jitters the view by up to magnitude camera units, decaying linearly
// to zero over duration seconds.
func (c *Camera) Shake(magnitude, duration float64) {
	c.shakeMagX, c.shakeMagY = magnitude, magnitude
	c.shakeTime, c.shakeDuration = duration, duration
}

// Follow keeps target's center in view. A lerp of 1 snaps immediately;
// lower values ease toward the target each update.
func (c *Camera) Follow(target *Node, lerp float64) {
	c.followTarget = target
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the scroll to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.scroll.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.scroll.Y), float32(y), duration, easeFn),
	}
}

// update advances follow, scroll animation and shake.
func (c *Camera) update(dt float64) {
	if t := c.followTarget; t != nil {
		if t.IsDestroyed() {
			c.followTarget = nil
		} else if t.IsVisible() {
			tx, ty := t.LocalToWorld(t.Width/2, t.Height/2)
			cur := c.Center()
			c.FocusOn(cur.X+(tx-cur.X)*c.followLerp, cur.Y+(ty-cur.Y)*c.followLerp)
		}
	}

	if c.scrollTween != nil {
		x, y := c.scroll.X, c.scroll.Y
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(float32(dt))
			x = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(float32(dt))
			y = float64(val)
			c.scrollTween.doneY = done
		}
		c.SetScroll(x, y)
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.shakeTime > 0 {
		c.shakeTime -= dt
		if c.shakeTime > 0 {
			damping := c.shakeTime / c.shakeDuration
			c.shake.X = (c.rng()*2 - 1) * c.shakeMagX * damping
			c.shake.Y = (c.rng()*2 - 1) * c.shakeMagY * damping
		} else {
			c.shake = Vec2{}
		}
		c.dirty = true
	}
}

// CameraRegistry is the ordered list of live cameras. Draw order follows
// registration order; the last camera is drawn on top and gets input first.
type CameraRegistry struct {
	cameras []*Camera
	guard   *invariantGuard
}

// Reset drops every camera and registers main as the only one.
func (r *CameraRegistry) Reset(main *Camera) {
	for i := range r.cameras {
		r.cameras[i] = nil
	}
	r.cameras = r.cameras[:0]
	if main != nil {
		r.Add(main)
	}
}

// Add registers c on top of all existing cameras. Adding a registered camera
// is a no-op.
func (r *CameraRegistry) Add(c *Camera) *Camera {
	if r.Index(c) >= 0 {
		return c
	}
	if c.guard == nil {
		c.guard = r.guard
	}
	r.cameras = append(r.cameras, c)
	return c
}

// AddToBack registers c below all existing cameras.
func (r *CameraRegistry) AddToBack(c *Camera) *Camera {
	if r.Index(c) >= 0 {
		return c
	}
	if c.guard == nil {
		c.guard = r.guard
	}
	r.cameras = append([]*Camera{c}, r.cameras...)
	return c
}

// Remove unregisters c, preserving the order of the rest.
func (r *CameraRegistry) Remove(c *Camera) {
	i := r.Index(c)
	if i < 0 {
		return
	}
	copy(r.cameras[i:], r.cameras[i+1:])
	r.cameras[len(r.cameras)-1] = nil
	r.cameras = r.cameras[:len(r.cameras)-1]
}

// Index returns c's draw position, or -1 if it is not registered.
func (r *CameraRegistry) Index(c *Camera) int {
	for i, cam := range r.cameras {
		if cam == c {
			return i
		}
	}
	return -1
}

// Main returns the first registered camera, or nil.
func (r *CameraRegistry) Main() *Camera {
	if len(r.cameras) == 0 {
		return nil
	}
	return r.cameras[0]
}

// All returns the cameras in draw order. The returned slice MUST NOT be mutated.
func (r *CameraRegistry) All() []*Camera {
	return r.cameras
}

// Len returns the number of registered cameras.
func (r *CameraRegistry) Len() int {
	return len(r.cameras)
}

// Update advances every registered camera.
func (r *CameraRegistry) Update(dt float64) {
	for _, c := range r.cameras {
		c.update(dt)
	}
}
