package pixelscene

import "math"

// Window is a modal panel drawn through its own camera, centered on the
// display plus a pixel offset. While open it blocks pointer input to
// everything below it and consumes every key event.
//
// The subtree is: a blocker covering the whole scene camera, a shadow box
// around the chrome, the nine-patch chrome, then the content group. Content
// coordinates start at the chrome's inner top-left corner.
type Window struct {
	Node *Node

	// Kind is the registry key used to reopen the window after a scene
	// transition. Windows without a kind are not restored.
	Kind string

	// OnBack runs on the back action or a click outside the chrome.
	// When nil the window hides itself.
	OnBack func()

	scene   *Scene
	camera  *Camera
	blocker *PointerArea
	shadow  *NinePatch
	chrome  *NinePatch
	content *Node

	width, height    int
	xOffset, yOffset int
	open             bool
}

// NewWindow builds a width x height window for s using the context's window
// style. The window is not shown until Scene.OpenWindow.
// Panics if s has not been created.
func NewWindow(s *Scene, width, height int) *Window {
	style := s.ctx.Style
	return NewWindowWithChrome(s, width, height,
		NewUniformNinePatch("chrome", style.Chrome, style.ChromeMargin))
}

// NewWindowWithChrome builds a window around a caller-supplied chrome.
func NewWindowWithChrome(s *Scene, width, height int, chrome *NinePatch) *Window {
	sc := s.ctx.sceneCamera()
	if sc == nil {
		panic("pixelscene: window needs a created scene")
	}
	style := s.ctx.Style

	w := &Window{
		Node:    NewGroup("window"),
		scene:   s,
		chrome:  chrome,
		content: NewGroup("content"),
		width:   width,
		height:  height,
	}

	w.blocker = NewPointerArea("blocker", float64(sc.Width), float64(sc.Height))
	w.blocker.Node.SetCamera(sc)
	w.blocker.OnClick = func(e PointerEvent) {
		if w.open && !w.chrome.Node.OverlapsScreenPoint(e.X, e.Y) {
			w.BackPressed()
		}
	}
	w.Node.AddChild(w.blocker.Node)

	w.shadow = NewUniformNinePatch("shadow", style.Shadow, style.ShadowMargin)
	w.shadow.Node.SetCamera(sc)
	if style.Shadow.Texture == WhiteTexture {
		w.shadow.Node.ColorFill(Color{})
	}
	w.shadow.Node.SetAlpha(style.ShadowAlpha)
	w.Node.AddChild(w.shadow.Node)

	if chrome.Region().Texture == WhiteTexture {
		chrome.Node.ColorFill(ColorFromHex(0x2b2b2b))
	}
	chrome.Node.SetPosition(-float64(chrome.MarginLeft()), -float64(chrome.MarginTop()))
	chrome.Size(float64(width+chrome.MarginHor()), float64(height+chrome.MarginVer()))
	w.Node.AddChild(chrome.Node)
	w.Node.AddChild(w.content)

	w.camera = NewCamera(0, 0, int(chrome.Width()), int(chrome.Height()), float64(s.ctx.zoom.Default))
	w.camera.guard = &s.ctx.guard
	w.camera.SetScroll(chrome.Node.X, chrome.Node.Y)
	w.Node.SetCamera(w.camera)
	w.layout()
	return w
}

// layout places the camera centered on the display plus the offset, then
// fits the shadow and blocker to it. Every geometry change funnels through
// here so the shadow never lags the camera.
func (w *Window) layout() {
	cam := w.camera
	z := cam.Zoom()
	cam.Resize(int(w.chrome.Width()), int(w.chrome.Height()))
	cam.SetScroll(w.chrome.Node.X, w.chrome.Node.Y)

	d := w.scene.ctx.display
	x := int(math.Floor((float64(d.Width)-cam.ScreenWidth())/2)) + int(float64(w.xOffset)*z)
	y := int(math.Floor((float64(d.Height)-cam.ScreenHeight())/2)) + int(float64(w.yOffset)*z)
	cam.SetPosition(x, y)

	sc := w.blocker.Node.Camera()
	sx, sy := sc.ScreenToCamera(float64(cam.X), float64(cam.Y))
	sw := cam.ScreenWidth() / sc.Zoom()
	sh := cam.ScreenHeight() / sc.Zoom()
	m := float64(w.shadow.MarginLeft())
	w.shadow.Node.SetPosition(sx-m, sy-m)
	w.shadow.Size(sw+2*m, sh+2*m)

	scroll := sc.Scroll()
	w.blocker.Node.SetPosition(scroll.X, scroll.Y)
	w.blocker.Node.Width, w.blocker.Node.Height = float64(sc.Width), float64(sc.Height)
}

// Resize changes the content size; the chrome grows by its margins.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
	w.chrome.Size(float64(width+w.chrome.MarginHor()), float64(height+w.chrome.MarginVer()))
	w.layout()
}

// Offset returns the pixel offset from the centered position, in window
// camera units.
func (w *Window) Offset() (x, y int) {
	return w.xOffset, w.yOffset
}

// SetOffset moves the window away from the display center.
func (w *Window) SetOffset(x, y int) {
	w.xOffset, w.yOffset = x, y
	w.layout()
}

// BoundOffsetWithMargin adjusts the offset so the window stays at least
// margin units inside the scene camera.
func (w *Window) BoundOffsetWithMargin(margin int) {
	cam := w.camera
	z := cam.Zoom()
	x := float64(cam.X) / z
	y := float64(cam.Y) / z
	m := float64(margin)
	sc := w.scene.ctx.sceneCamera()

	nx := w.xOffset
	if x < m {
		nx = int(float64(nx) + m - x)
	} else if x+float64(cam.Width) > float64(sc.Width)-m {
		nx = int(float64(nx) + (float64(sc.Width) - m) - (x + float64(cam.Width)))
	}
	ny := w.yOffset
	if y < m {
		ny = int(float64(ny) + m - y)
	} else if y+float64(cam.Height) > float64(sc.Height)-m {
		ny = int(float64(ny) + (float64(sc.Height) - m) - (y + float64(cam.Height)))
	}
	w.SetOffset(nx, ny)
}

// Width returns the content width.
func (w *Window) Width() int { return w.width }

// Height returns the content height.
func (w *Window) Height() int { return w.height }

// Camera returns the window's dedicated camera.
func (w *Window) Camera() *Camera { return w.camera }

// Chrome returns the border panel.
func (w *Window) Chrome() *NinePatch { return w.chrome }

// Shadow returns the shadow box.
func (w *Window) Shadow() *NinePatch { return w.shadow }

// Blocker returns the input-blocking area.
func (w *Window) Blocker() *PointerArea { return w.blocker }

// Content returns the group window widgets are added to.
func (w *Window) Content() *Node { return w.content }

// IsOpen reports whether the window is shown.
func (w *Window) IsOpen() bool { return w.open }

// BackPressed runs OnBack, or hides the window when it is nil.
func (w *Window) BackPressed() {
	if w.OnBack != nil {
		w.OnBack()
		return
	}
	w.Hide()
}

// Hide closes the window: its camera and key listener are unregistered and
// the subtree is destroyed.
func (w *Window) Hide() {
	w.scene.closeWindow(w)
}

// OnKey implements KeyListener. Back and wait close the window; every key
// event is consumed so nothing reaches the scene below.
func (w *Window) OnKey(e KeyEvent) bool {
	if e.Pressed && (e.Action == ActionBack || e.Action == ActionWait) {
		w.BackPressed()
	}
	return true
}
