package pixelscene

import (
	"errors"

	"go.uber.org/zap"
)

// Scene is the top-level object that owns the node tree, the open windows,
// the key listener stack and the fade slot. Cameras and the window factories
// live in the shared Context.
type Scene struct {
	// Name identifies the scene for window restore: windows saved by a
	// scene are only reopened by a scene with the same name.
	Name string

	// OnKey receives key events no listener consumed.
	OnKey func(e KeyEvent) bool
	// OnBackPressed runs on an unconsumed back action.
	OnBackPressed func()
	// OnCreate populates the scene once its cameras exist.
	OnCreate func(s *Scene)

	ctx  *Context
	root *Node

	renderer     renderer
	windows      []*Window
	keyListeners []KeyListener
	fader        *Fader
	areas        []*PointerArea

	created   bool
	destroyed bool
}

// NewScene creates a scene bound to ctx with an empty root group.
func NewScene(ctx *Context, name string) *Scene {
	return &Scene{
		Name: name,
		ctx:  ctx,
		root: NewGroup("root"),
	}
}

// Context returns the shared context.
func (s *Scene) Context() *Context { return s.ctx }

// Root returns the scene's root group.
func (s *Scene) Root() *Node { return s.root }

// Add appends n to the root group.
func (s *Scene) Add(n *Node) { s.root.AddChild(n) }

// Create resets the camera list to a fresh fullscreen main camera at the
// default zoom plus a fullscreen UI camera on top of it. The root group draws
// through the main camera.
func (s *Scene) Create() {
	ctx := s.ctx
	d := ctx.display
	z := float64(ctx.zoom.Default)

	main := NewFullscreenCamera(d.Width, d.Height, z)
	ctx.Cameras.Reset(main)
	s.root.SetCamera(main)
	ctx.uiCamera = NewFullscreenCamera(d.Width, d.Height, z)
	ctx.Cameras.Add(ctx.uiCamera)
	s.created = true

	ctx.Logger.Debug("scene created",
		zap.String("scene", s.Name),
		zap.Int("zoom", ctx.zoom.Default),
		zap.Int("canvas_w", main.Width),
		zap.Int("canvas_h", main.Height))

	if s.OnCreate != nil {
		s.OnCreate(s)
	}
}

// Created reports whether Create has run.
func (s *Scene) Created() bool { return s.created }

// Align snaps p to the device-pixel grid of the default zoom.
func (s *Scene) Align(p float64) float64 {
	return Align(p, float64(s.ctx.zoom.Default))
}

// AlignNode snaps a node's position to the default zoom's pixel grid.
func (s *Scene) AlignNode(n *Node) {
	n.SetPosition(s.Align(n.X), s.Align(n.Y))
}

// Update advances cameras, the fade and every active node by dt seconds.
func (s *Scene) Update(dt float64) {
	if s.destroyed {
		return
	}
	updateWorldTransform(s.root, identityTransform, false)
	s.ctx.Cameras.Update(dt)
	if s.fader != nil {
		s.fader.update(dt)
	}
	updateNode(s.root, dt)
}

// updateNode integrates motion and runs per-node behavior, then recurses.
// Children may remove themselves during the walk.
func updateNode(n *Node, dt float64) {
	if !n.Active || n.destroyed {
		return
	}
	if m := n.Motion; m != nil {
		m.SpeedX += m.AccX * dt
		m.SpeedY += m.AccY * dt
		if m.SpeedX != 0 || m.SpeedY != 0 {
			n.X += m.SpeedX * dt
			n.Y += m.SpeedY * dt
			n.transformDirty = true
		}
		if m.AngularSpeed != 0 {
			n.Rotation += m.AngularSpeed * dt
			n.transformDirty = true
		}
	}
	if n.Emitter != nil {
		n.Emitter.update(dt)
	}
	if n.Item != nil {
		n.Item.update(dt)
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for i := 0; i < len(n.children); i++ {
		c := n.children[i]
		updateNode(c, dt)
		if i < len(n.children) && n.children[i] != c {
			i--
		}
	}
}

// Draw renders every registered camera in order through b.
func (s *Scene) Draw(b DrawBatch) RenderStats {
	if s.destroyed {
		return RenderStats{}
	}
	stats := s.renderer.render(s.root, s.ctx.Cameras.All(), s.ctx.Cameras.Main(), b)
	if s.ctx.guard.debug {
		s.logDrawStats(stats)
	}
	return stats
}

// Resize recomputes the zoom for a new display, re-letterboxes the
// fullscreen cameras and re-zooms and re-centers every open window.
func (s *Scene) Resize(m DisplayMetrics) {
	ctx := s.ctx
	ctx.setDisplay(m)
	z := float64(ctx.zoom.Default)
	for _, c := range ctx.Cameras.All() {
		if c.FullScreen {
			c.SetZoom(z)
			c.Letterbox(m.Width, m.Height)
		}
	}
	for _, w := range s.windows {
		w.camera.SetZoom(z)
		w.layout()
	}
}

// Destroy tears the scene down: the fade is cancelled, windows are closed
// and the tree is destroyed. Cameras other than window cameras stay
// registered until the next Create.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	if s.fader != nil {
		s.fader.cancel()
		s.fader = nil
	}
	for len(s.windows) > 0 {
		s.closeWindow(s.windows[len(s.windows)-1])
	}
	s.keyListeners = nil
	s.root.Destroy()
	s.destroyed = true
}

// --- Fade ---

// FadeIn starts a fade from c to transparent over the configured duration.
// Any running fade is cancelled first.
func (s *Scene) FadeIn(c Color, light bool) *Fader {
	if s.fader != nil && !s.fader.Done() {
		s.fader.cancel()
		s.ctx.Logger.Debug("fade replaced", zap.String("scene", s.Name))
	}
	cam := s.ctx.uiCamera
	if cam == nil {
		cam = s.ctx.Cameras.Main()
	}
	f := newFader(cam, c, light, s.ctx.Config.UI.FadeSeconds)
	s.root.AddChild(f.Node)
	s.fader = f
	return f
}

// Fader returns the current fade, or nil.
func (s *Scene) Fader() *Fader { return s.fader }

// --- Input ---

// AddKeyListener pushes l on top of the listener stack.
func (s *Scene) AddKeyListener(l KeyListener) {
	s.keyListeners = append(s.keyListeners, l)
}

// RemoveKeyListener removes l from the stack.
func (s *Scene) RemoveKeyListener(l KeyListener) {
	for i, k := range s.keyListeners {
		if k == l {
			copy(s.keyListeners[i:], s.keyListeners[i+1:])
			s.keyListeners[len(s.keyListeners)-1] = nil
			s.keyListeners = s.keyListeners[:len(s.keyListeners)-1]
			return
		}
	}
}

// HandleKey delivers e to the listener stack top first, stopping at the
// first listener that consumes it. Returns true if something consumed it.
func (s *Scene) HandleKey(e KeyEvent) bool {
	for i := len(s.keyListeners) - 1; i >= 0; i-- {
		if i >= len(s.keyListeners) {
			continue
		}
		if s.keyListeners[i].OnKey(e) {
			return true
		}
	}
	if s.OnKey != nil && s.OnKey(e) {
		return true
	}
	if e.Pressed && e.Action == ActionBack && s.OnBackPressed != nil {
		s.OnBackPressed()
		return true
	}
	return false
}

// HandlePointer delivers e to the topmost pointer area under it. Areas later
// in tree order are on top. Returns true if an area consumed it.
func (s *Scene) HandlePointer(e PointerEvent) bool {
	updateWorldTransform(s.root, identityTransform, false)
	s.areas = collectAreas(s.root, s.ctx.Cameras.Main(), s.areas[:0])
	consumed := false
	for i := len(s.areas) - 1; i >= 0; i-- {
		if s.areas[i].handle(e) {
			consumed = true
			break
		}
	}
	for i := range s.areas {
		s.areas[i] = nil
	}
	return consumed
}

// collectAreas appends the visible, active pointer areas in tree order.
func collectAreas(n *Node, inherited *Camera, buf []*PointerArea) []*PointerArea {
	if !n.Visible || !n.Active || n.destroyed {
		return buf
	}
	cam := inherited
	if n.camera != nil {
		cam = n.camera
	}
	if cam != nil && !cam.Visible {
		return buf
	}
	if n.Area != nil {
		buf = append(buf, n.Area)
	}
	for _, c := range n.children {
		buf = collectAreas(c, cam, buf)
	}
	return buf
}

// --- Windows ---

// OpenWindow shows w: it joins the tree on top, its camera is registered
// after every existing camera and it becomes the top key listener.
func (s *Scene) OpenWindow(w *Window) {
	if w.open {
		return
	}
	w.open = true
	s.root.AddChild(w.Node)
	s.ctx.Cameras.Add(w.camera)
	s.AddKeyListener(w)
	s.windows = append(s.windows, w)
	w.layout()
}

// OpenWindowKind builds a window through the registry and opens it.
func (s *Scene) OpenWindowKind(kind string) (*Window, error) {
	w, err := s.ctx.Windows.Build(kind, s)
	if err != nil {
		return nil, err
	}
	s.OpenWindow(w)
	return w, nil
}

// closeWindow unregisters w's camera and key listener and destroys it.
func (s *Scene) closeWindow(w *Window) {
	if !w.open {
		return
	}
	w.open = false
	for i, o := range s.windows {
		if o == w {
			copy(s.windows[i:], s.windows[i+1:])
			s.windows[len(s.windows)-1] = nil
			s.windows = s.windows[:len(s.windows)-1]
			break
		}
	}
	s.ctx.Cameras.Remove(w.camera)
	s.RemoveKeyListener(w)
	w.Node.Destroy()
}

// Windows returns the open windows, bottom first. The returned slice MUST NOT be mutated.
func (s *Scene) Windows() []*Window { return s.windows }

// TopWindow returns the most recently opened window, or nil.
func (s *Scene) TopWindow() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// SaveWindows records the kinds of the open windows so a scene with the same
// name can reopen them. Safe to call from another goroutine.
func (s *Scene) SaveWindows() {
	ctx := s.ctx
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.saved.scene = s.Name
	ctx.saved.kinds = ctx.saved.kinds[:0]
	for _, w := range s.windows {
		ctx.saved.kinds = append(ctx.saved.kinds, w.Kind)
	}
}

// RestoreWindows reopens the saved windows if they were saved by a scene
// with this scene's name. Kinds without a factory, or whose factory fails,
// are skipped. The saved list is cleared either way. Returns the number of
// windows reopened.
func (s *Scene) RestoreWindows() int {
	ctx := s.ctx
	ctx.mu.Lock()
	saved := ctx.saved
	ctx.saved = savedWindows{}
	ctx.mu.Unlock()

	if saved.scene != s.Name {
		return 0
	}
	opened := 0
	for _, kind := range saved.kinds {
		w, err := ctx.Windows.Build(kind, s)
		if err != nil {
			lvl := ctx.Logger.Warn
			if kind == "" || errors.Is(err, ErrUnknownWindowKind) {
				lvl = ctx.Logger.Debug
			}
			lvl("window not restored", zap.String("kind", kind), zap.Error(err))
			continue
		}
		s.OpenWindow(w)
		opened++
	}
	return opened
}
