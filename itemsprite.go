package pixelscene

import (
	"math/rand/v2"
	"sync"
)

// Glowing is a periodic color pulse. A value is never mutated once attached.
type Glowing struct {
	Color Color
	// Period is the time in seconds for one rise (or fall) of the pulse.
	Period float64
}

// NewGlowing creates a pulse toward the 0xRRGGBB color. A non-positive
// period means one second.
func NewGlowing(hex uint32, period float64) *Glowing {
	if period <= 0 {
		period = 1
	}
	return &Glowing{Color: ColorFromHex(hex), Period: period}
}

// Surface is the landing category of a level cell.
type Surface uint8

const (
	SurfaceDefault Surface = iota
	SurfaceWater
	SurfaceSturdy    // special flooring
	SurfaceGrass     // grass, embers and furrowed grass
	SurfaceHighGrass // tall grass
)

// Level is the terrain lookup item sprites position against.
type Level interface {
	// Width is the map width in cells; cell = y*Width + x.
	Width() int
	SurfaceAt(cell int) Surface
}

// Sound identifies a landing cue.
type Sound string

const (
	SoundWater  Sound = "water"
	SoundSturdy Sound = "sturdy"
	SoundGrass  Sound = "grass"
	SoundStep   Sound = "step"
)

// SoundPlayer plays a cue at a volume and pitch multiplier.
type SoundPlayer interface {
	Play(id Sound, volume, pitch float64)
}

// ItemBinding is the game-side heap an item sprite represents.
type ItemBinding interface {
	Cell() int
	// Perceived reports whether the player can currently see the heap.
	Perceived() bool
	Count() int
}

// ItemAppearance is optionally implemented by bindings that choose their own
// frame, glow and emitter. Link uses it to set the view.
type ItemAppearance interface {
	Frame() int
	Glow() *Glowing
	Emitter() Emitter
}

// Emitter is a particle effect attached to an item sprite. The sprite adds
// it next to itself, forwards visibility and stops it on kill, but never
// owns its lifetime.
type Emitter interface {
	EmitterNode() *Node
	Follow(target *Node)
	SetVisible(v bool)
	Stop()
	SetAutoKill(v bool)
}

// ItemWorld is what item sprites need from the game: the level, the camera
// used for pixel alignment, the sprite sheet and the audio sink.
type ItemWorld struct {
	Level  Level
	Camera *Camera
	Film   *Film
	Sounds SoundPlayer
	// Ripple is called with the cell when an item lands in water.
	Ripple func(cell int)
	// OnLand is called with the cell and its surface after every visible
	// landing.
	OnLand func(cell int, surface Surface)
	// Rand returns a value in [lo, hi). Nil uses math/rand/v2.
	Rand   func(lo, hi float64) float64
	Tuning ItemConfig
}

func (w *ItemWorld) random(lo, hi float64) float64 {
	if w.Rand != nil {
		return w.Rand(lo, hi)
	}
	return lo + rand.Float64()*(hi-lo)
}

// glowWeightMax is the blend weight at the top of a pulse.
const glowWeightMax = 0.6

// ItemSprite draws an item on the map: a frame from the film with a ground
// shadow, a drop arc, a glow pulse and an optional emitter. Visibility is
// derived from the bound heap every update.
type ItemSprite struct {
	Node *Node

	world   *ItemWorld
	binding ItemBinding
	frame   int

	glowing *Glowing
	phase   float64
	glowUp  bool

	emitter Emitter

	dropInterval     float64
	perspectiveRaise float64

	mu sync.Mutex
}

// NewItemSprite creates a sprite showing frame with an optional glow.
func NewItemSprite(world *ItemWorld, frame int, glow *Glowing) *ItemSprite {
	t := world.Tuning
	n := NewImage("item", world.Film.Region(frame))
	n.Motion = &Motion{}
	n.Shadow = &Shadow{Width: t.ShadowWidth, Height: t.ShadowHeight, Offset: t.ShadowOffset}
	s := &ItemSprite{Node: n, world: world}
	n.Item = s
	s.View(frame, glow)
	return s
}

// Binding returns the linked heap, or nil.
func (s *ItemSprite) Binding() ItemBinding { return s.binding }

// Frame returns the current film frame.
func (s *ItemSprite) Frame() int { return s.frame }

// Glowing returns the attached pulse, or nil.
func (s *ItemSprite) Glowing() *Glowing { return s.glowing }

// Emitter returns the attached emitter, or nil.
func (s *ItemSprite) Emitter() Emitter { return s.emitter }

// Dropping reports whether a drop arc is in progress.
func (s *ItemSprite) Dropping() bool { return s.dropInterval > 0 }

// Link binds the sprite to a heap, turns the shadow on and places the sprite
// on the heap's cell.
func (s *ItemSprite) Link(b ItemBinding) {
	s.binding = b
	if a, ok := b.(ItemAppearance); ok {
		s.View(a.Frame(), a.Glow())
		s.Attach(a.Emitter())
	}
	s.Node.Shadow.Enabled = true
	s.Place(b.Cell())
}

// View switches to frame and glow, dropping any attached emitter.
func (s *ItemSprite) View(frame int, glow *Glowing) {
	s.removeEmitter()
	s.setFrame(frame)
	s.Glow(glow)
}

// setFrame switches the film frame. Frames shorter than 8 pixels are raised
// further so they stay visible above the cell edge.
func (s *ItemSprite) setFrame(frame int) {
	s.frame = frame
	s.Node.SetRegion(s.world.Film.Region(frame))
	s.perspectiveRaise = 5.0 / 16
	if h := s.world.Film.FrameHeight(frame); h > 0 && h < 8 {
		s.perspectiveRaise = (5 + 8 - h) / 16
	}
}

// Glow attaches a pulse. Nil removes it and resets the color immediately.
func (s *ItemSprite) Glow(g *Glowing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g == nil {
		s.glowing = nil
		s.Node.ResetColor()
		return
	}
	if g == s.glowing {
		return
	}
	s.glowing = g
	s.phase = 0
	s.glowUp = true
}

// Attach adds e next to the sprite and makes it follow the sprite. The
// sprite must already have a parent; otherwise e is ignored.
func (s *ItemSprite) Attach(e Emitter) {
	s.removeEmitter()
	if e == nil || s.Node.Parent == nil {
		return
	}
	e.Follow(s.Node)
	s.Node.Parent.AddChild(e.EmitterNode())
	s.emitter = e
}

func (s *ItemSprite) removeEmitter() {
	if s.emitter != nil {
		s.emitter.EmitterNode().RemoveFromParent()
		s.emitter = nil
	}
}

// SetVisible shows or hides the sprite. Hiding drops the emitter.
func (s *ItemSprite) SetVisible(v bool) {
	s.Node.Visible = v
	if !v {
		s.removeEmitter()
	}
}

// align snaps p to the alignment camera's pixel grid.
func (s *ItemSprite) align(p float64) float64 {
	cam := s.world.Camera
	if cam == nil {
		cam = s.Node.Camera()
	}
	if cam == nil {
		return p
	}
	return cam.Align(p)
}

// WorldToCamera returns the pixel-aligned position that stands the sprite on
// cell: horizontally centered, bottom edge raised by the perspective raise.
func (s *ItemSprite) WorldToCamera(cell int) Vec2 {
	cs := float64(s.world.Tuning.CellSize)
	w := s.world.Level.Width()
	return Vec2{
		X: s.align((float64(cell%w)+0.5)*cs - s.Node.ScaledWidth()*0.5),
		Y: s.align((float64(cell/w)+1)*cs - s.Node.ScaledHeight() - cs*s.perspectiveRaise),
	}
}

// Place moves the sprite onto cell and resets the shadow offset. No-op
// without a level.
func (s *ItemSprite) Place(cell int) {
	if s.world.Level == nil {
		return
	}
	p := s.WorldToCamera(cell)
	s.Node.SetPosition(p.X, p.Y)
	s.Node.Shadow.Offset = s.world.Tuning.ShadowOffset
}

// Drop starts the drop arc: an upward speed that decelerates to rest after
// the drop interval, when the sprite snaps onto its heap's cell. A heap of
// exactly one item is re-placed first; larger heaps keep their current
// position, so repeated drops stack up.
func (s *ItemSprite) Drop() {
	b := s.binding
	if b == nil || b.Count() <= 0 {
		return
	}
	if b.Count() == 1 {
		s.Place(b.Cell())
	}
	t := s.world.Tuning
	s.dropInterval = t.DropInterval
	m := s.Node.Motion
	m.SpeedX, m.SpeedY = 0, -t.DropSpeed
	m.AccX, m.AccY = 0, -m.SpeedY/t.DropInterval
}

// DropFrom runs the drop arc starting over from, drifting back to where the
// sprite stood over the same interval. The sprite is expected to sit on the
// heap's cell already, as Link or Place leave it.
func (s *ItemSprite) DropFrom(from int) {
	b := s.binding
	if b == nil {
		return
	}
	if b.Cell() == from {
		s.Drop()
		return
	}
	px, py := s.Node.X, s.Node.Y
	s.Drop()
	if s.dropInterval <= 0 {
		return
	}
	s.Place(from)
	t := s.world.Tuning.DropInterval
	s.Node.Motion.SpeedX += (px - s.Node.X) / t
	s.Node.Motion.SpeedY += (py - s.Node.Y) / t
}

// Kill hides the sprite and stops its emitter, letting it die out.
func (s *ItemSprite) Kill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Node.Visible = false
	s.Node.Active = false
	if s.emitter != nil {
		s.emitter.Stop()
		s.emitter.SetAutoKill(true)
	}
	s.emitter = nil
}

// Revive makes a killed sprite reusable: motion and drop state are cleared
// and the binding and emitter are dropped.
func (s *ItemSprite) Revive() {
	s.Node.Visible = true
	s.Node.Active = true
	s.Node.Motion.Reset()
	s.dropInterval = 0
	s.binding = nil
	s.removeEmitter()
}

// discard clears all state when the node is destroyed. The emitter is left
// to its owner.
func (s *ItemSprite) discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitter = nil
	s.binding = nil
	s.glowing = nil
	s.dropInterval = 0
}

// dropSlack absorbs the rounding left over when fixed ticks add up to the
// drop interval.
const dropSlack = 1e-9

// update runs one frame. Emitter visibility and landing cues run after the
// lock is released, so callbacks may kill, re-glow or destroy the sprite.
func (s *ItemSprite) update(dt float64) {
	s.mu.Lock()
	n := s.Node
	n.Visible = s.binding == nil || s.binding.Perceived()
	visible := n.Visible
	emitter := s.emitter
	landed, cell := s.stepDrop(dt)
	if visible && s.glowing != nil {
		s.stepGlow(dt)
	}
	s.mu.Unlock()

	if emitter != nil {
		emitter.SetVisible(visible)
	}
	if landed && visible {
		s.land(cell)
	}
}

// stepDrop advances the drop arc and reports the cell the sprite landed on.
func (s *ItemSprite) stepDrop(dt float64) (bool, int) {
	if s.dropInterval <= 0 {
		return false, 0
	}
	n := s.Node
	n.Shadow.Offset -= n.Motion.SpeedY * dt * 0.8
	s.dropInterval -= dt
	if s.dropInterval > dropSlack {
		return false, 0
	}
	s.dropInterval = 0
	n.Motion.Reset()
	if s.binding == nil {
		return false, 0
	}
	cell := s.binding.Cell()
	s.Place(cell)
	return true, cell
}

// stepGlow moves the pulse phase and applies the blend weight.
func (s *ItemSprite) stepGlow(dt float64) {
	g := s.glowing
	period := g.Period
	if period <= 0 {
		period = 1
	}
	if s.glowUp {
		s.phase += dt
		if s.phase > period {
			s.glowUp = false
			s.phase = period
		}
	} else {
		s.phase -= dt
		if s.phase < 0 {
			s.glowUp = true
			s.phase = 0
		}
	}
	w := s.phase / period * glowWeightMax
	l := &s.Node.Lighting
	l.RM, l.GM, l.BM = 1-w, 1-w, 1-w
	l.RA, l.GA, l.BA = g.Color.R*w, g.Color.G*w, g.Color.B*w
}

// land plays the landing cue for the cell's surface.
func (s *ItemSprite) land(cell int) {
	surface := s.world.Level.SurfaceAt(cell)
	if surface == SurfaceWater && s.world.Ripple != nil {
		s.world.Ripple(cell)
	}
	if s.world.OnLand != nil {
		s.world.OnLand(cell, surface)
	}
	if s.world.Sounds == nil {
		return
	}
	id, lo, hi := landingCue(surface)
	s.world.Sounds.Play(id, 0.8, s.world.random(lo, hi))
}

// landingCue returns the sound and pitch range for a surface.
func landingCue(surface Surface) (Sound, float64, float64) {
	switch surface {
	case SurfaceWater:
		return SoundWater, 1, 1.45
	case SurfaceSturdy:
		return SoundSturdy, 1.16, 1.25
	case SurfaceGrass:
		return SoundGrass, 1.16, 1.25
	default:
		return SoundStep, 1.16, 1.25
	}
}
