package pixelscene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerEvent is a press, release or move of one pointer in device pixels.
// ID 0 is the mouse; touches use their touch ID plus one.
type PointerEvent struct {
	ID    int
	X, Y  float64
	Phase PointerPhase
}

// KeyEvent is a key press or release with its resolved logical action.
type KeyEvent struct {
	Key     ebiten.Key
	Pressed bool
	Action  Action
}

// KeyBindings maps physical keys to logical actions.
type KeyBindings map[ebiten.Key]Action

// DefaultKeyBindings returns the stock desktop bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		ebiten.KeyEscape:    ActionBack,
		ebiten.KeyBackspace: ActionBack,
		ebiten.KeySpace:     ActionWait,
		ebiten.KeyPeriod:    ActionWait,
		ebiten.KeyNumpad5:   ActionWait,
		ebiten.KeyEnter:     ActionConfirm,
	}
}

// ActionFor returns the action bound to k, or ActionNone.
func (b KeyBindings) ActionFor(k ebiten.Key) Action {
	if b == nil {
		return ActionNone
	}
	return b[k]
}

// KeyListener receives key events. Returning true consumes the event.
type KeyListener interface {
	OnKey(e KeyEvent) bool
}

// PointerArea is an invisible rectangle that captures pointer input. A press
// followed by a release on the same area is a click. Any event that lands on
// the area is consumed, so areas block everything drawn below them.
type PointerArea struct {
	Node *Node

	OnPress   func(e PointerEvent)
	OnRelease func(e PointerEvent)
	OnClick   func(e PointerEvent)

	down    bool
	downID  int
	enabled bool
}

// NewPointerArea creates an area of width x height camera units.
func NewPointerArea(name string, width, height float64) *PointerArea {
	n := newNode(name, NodeTypePointerArea)
	n.Width, n.Height = width, height
	a := &PointerArea{Node: n, enabled: true}
	n.Area = a
	return a
}

// SetEnabled turns input capture on or off.
func (a *PointerArea) SetEnabled(v bool) {
	a.enabled = v
	if !v {
		a.down = false
	}
}

// Pressed reports whether a pointer is currently held on the area.
func (a *PointerArea) Pressed() bool {
	return a.down
}

// hit reports whether e lands on the area through its camera.
func (a *PointerArea) hit(e PointerEvent) bool {
	return a.enabled && a.Node.OverlapsScreenPoint(e.X, e.Y)
}

// handle delivers e. Returns true if the area consumed it.
func (a *PointerArea) handle(e PointerEvent) bool {
	if !a.hit(e) {
		if e.Phase == PointerUp && a.down && a.downID == e.ID {
			a.down = false
		}
		return false
	}
	switch e.Phase {
	case PointerDown:
		a.down, a.downID = true, e.ID
		if a.OnPress != nil {
			a.OnPress(e)
		}
	case PointerUp:
		clicked := a.down && a.downID == e.ID
		a.down = false
		if a.OnRelease != nil {
			a.OnRelease(e)
		}
		if clicked && a.OnClick != nil {
			a.OnClick(e)
		}
	}
	return true
}

// InputPoller turns ebiten's polled device state into event streams.
// Call Poll once per tick from Game.Update.
type InputPoller struct {
	Bindings KeyBindings

	lastX, lastY int
	keys         []ebiten.Key
	touches      []ebiten.TouchID
}

// NewInputPoller creates a poller using bindings.
func NewInputPoller(bindings KeyBindings) *InputPoller {
	return &InputPoller{Bindings: bindings}
}

// Poll appends this tick's pointer and key events.
func (p *InputPoller) Poll(pointers []PointerEvent, keys []KeyEvent) ([]PointerEvent, []KeyEvent) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pointers = append(pointers, PointerEvent{ID: 0, X: x, Y: y, Phase: PointerDown})
	}
	if mx != p.lastX || my != p.lastY {
		pointers = append(pointers, PointerEvent{ID: 0, X: x, Y: y, Phase: PointerMove})
		p.lastX, p.lastY = mx, my
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		pointers = append(pointers, PointerEvent{ID: 0, X: x, Y: y, Phase: PointerUp})
	}

	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		tx, ty := ebiten.TouchPosition(id)
		pointers = append(pointers, PointerEvent{ID: int(id) + 1, X: float64(tx), Y: float64(ty), Phase: PointerDown})
	}
	p.touches = inpututil.AppendJustReleasedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		tx, ty := inpututil.TouchPositionInPreviousTick(id)
		pointers = append(pointers, PointerEvent{ID: int(id) + 1, X: float64(tx), Y: float64(ty), Phase: PointerUp})
	}

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		keys = append(keys, KeyEvent{Key: k, Pressed: true, Action: p.Bindings.ActionFor(k)})
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		keys = append(keys, KeyEvent{Key: k, Pressed: false, Action: p.Bindings.ActionFor(k)})
	}
	return pointers, keys
}
