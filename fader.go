package pixelscene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fader is a full-camera color block whose alpha falls from 1 to 0. Light
// fades blend additively.
type Fader struct {
	Node *Node

	tween *gween.Tween
	done  bool
}

func newFader(cam *Camera, c Color, light bool, duration float64) *Fader {
	n := NewColorBlock("fader", float64(cam.Width), float64(cam.Height), c)
	n.SetCamera(cam)
	scroll := cam.Scroll()
	n.SetPosition(scroll.X, scroll.Y)
	if light {
		n.BlendMode = BlendLight
	}
	n.SetAlpha(1)
	return &Fader{
		Node:  n,
		tween: gween.New(1, 0, float32(duration), ease.Linear),
	}
}

// update advances the fade and destroys the block when it finishes.
func (f *Fader) update(dt float64) {
	if f.done {
		return
	}
	v, finished := f.tween.Update(float32(dt))
	f.Node.SetAlpha(float64(v))
	if finished {
		f.cancel()
	}
}

// cancel stops the fade immediately.
func (f *Fader) cancel() {
	if f.done {
		return
	}
	f.done = true
	f.Node.Destroy()
}

// Done reports whether the fade finished or was replaced.
func (f *Fader) Done() bool { return f.done }

// Alpha returns the current block alpha.
func (f *Fader) Alpha() float64 { return f.Node.Alpha() }
