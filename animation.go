package pixelscene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenLighting) and call Update(dt) each frame, or attach it with Run so the
// scene update drives it. If the target node is destroyed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnDone runs once when every tween has finished.
	OnDone func()
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been destroyed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDestroyed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.Done && g.OnDone != nil {
		g.OnDone()
	}
}

// Run chains the group onto the target's OnUpdate so it advances with the
// scene. The previous OnUpdate keeps running; the group detaches itself once
// done.
func (g *TweenGroup) Run() *TweenGroup {
	n := g.target
	prev := n.OnUpdate
	n.OnUpdate = func(dt float64) {
		if prev != nil {
			prev(dt)
		}
		g.Update(dt)
		if g.Done && !n.IsDestroyed() {
			n.OnUpdate = prev
		}
	}
	return g
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), float32(duration), fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), float32(duration), fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), float32(duration), fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), float32(duration), fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenLighting animates the additive color of the node toward c and its
// alpha multiplier toward alpha.
func TweenLighting(node *Node, c Color, alpha, duration float64, fn ease.TweenFunc) *TweenGroup {
	l := &node.Lighting
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(l.RA), float32(c.R), float32(duration), fn)
	g.tweens[1] = gween.New(float32(l.GA), float32(c.G), float32(duration), fn)
	g.tweens[2] = gween.New(float32(l.BA), float32(c.B), float32(duration), fn)
	g.tweens[3] = gween.New(float32(l.AM), float32(alpha), float32(duration), fn)
	g.fields[0] = &l.RA
	g.fields[1] = &l.GA
	g.fields[2] = &l.BA
	g.fields[3] = &l.AM
	return g
}

// TweenAlpha creates a TweenGroup that animates the node's alpha multiplier
// to the target value over the specified duration using the easing function.
func TweenAlpha(node *Node, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Lighting.AM), float32(to), float32(duration), fn)
	g.fields[0] = &node.Lighting.AM
	return g
}

// TweenRotation creates a TweenGroup that animates node.Rotation to the target
// value over the specified duration using the easing function.
func TweenRotation(node *Node, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Rotation), float32(to), float32(duration), fn)
	g.fields[0] = &node.Rotation
	return g
}
