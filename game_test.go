package pixelscene

import "testing"

// newTestGame skips NewGame, which needs a GPU-backed batch.
func newTestGame(t *testing.T) (*Game, *Context) {
	t.Helper()
	ctx := newTestContext()
	registerBag(ctx)
	first := NewScene(ctx, "level")
	first.Create()
	d := ctx.Display()
	return &Game{ctx: ctx, scene: first, outW: d.Width, outH: d.Height}, ctx
}

func TestGameResetSceneKeepsWindows(t *testing.T) {
	g, ctx := newTestGame(t)
	old := g.Scene()
	if _, err := old.OpenWindowKind("bag"); err != nil {
		t.Fatal(err)
	}

	next := NewScene(ctx, "level")
	g.ResetScene(next)
	if g.Scene() != old {
		t.Fatal("switch should wait for the next tick")
	}
	g.applySwitch()

	if g.Scene() != next || !next.Created() {
		t.Fatal("next scene should be running and created")
	}
	if !old.Root().IsDestroyed() {
		t.Error("old scene should be destroyed")
	}
	if w := next.TopWindow(); w == nil || w.Kind != "bag" {
		t.Errorf("top window = %v, want a restored bag", w)
	}
}

func TestGameSwitchSceneDiscardsWindows(t *testing.T) {
	g, ctx := newTestGame(t)
	if _, err := g.Scene().OpenWindowKind("bag"); err != nil {
		t.Fatal(err)
	}
	g.SwitchScene(NewScene(ctx, "level"))
	g.applySwitch()
	if n := len(g.Scene().Windows()); n != 0 {
		t.Errorf("windows = %d, want 0", n)
	}
	if ctx.Cameras.Len() != 2 {
		t.Errorf("cameras = %d, want main + ui", ctx.Cameras.Len())
	}
}

func TestGameResetSceneOtherNameRestoresNothing(t *testing.T) {
	g, ctx := newTestGame(t)
	if _, err := g.Scene().OpenWindowKind("bag"); err != nil {
		t.Fatal(err)
	}
	g.ResetScene(NewScene(ctx, "title"))
	g.applySwitch()
	if n := len(g.Scene().Windows()); n != 0 {
		t.Errorf("windows = %d, want 0", n)
	}
}

func TestGameLayoutResizes(t *testing.T) {
	g, ctx := newTestGame(t)
	if w, h := g.Layout(480, 320); w != 480 || h != 320 {
		t.Errorf("Layout = %dx%d", w, h)
	}
	if ctx.Zoom().Default != 2 {
		t.Fatalf("zoom = %d before resize", ctx.Zoom().Default)
	}

	if w, h := g.Layout(960, 640); w != 960 || h != 640 {
		t.Errorf("Layout = %dx%d", w, h)
	}
	if ctx.Zoom().Default != 3 {
		t.Errorf("zoom = %d after resize, want 3", ctx.Zoom().Default)
	}
	if d := ctx.Display(); d.Width != 960 || d.Density != 1 {
		t.Errorf("display = %+v", d)
	}
	if main := ctx.MainCamera(); main.Zoom() != 3 {
		t.Errorf("main camera zoom = %v", main.Zoom())
	}
}
