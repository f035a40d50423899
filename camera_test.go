package pixelscene

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(10, 20, 100, 50, 2)
	if cam.Zoom() != 2 {
		t.Errorf("Zoom = %f, want 2", cam.Zoom())
	}
	if !cam.Visible {
		t.Error("Visible = false, want true")
	}
	vp := cam.Viewport()
	if vp != (Rect{X: 10, Y: 20, Width: 200, Height: 100}) {
		t.Errorf("Viewport = %+v, want 10,20 200x100", vp)
	}
}

func TestFullscreenCameraLetterbox(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		zoom         float64
		wantW, wantH int
		wantX, wantY int
	}{
		{"exact", 480, 320, 2, 240, 160, 0, 0},
		{"odd remainder", 481, 323, 2, 240, 161, 0, 0},
		{"zoom 3", 1000, 700, 3, 333, 233, 0, 0},
		{"wide remainder", 1003, 704, 4, 250, 176, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewFullscreenCamera(tt.w, tt.h, tt.zoom)
			if cam.Width != tt.wantW || cam.Height != tt.wantH {
				t.Errorf("canvas = %dx%d, want %dx%d", cam.Width, cam.Height, tt.wantW, tt.wantH)
			}
			if cam.X != tt.wantX || cam.Y != tt.wantY {
				t.Errorf("position = (%d,%d), want (%d,%d)", cam.X, cam.Y, tt.wantX, tt.wantY)
			}
			if !cam.FullScreen {
				t.Error("FullScreen = false")
			}
		})
	}
}

func TestCameraMatrix(t *testing.T) {
	cam := NewCamera(8, 4, 100, 100, 3)
	cam.SetScroll(10, 20)
	m := cam.Matrix()
	want := [6]float64{3, 0, 0, 3, 8 - 30, 4 - 60}
	if m != want {
		t.Errorf("Matrix = %v, want %v", m, want)
	}
	sx, sy := transformPoint(m, 10, 20)
	if sx != 8 || sy != 4 {
		t.Errorf("scroll point maps to (%v,%v), want (8,4)", sx, sy)
	}
}

func TestCameraMatrixAlignsScroll(t *testing.T) {
	cam := NewCamera(0, 0, 100, 100, 2)
	cam.SetScroll(10.3, 0)
	m := cam.Matrix()
	// align(10.3) at zoom 2 is 10.5.
	if !approxEqual(m[4], -21, epsilon) {
		t.Errorf("tx = %v, want -21", m[4])
	}
}

func TestCameraMatrixRecomputedWhenDirty(t *testing.T) {
	cam := NewCamera(0, 0, 100, 100, 1)
	_ = cam.Matrix()
	if cam.dirty {
		t.Fatal("matrix should be clean after Matrix()")
	}
	cam.SetPosition(5, 0)
	if !cam.dirty {
		t.Fatal("SetPosition should dirty the matrix")
	}
	if m := cam.Matrix(); m[4] != 5 {
		t.Errorf("tx = %v, want 5", m[4])
	}
	cam.SetPosition(5, 0)
	if cam.dirty {
		t.Error("unchanged position should not dirty the matrix")
	}
}

func TestScreenCameraRoundtrip(t *testing.T) {
	cam := NewCamera(30, 40, 100, 100, 2.5)
	cam.SetScroll(12, -7)
	for _, p := range []Vec2{{0, 0}, {13.5, 2}, {-40, 99}} {
		sx, sy := cam.CameraToScreen(p.X, p.Y)
		x, y := cam.ScreenToCamera(sx, sy)
		if !approxEqual(x, p.X, 1e-9) || !approxEqual(y, p.Y, 1e-9) {
			t.Errorf("roundtrip %v -> (%v,%v)", p, x, y)
		}
	}
}

func TestAlignIdempotent(t *testing.T) {
	for _, z := range []float64{1, 2, 2.5, 3, 3.75, 4, 7} {
		for _, p := range []float64{0, 0.1, 0.5, 1.3333, -2.7, 123.456, -0.2} {
			a := Align(p, z)
			if Align(a, z) != a {
				t.Errorf("Align(Align(%v,%v)) = %v, want %v", p, z, Align(a, z), a)
			}
			if math.Abs(a-p) > 0.5/z+1e-12 {
				t.Errorf("Align(%v,%v) = %v moved more than half a pixel", p, z, a)
			}
		}
	}
}

func TestCameraAlignUsesZoom(t *testing.T) {
	cam := NewCamera(0, 0, 10, 10, 4)
	if got := cam.Align(1.3); got != 1.25 {
		t.Errorf("Align(1.3) at zoom 4 = %v, want 1.25", got)
	}
	v := cam.AlignVec(Vec2{X: 0.1, Y: 0.2})
	if v != (Vec2{X: 0, Y: 0.25}) {
		t.Errorf("AlignVec = %+v", v)
	}
}

func TestSetZoomNonPositiveClampsInRelease(t *testing.T) {
	cam := NewCamera(0, 0, 10, 10, 2)
	cam.guard = &invariantGuard{log: zap.NewNop()}
	cam.SetZoom(0)
	if cam.Zoom() != 1 {
		t.Errorf("Zoom = %v, want clamp to 1", cam.Zoom())
	}
	cam.SetZoom(math.NaN())
	if cam.Zoom() != 1 {
		t.Errorf("Zoom = %v after NaN, want 1", cam.Zoom())
	}
}

func TestSetZoomNonPositivePanicsInDebug(t *testing.T) {
	cam := NewCamera(0, 0, 10, 10, 2)
	cam.guard = &invariantGuard{debug: true}
	defer func() {
		if recover() == nil {
			t.Error("expected panic in debug mode")
		}
	}()
	cam.SetZoom(-1)
}

func TestCameraZoomToKeepsCenter(t *testing.T) {
	cam := NewCamera(0, 0, 200, 100, 2)
	cam.FocusOn(50, 60)
	cam.ZoomTo(4)
	if cam.Width != 100 || cam.Height != 50 {
		t.Errorf("size = %dx%d, want 100x50", cam.Width, cam.Height)
	}
	if c := cam.Center(); c != (Vec2{X: 50, Y: 60}) {
		t.Errorf("Center = %+v, want (50,60)", c)
	}
	if cam.ScreenWidth() != 400 {
		t.Errorf("ScreenWidth = %v, want 400", cam.ScreenWidth())
	}
}

func TestCameraHitTest(t *testing.T) {
	cam := NewCamera(100, 100, 50, 50, 2)
	if !cam.HitTest(150, 150) {
		t.Error("inside point should hit")
	}
	if cam.HitTest(99, 150) || cam.HitTest(200, 150) {
		t.Error("outside points should miss")
	}
}

func TestCameraFollowSnaps(t *testing.T) {
	cam := NewCamera(0, 0, 100, 100, 1)
	target := NewGroup("target")
	target.Width, target.Height = 10, 10
	target.SetPosition(300, 200)
	updateWorldTransform(target, identityTransform, false)

	cam.Follow(target, 1)
	cam.update(1.0 / 60)
	if c := cam.Center(); !approxEqual(c.X, 305, epsilon) || !approxEqual(c.Y, 205, epsilon) {
		t.Errorf("Center = %+v, want (305,205)", c)
	}

	target.Destroy()
	cam.update(1.0 / 60)
	if cam.followTarget != nil {
		t.Error("destroyed target should be dropped")
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(0, 0, 100, 100, 1)
	cam.ScrollTo(40, -20, 1, ease.Linear)
	cam.update(0.5)
	if s := cam.Scroll(); !approxEqual(s.X, 20, 0.01) || !approxEqual(s.Y, -10, 0.01) {
		t.Errorf("halfway scroll = %+v, want (20,-10)", s)
	}
	cam.update(0.5)
	if s := cam.Scroll(); !approxEqual(s.X, 40, 0.01) || !approxEqual(s.Y, -20, 0.01) {
		t.Errorf("final scroll = %+v, want (40,-20)", s)
	}
	if cam.scrollTween != nil {
		t.Error("scroll tween should be cleared when done")
	}
}

func TestCameraShakeDecaysToZero(t *testing.T) {
	cam := NewCamera(0, 0, 100, 100, 1)
	cam.rng = func() float64 { return 1 }
	cam.Shake(4, 1)

	cam.update(0.5)
	if !approxEqual(cam.shake.X, 2, epsilon) {
		t.Errorf("shake at half time = %v, want 2", cam.shake.X)
	}
	if m := cam.Matrix(); m[4] != -2 {
		t.Errorf("tx with shake = %v, want -2", m[4])
	}

	cam.update(0.6)
	if cam.shake != (Vec2{}) {
		t.Errorf("shake after duration = %+v, want zero", cam.shake)
	}
}

func TestCameraRegistryOrder(t *testing.T) {
	var r CameraRegistry
	main := NewCamera(0, 0, 10, 10, 1)
	a := NewCamera(0, 0, 10, 10, 1)
	b := NewCamera(0, 0, 10, 10, 1)
	back := NewCamera(0, 0, 10, 10, 1)

	r.Reset(main)
	r.Add(a)
	r.Add(b)
	r.Add(a)
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (duplicate add is a no-op)", r.Len())
	}
	r.AddToBack(back)
	if r.Main() != back {
		t.Error("AddToBack should make the camera first")
	}
	r.Remove(a)
	want := []*Camera{back, main, b}
	got := r.All()
	if len(got) != len(want) {
		t.Fatalf("All = %d cameras, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All[%d] mismatch", i)
		}
	}
	if r.Index(a) != -1 {
		t.Error("removed camera still indexed")
	}

	r.Reset(main)
	if r.Len() != 1 || r.Main() != main {
		t.Error("Reset should leave only main")
	}
}

func TestCameraRegistrySharesGuard(t *testing.T) {
	g := &invariantGuard{}
	r := CameraRegistry{guard: g}
	c := NewCamera(0, 0, 1, 1, 1)
	r.Add(c)
	if c.guard != g {
		t.Error("registered camera should adopt the registry guard")
	}
}
