package ecs

import (
	"testing"

	"github.com/phanxgames/pixelscene"

	"github.com/yohamta/donburi"
)

type sheet struct{ w, h int }

func (s sheet) Width() int  { return s.w }
func (s sheet) Height() int { return s.h }

type flatLevel struct {
	width   int
	surface pixelscene.Surface
}

func (l flatLevel) Width() int                       { return l.width }
func (l flatLevel) SurfaceAt(int) pixelscene.Surface { return l.surface }

func newItemWorld(level pixelscene.Level) *pixelscene.ItemWorld {
	return &pixelscene.ItemWorld{
		Level:  level,
		Film:   pixelscene.NewFilmGrid(sheet{64, 16}, 16, 16),
		Tuning: pixelscene.Default().Items,
	}
}

func createHeap(world donburi.World, h HeapData, withAppearance bool) donburi.Entity {
	var e donburi.Entity
	if withAppearance {
		e = world.Create(Heap, Appearance)
	} else {
		e = world.Create(Heap)
	}
	Heap.SetValue(world.Entry(e), h)
	return e
}

func TestBindReadsHeapComponent(t *testing.T) {
	world := donburi.NewWorld()
	e := createHeap(world, HeapData{Cell: 10, Perceived: true, Count: 3}, false)

	b := Bind(world, e)
	if b.Cell() != 10 || !b.Perceived() || b.Count() != 3 {
		t.Fatalf("binding = (%d,%v,%d), want (10,true,3)", b.Cell(), b.Perceived(), b.Count())
	}
	if _, ok := b.(pixelscene.ItemAppearance); ok {
		t.Error("entity without Appearance should not implement ItemAppearance")
	}

	Heap.Get(world.Entry(e)).Count = 1
	if b.Count() != 1 {
		t.Errorf("Count = %d after component change, want 1", b.Count())
	}
}

func TestBindRemovedEntityReadsEmpty(t *testing.T) {
	world := donburi.NewWorld()
	e := createHeap(world, HeapData{Cell: 5, Perceived: true, Count: 2}, false)
	b := Bind(world, e)

	world.Remove(e)
	if b.Perceived() || b.Count() != 0 {
		t.Errorf("removed entity: perceived=%v count=%d, want false 0", b.Perceived(), b.Count())
	}
}

func TestBindAppearanceDrivesSpriteView(t *testing.T) {
	world := donburi.NewWorld()
	e := createHeap(world, HeapData{Cell: 10, Perceived: true, Count: 1}, true)
	glow := pixelscene.NewGlowing(0xFF0000, 1)
	Appearance.SetValue(world.Entry(e), AppearanceData{Frame: 2, Glow: glow})

	iw := newItemWorld(flatLevel{width: 8})
	sprite := pixelscene.NewItemSprite(iw, 0, nil)
	sprite.Link(Bind(world, e))

	if sprite.Frame() != 2 {
		t.Errorf("Frame = %d, want 2", sprite.Frame())
	}
	if sprite.Glowing() != glow {
		t.Error("glow from Appearance not applied")
	}
	// cell 10 on an 8-wide map is (2,1): x = 2.5*16 - 8, y = 2*16 - 16 - 5.
	if sprite.Node.X != 32 || sprite.Node.Y != 11 {
		t.Errorf("position = (%v,%v), want (32,11)", sprite.Node.X, sprite.Node.Y)
	}
}

func TestPerceivedTogglesVisibility(t *testing.T) {
	world := donburi.NewWorld()
	e := createHeap(world, HeapData{Cell: 0, Perceived: false, Count: 1}, false)

	ctx := pixelscene.NewContext(nil, pixelscene.DisplayMetrics{Width: 480, Height: 320, Density: 1}, nil)
	scene := pixelscene.NewScene(ctx, "level")
	scene.Create()

	sprite := pixelscene.NewItemSprite(newItemWorld(flatLevel{width: 8}), 0, nil)
	scene.Add(sprite.Node)
	sprite.Link(Bind(world, e))

	scene.Update(0.01)
	if sprite.Node.Visible {
		t.Error("unperceived heap should hide the sprite")
	}

	Heap.Get(world.Entry(e)).Perceived = true
	scene.Update(0.01)
	if !sprite.Node.Visible {
		t.Error("perceived heap should show the sprite")
	}
}

func TestLandingHookPublishesEvent(t *testing.T) {
	world := donburi.NewWorld()
	e := createHeap(world, HeapData{Cell: 3, Perceived: true, Count: 1}, false)

	var landed []Landed
	LandedEventType.Subscribe(world, func(w donburi.World, ev Landed) {
		landed = append(landed, ev)
	})

	ctx := pixelscene.NewContext(nil, pixelscene.DisplayMetrics{Width: 480, Height: 320, Density: 1}, nil)
	scene := pixelscene.NewScene(ctx, "level")
	scene.Create()

	iw := newItemWorld(flatLevel{width: 8, surface: pixelscene.SurfaceWater})
	iw.OnLand = LandingHook(world)
	sprite := pixelscene.NewItemSprite(iw, 0, nil)
	scene.Add(sprite.Node)
	sprite.Link(Bind(world, e))
	sprite.Drop()

	scene.Update(0.2)
	scene.Update(0.2)
	LandedEventType.ProcessEvents(world)

	if len(landed) != 1 {
		t.Fatalf("landed events = %d, want 1", len(landed))
	}
	if landed[0].Cell != 3 || landed[0].Surface != pixelscene.SurfaceWater {
		t.Errorf("event = %+v, want cell 3 on water", landed[0])
	}
}
