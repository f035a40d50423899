package ecs

import (
	"github.com/phanxgames/pixelscene"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// HeapData is the game-side state of an item heap.
type HeapData struct {
	Cell      int
	Perceived bool
	Count     int
}

// AppearanceData selects how a heap is drawn.
type AppearanceData struct {
	Frame   int
	Glow    *pixelscene.Glowing
	Emitter pixelscene.Emitter
}

// Heap is the component every bound entity carries.
var Heap = donburi.NewComponentType[HeapData]()

// Appearance is the optional component that picks the sprite's frame, glow
// and emitter.
var Appearance = donburi.NewComponentType[AppearanceData]()

// Landed is published when a bound item finishes its drop.
type Landed struct {
	Cell    int
	Surface pixelscene.Surface
}

// LandedEventType is the Donburi event type for item landings.
var LandedEventType = events.NewEventType[Landed]()

// LandingHook returns a callback for pixelscene.ItemWorld.OnLand that
// queues a Landed event on world. Consume them with ProcessEvents.
func LandingHook(world donburi.World) func(cell int, surface pixelscene.Surface) {
	return func(cell int, surface pixelscene.Surface) {
		LandedEventType.Publish(world, Landed{Cell: cell, Surface: surface})
	}
}

// HeapBinding reads a heap entity on every call, so sprites see component
// changes on the next update. A removed entity reads as an unperceived,
// empty heap.
type HeapBinding struct {
	world  donburi.World
	entity donburi.Entity
}

// appearanceBinding adds the appearance to a heap binding.
type appearanceBinding struct {
	HeapBinding
}

// Bind wraps entity as an item binding. Entities with an Appearance also
// implement pixelscene.ItemAppearance.
func Bind(world donburi.World, entity donburi.Entity) pixelscene.ItemBinding {
	b := HeapBinding{world: world, entity: entity}
	if world.Valid(entity) && world.Entry(entity).HasComponent(Appearance) {
		return &appearanceBinding{b}
	}
	return &b
}

// Entity returns the bound entity.
func (b *HeapBinding) Entity() donburi.Entity { return b.entity }

func (b *HeapBinding) heap() *HeapData {
	if !b.world.Valid(b.entity) {
		return nil
	}
	e := b.world.Entry(b.entity)
	if !e.HasComponent(Heap) {
		return nil
	}
	return Heap.Get(e)
}

// Cell returns the heap's map cell.
func (b *HeapBinding) Cell() int {
	if h := b.heap(); h != nil {
		return h.Cell
	}
	return 0
}

// Perceived reports whether the player can see the heap.
func (b *HeapBinding) Perceived() bool {
	h := b.heap()
	return h != nil && h.Perceived
}

// Count returns the number of items in the heap.
func (b *HeapBinding) Count() int {
	if h := b.heap(); h != nil {
		return h.Count
	}
	return 0
}

func (b *appearanceBinding) appearance() *AppearanceData {
	if !b.world.Valid(b.entity) {
		return nil
	}
	e := b.world.Entry(b.entity)
	if !e.HasComponent(Appearance) {
		return nil
	}
	return Appearance.Get(e)
}

// Frame returns the sprite frame to show.
func (b *appearanceBinding) Frame() int {
	if a := b.appearance(); a != nil {
		return a.Frame
	}
	return 0
}

// Glow returns the glow to attach, if any.
func (b *appearanceBinding) Glow() *pixelscene.Glowing {
	if a := b.appearance(); a != nil {
		return a.Glow
	}
	return nil
}

// Emitter returns the emitter to attach, if any.
func (b *appearanceBinding) Emitter() pixelscene.Emitter {
	if a := b.appearance(); a != nil {
		return a.Emitter
	}
	return nil
}
