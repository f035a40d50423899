// Package ecs binds pixelscene item sprites to a [Donburi] world.
//
// Heaps live in the world as entities carrying a [Heap] component and,
// optionally, an [Appearance]. [Bind] wraps such an entity as a
// pixelscene.ItemBinding so a sprite can track it:
//
//	e := world.Create(ecs.Heap, ecs.Appearance)
//	ecs.Heap.SetValue(world.Entry(e), ecs.HeapData{Cell: 42, Perceived: true, Count: 1})
//	sprite.Link(ecs.Bind(world, e))
//
// Landings are published as [LandedEventType] events; install [LandingHook]
// as the item world's OnLand callback and subscribe in your systems.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
