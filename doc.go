// Package pixelscene is a retained-mode 2D scene and camera compositing
// layer for pixel-art games on [Ebitengine].
//
// It provides the node tree, pixel-aligned cameras with integer zoom,
// nine-patch panels, modal windows that each render through their own
// camera, and map item sprites that drop with a shadow, glow and carry a
// particle emitter.
//
// # Quick start
//
// A [Context] owns the display metrics, the camera registry and the logger.
// [Run] opens a window and drives one [Scene] at a time:
//
//	cfg, _ := pixelscene.LoadConfig("game.yaml")
//	ctx := pixelscene.NewContext(cfg, pixelscene.DisplayMetrics{Width: 960, Height: 640}, pixelscene.NewLogger(cfg.Logging))
//	scene := pixelscene.NewScene(ctx, "level")
//	scene.OnCreate = func(s *pixelscene.Scene) {
//		// ... add nodes ...
//	}
//	pixelscene.Run(ctx, scene, pixelscene.RunConfig{Title: "Dungeon"})
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]; children inherit their parent's transform and camera.
// Create nodes with [NewGroup], [NewImage], [NewColorBlock],
// [NewNinePatch] and [NewParticleEmitter]. Capabilities such as motion,
// ground shadows and pointer areas are optional fields on the node.
//
// # Cameras and zoom
//
// [ComputeZoom] picks an integer zoom from the display size and density so
// the virtual canvas never drops below the active [DisplayProfile]. Scene
// creation installs a main camera and a UI camera at that zoom; positions
// snap to device pixels with [Align]. Cameras render in registry order, so a
// camera added later draws on top and receives input first.
//
// # Windows
//
// A [Window] is a centered nine-patch panel on its own camera with a
// full-screen blocker beneath it. Clicking outside the panel or pressing back
// closes it, and no input reaches what lies below while it is open. Windows
// registered by kind in [WindowRegistry] survive [Game.ResetScene].
//
// # Item sprites
//
// An [ItemSprite] tracks an [ItemBinding] on the map. [ItemSprite.Drop]
// tosses it up and lets it fall back onto its cell with a landing sound
// chosen by the cell's [Surface]; [Glowing] pulses its color and an attached
// [Emitter] follows it.
//
// ECS integration lives in pixelscene/ecs, backed by [Donburi].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package pixelscene
