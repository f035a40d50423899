package pixelscene

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrUnknownWindowKind is returned when no factory is registered for a kind.
var ErrUnknownWindowKind = errors.New("pixelscene: unknown window kind")

// WindowFactory builds an unopened window of one kind for scene s.
type WindowFactory func(s *Scene) (*Window, error)

// WindowRegistry maps window kinds to their factories. Populate it at
// startup; scenes use it to reopen windows after a transition.
type WindowRegistry struct {
	factories map[string]WindowFactory
}

// Register installs f for kind, replacing any previous factory.
func (r *WindowRegistry) Register(kind string, f WindowFactory) {
	if r.factories == nil {
		r.factories = make(map[string]WindowFactory)
	}
	r.factories[kind] = f
}

// Has reports whether kind has a factory.
func (r *WindowRegistry) Has(kind string) bool {
	_, ok := r.factories[kind]
	return ok
}

// Build runs the factory for kind and tags the result with it.
func (r *WindowRegistry) Build(kind string, s *Scene) (*Window, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWindowKind, kind)
	}
	w, err := f(s)
	if err != nil {
		return nil, fmt.Errorf("pixelscene: build window %q: %w", kind, err)
	}
	if w == nil {
		return nil, fmt.Errorf("pixelscene: build window %q: factory returned nil", kind)
	}
	w.Kind = kind
	return w, nil
}

// WindowStyle holds the textures windows are built from.
type WindowStyle struct {
	Chrome       TextureRegion
	ChromeMargin int
	// Shadow is drawn around the chrome, outset by ShadowMargin.
	Shadow       TextureRegion
	ShadowMargin int
	ShadowAlpha  float64
}

// DefaultWindowStyle uses untextured dark panels.
func DefaultWindowStyle() WindowStyle {
	return WindowStyle{
		Chrome:       FullRegion(WhiteTexture),
		Shadow:       FullRegion(WhiteTexture),
		ShadowMargin: 4,
		ShadowAlpha:  0.5,
	}
}

// savedWindows is the window list captured before a scene transition.
type savedWindows struct {
	scene string
	kinds []string
}

// Context is the state shared by every scene of one game: the camera list,
// display metrics and zoom, the UI camera, window factories and the window
// list carried across transitions. Create one per game and pass it to
// NewScene.
type Context struct {
	Cameras CameraRegistry
	Windows WindowRegistry
	Style   WindowStyle
	Config  *Config
	Logger  *zap.Logger

	display  DisplayMetrics
	zoom     ZoomLevels
	uiCamera *Camera

	guard invariantGuard

	mu    sync.Mutex
	saved savedWindows
}

// NewContext creates a context for a display. A nil cfg uses Default and a
// nil logger discards output.
func NewContext(cfg *Config, display DisplayMetrics, logger *zap.Logger) *Context {
	if cfg == nil {
		cfg = Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if display.Density <= 0 {
		display.Density = cfg.Display.Density
	}
	if display.Density <= 0 {
		display.Density = 1
	}
	c := &Context{
		Config:  cfg,
		Logger:  logger,
		Style:   DefaultWindowStyle(),
		display: display,
	}
	c.guard = invariantGuard{debug: cfg.Debug, log: logger}
	c.Cameras.guard = &c.guard
	c.zoom = ComputeZoom(display, cfg.Profile(display), cfg.UI.Scale, cfg.UI.FullUI)
	return c
}

// SetDebug toggles debug mode: invariant violations panic instead of being
// clamped, and Draw logs per-frame stats.
func (c *Context) SetDebug(enabled bool) {
	c.guard.debug = enabled
}

// Debug reports whether debug mode is on.
func (c *Context) Debug() bool {
	return c.guard.debug
}

// Display returns the current display metrics.
func (c *Context) Display() DisplayMetrics {
	return c.display
}

// Zoom returns the zoom levels computed for the current display.
func (c *Context) Zoom() ZoomLevels {
	return c.zoom
}

// UICamera returns the fullscreen interface camera, or nil before the first
// scene is created.
func (c *Context) UICamera() *Camera {
	return c.uiCamera
}

// MainCamera returns the bottom camera.
func (c *Context) MainCamera() *Camera {
	return c.Cameras.Main()
}

// sceneCamera is the camera windows measure against: the UI camera when it
// is visible, the main camera otherwise.
func (c *Context) sceneCamera() *Camera {
	if c.uiCamera != nil && c.uiCamera.Visible {
		return c.uiCamera
	}
	return c.Cameras.Main()
}

// setDisplay recomputes the zoom levels for a new display size.
func (c *Context) setDisplay(m DisplayMetrics) {
	if m.Density <= 0 {
		m.Density = c.display.Density
	}
	c.display = m
	c.zoom = ComputeZoom(m, c.Config.Profile(m), c.Config.UI.Scale, c.Config.UI.FullUI)
	c.Logger.Debug("display changed",
		zap.Int("width", m.Width), zap.Int("height", m.Height),
		zap.Int("zoom", c.zoom.Default), zap.Int("max_fit", c.zoom.MaxFit))
}
