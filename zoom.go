package pixelscene

import "math"

// DisplayProfile is the minimum virtual canvas for one layout, plus the
// density multiplier used to pick a default zoom.
type DisplayProfile struct {
	MinWidth    float64 `yaml:"min_width"`
	MinHeight   float64 `yaml:"min_height"`
	ScaleFactor float64 `yaml:"scale_factor"`
}

// Built-in profiles.
var (
	PortraitProfile  = DisplayProfile{MinWidth: 135, MinHeight: 225, ScaleFactor: 2.5}
	LandscapeProfile = DisplayProfile{MinWidth: 240, MinHeight: 160, ScaleFactor: 2.5}
	FullUIProfile    = DisplayProfile{MinWidth: 360, MinHeight: 200, ScaleFactor: 3.75}
)

// DisplayMetrics describes the physical render surface.
type DisplayMetrics struct {
	Width, Height int
	// Density is the device pixel density relative to a 160dpi baseline.
	Density float64
}

// Landscape reports whether the surface is wider than it is tall.
func (m DisplayMetrics) Landscape() bool {
	return m.Width > m.Height
}

// ZoomLevels is the result of ComputeZoom.
type ZoomLevels struct {
	// Default is the zoom used for the main and UI cameras.
	Default int
	// Min and Max bound interactive zooming of the main camera.
	Min, Max int
	// MaxFit is the largest zoom whose canvas still meets the profile minimum.
	MaxFit int
	// Profile is the profile the levels were computed from.
	Profile DisplayProfile
}

// Canvas returns the virtual canvas size at the default zoom.
func (z ZoomLevels) Canvas(m DisplayMetrics) (w, h int) {
	return m.Width / z.Default, m.Height / z.Default
}

// SelectProfile picks the profile for the surface orientation. fullUI
// overrides orientation.
func SelectProfile(m DisplayMetrics, fullUI bool) DisplayProfile {
	switch {
	case fullUI:
		return FullUIProfile
	case m.Landscape():
		return LandscapeProfile
	default:
		return PortraitProfile
	}
}

// ComputeZoom picks the default zoom for the display. preferred is a
// user-chosen zoom (0 or less for automatic); it is used as is when it lies
// between ceil(density*2) and the largest zoom that keeps the canvas at least
// the profile minimum. Otherwise the zoom derives from density and the profile's
// scale factor. The result is always within [1, MaxFit], with MaxFit itself
// at least 1.
func ComputeZoom(m DisplayMetrics, p DisplayProfile, preferred int, fullUI bool) ZoomLevels {
	maxFit := 1
	if p.MinWidth > 0 && p.MinHeight > 0 {
		maxFit = int(math.Min(float64(m.Width)/p.MinWidth, float64(m.Height)/p.MinHeight))
	}
	if maxFit < 1 {
		maxFit = 1
	}

	zoom := preferred
	if zoom <= 0 || float64(zoom) < math.Ceil(m.Density*2) || zoom > maxFit {
		zoom = clampInt(int(math.Ceil(m.Density*p.ScaleFactor)), 2, maxFit)
		if fullUI && zoom < (maxFit+1)/2 {
			zoom = (maxFit + 1) / 2
		}
	}
	zoom = clampInt(zoom, 1, maxFit)

	return ZoomLevels{
		Default: zoom,
		Min:     1,
		Max:     zoom * 2,
		MaxFit:  maxFit,
		Profile: p,
	}
}

// clampInt clamps v to [lo, hi]; hi wins when lo > hi.
func clampInt(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
