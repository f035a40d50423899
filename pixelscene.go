package pixelscene

import "github.com/hajimehoshi/ebiten/v2"

// Vec2 is a 2D vector used for positions, offsets, speeds and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Lighting holds the per-channel multiply (RM..AM) and additive (RA..AA)
// terms applied to every texel: out = texel*M + A.
type Lighting struct {
	RM, GM, BM, AM float64
	RA, GA, BA, AA float64
}

// IdentityLighting leaves texels untouched.
var IdentityLighting = Lighting{RM: 1, GM: 1, BM: 1, AM: 1}

// Color is a straight-alpha RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ColorFromHex converts a 0xRRGGBB value.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64(hex>>16&0xFF) / 255,
		G: float64(hex>>8&0xFF) / 255,
		B: float64(hex&0xFF) / 255,
	}
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendLight                   // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendLight:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup       NodeType = iota // container with no visual output
	NodeTypeImage                       // single textured quad
	NodeTypeNinePatch                   // nine-sliced panel
	NodeTypePointerArea                 // invisible input region
	NodeTypeEmitter                     // particle quads
)

// Action is a logical input action resolved from a physical key through
// KeyBindings.
type Action uint8

const (
	ActionNone Action = iota
	ActionBack
	ActionWait
	ActionConfirm
)

// PointerPhase identifies a kind of pointer event.
type PointerPhase uint8

const (
	PointerDown PointerPhase = iota
	PointerUp
	PointerMove
)
