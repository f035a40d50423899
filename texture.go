package pixelscene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrTextureNotLoaded is returned when UV math is requested before the
// backing image metrics are known.
var ErrTextureNotLoaded = errors.New("pixelscene: texture not loaded")

// Texture is an opaque handle to a backing image. A texture whose image is
// still loading reports a zero size; nodes using it draw nothing until it
// reports real metrics.
type Texture interface {
	Width() int
	Height() int
}

// ImageTexture adapts an *ebiten.Image to Texture.
type ImageTexture struct {
	Image *ebiten.Image
}

// NewImageTexture wraps img. A nil img produces a texture that is never loaded.
func NewImageTexture(img *ebiten.Image) *ImageTexture {
	return &ImageTexture{Image: img}
}

// Width returns the image width, or 0 without an image.
func (t *ImageTexture) Width() int {
	if t == nil || t.Image == nil {
		return 0
	}
	return t.Image.Bounds().Dx()
}

// Height returns the image height, or 0 without an image.
func (t *ImageTexture) Height() int {
	if t == nil || t.Image == nil {
		return 0
	}
	return t.Image.Bounds().Dy()
}

type whiteTexture struct{}

func (whiteTexture) Width() int  { return 1 }
func (whiteTexture) Height() int { return 1 }

// WhiteTexture is a 1x1 opaque white texture used by color blocks and
// untextured shadows. Backends map it to a solid white image.
var WhiteTexture Texture = whiteTexture{}

func textureLoaded(t Texture) bool {
	return t != nil && t.Width() > 0 && t.Height() > 0
}

// UVRect is a normalized texture rectangle.
type UVRect struct {
	Left, Top, Right, Bottom float32
}

// uvRect maps a pixel rectangle of t to normalized coordinates.
func uvRect(t Texture, x0, y0, x1, y1 float64) (UVRect, error) {
	if !textureLoaded(t) {
		return UVRect{}, ErrTextureNotLoaded
	}
	w := float64(t.Width())
	h := float64(t.Height())
	return UVRect{
		Left:   float32(x0 / w),
		Top:    float32(y0 / h),
		Right:  float32(x1 / w),
		Bottom: float32(y1 / h),
	}, nil
}

// TextureRegion is an immutable rectangular sub-region of a texture, in
// source pixels. A zero Width or Height means "the full texture extent".
type TextureRegion struct {
	Texture       Texture
	X, Y          int
	Width, Height int
}

// FullRegion returns a region covering all of t.
func FullRegion(t Texture) TextureRegion {
	return TextureRegion{Texture: t}
}

// Size returns the region's pixel size, resolving zero extents against the
// texture. Returns (0, 0) while the texture is not loaded.
func (r TextureRegion) Size() (w, h int) {
	w, h = r.Width, r.Height
	if r.Texture == nil {
		return w, h
	}
	if w == 0 {
		w = r.Texture.Width()
	}
	if h == 0 {
		h = r.Texture.Height()
	}
	return w, h
}

// UV returns the normalized rectangle of the whole region.
func (r TextureRegion) UV() (UVRect, error) {
	w, h := r.Size()
	return r.SubUV(0, 0, float64(w), float64(h))
}

// SubUV returns the normalized rectangle of the region-local pixel rectangle
// (x0, y0)-(x1, y1).
func (r TextureRegion) SubUV(x0, y0, x1, y1 float64) (UVRect, error) {
	ox, oy := float64(r.X), float64(r.Y)
	return uvRect(r.Texture, ox+x0, oy+y0, ox+x1, oy+y1)
}

// Valid reports whether the region references a loaded texture.
func (r TextureRegion) Valid() bool {
	return textureLoaded(r.Texture)
}

// Film maps integer frame ids to regions of a sprite sheet.
type Film struct {
	texture Texture
	frames  map[int]Rect
}

// NewFilm creates an empty film over t.
func NewFilm(t Texture) *Film {
	return &Film{texture: t, frames: make(map[int]Rect)}
}

// NewFilmGrid creates a film where frame id = row*columns + col for a grid of
// cellW x cellH cells covering t. Returns an empty film while t is not loaded.
func NewFilmGrid(t Texture, cellW, cellH int) *Film {
	f := NewFilm(t)
	if !textureLoaded(t) || cellW <= 0 || cellH <= 0 {
		return f
	}
	cols := t.Width() / cellW
	rows := t.Height() / cellH
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			f.Add(row*cols+col, col*cellW, row*cellH, cellW, cellH)
		}
	}
	return f
}

// Add registers frame id at the given pixel rectangle.
func (f *Film) Add(id, x, y, w, h int) {
	f.frames[id] = Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}
}

// Region returns the region for id. Unknown ids return frame 0 if present,
// otherwise the whole texture.
func (f *Film) Region(id int) TextureRegion {
	r, ok := f.frames[id]
	if !ok {
		if r, ok = f.frames[0]; !ok {
			return FullRegion(f.texture)
		}
	}
	return TextureRegion{
		Texture: f.texture,
		X:       int(r.X),
		Y:       int(r.Y),
		Width:   int(r.Width),
		Height:  int(r.Height),
	}
}

// FrameHeight returns the pixel height of frame id, or 0 if unknown.
func (f *Film) FrameHeight(id int) float64 {
	return f.frames[id].Height
}
