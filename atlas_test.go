package pixelscene

import (
	"strings"
	"testing"
)

// --- Test JSON fixtures ---

const singlePageJSON = `{
  "frames": {
    "chrome.png": {
      "frame": {"x": 0, "y": 0, "w": 20, "h": 20},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 20, "h": 20},
      "sourceSize": {"w": 20, "h": 20}
    },
    "items.png": {
      "frame": {"x": 64, "y": 0, "w": 128, "h": 32},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 128, "h": 32},
      "sourceSize": {"w": 128, "h": 32}
    },
    "shadow.png": {
      "frame": {"x": 20, "y": 0, "w": 12, "h": 12},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 12, "h": 12},
      "sourceSize": {"w": 12, "h": 12}
    }
  },
  "meta": {
    "image": "interface.png",
    "size": {"w": 256, "h": 256}
  }
}`

const rotatedJSON = `{
  "frames": {
    "sideways.png": {
      "frame": {"x": 200, "y": 0, "w": 48, "h": 32},
      "rotated": true
    }
  }
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "page0_sprite.png": {
          "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
          "rotated": false
        }
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "page1_sprite.png": {
          "frame": {"x": 10, "y": 20, "w": 50, "h": 50},
          "rotated": false
        }
      }
    }
  ]
}`

// --- LoadAtlas tests ---

func TestLoadAtlas_SinglePage_RegionCount(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []Texture{testTexture{256, 256}})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if atlas.Len() != 3 {
		t.Errorf("region count = %d, want 3", atlas.Len())
	}
}

func TestLoadAtlas_RegionLookup_Exists(t *testing.T) {
	page := testTexture{256, 256}
	atlas, err := LoadAtlas([]byte(singlePageJSON), []Texture{page})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	r, ok := atlas.Lookup("items.png")
	if !ok {
		t.Fatal("items.png not found")
	}
	if r.X != 64 || r.Y != 0 || r.Width != 128 || r.Height != 32 {
		t.Errorf("items.png = %+v", r)
	}
	if r.Texture != page {
		t.Error("region should reference page 0")
	}
	uv, err := r.UV()
	if err != nil {
		t.Fatal(err)
	}
	if uv != (UVRect{Left: 0.25, Top: 0, Right: 0.75, Bottom: 0.125}) {
		t.Errorf("UV = %+v", uv)
	}
}

func TestLoadAtlas_RegionLookup_Missing_ReturnsWhite(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []Texture{testTexture{256, 256}})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if _, ok := atlas.Lookup("nope.png"); ok {
		t.Error("Lookup of a missing name should report false")
	}
	r := atlas.Region("nope.png")
	if r.Texture != WhiteTexture {
		t.Error("missing region should fall back to the white texture")
	}
	if w, h := r.Size(); w != 1 || h != 1 {
		t.Errorf("missing region size = %dx%d, want 1x1", w, h)
	}
}

func TestLoadAtlas_RotatedRejected(t *testing.T) {
	_, err := LoadAtlas([]byte(rotatedJSON), []Texture{testTexture{256, 256}})
	if err == nil {
		t.Fatal("expected error for a rotated frame")
	}
	if !strings.Contains(err.Error(), "sideways.png") {
		t.Errorf("error %q should name the frame", err)
	}
}

func TestLoadAtlas_MultiPage(t *testing.T) {
	page0 := testTexture{512, 512}
	page1 := testTexture{256, 256}
	atlas, err := LoadAtlas([]byte(multiPageJSON), []Texture{page0, page1})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if got := atlas.Len(); got != 2 {
		t.Errorf("region count = %d, want 2", got)
	}

	if r0 := atlas.Region("page0_sprite.png"); r0.Texture != page0 {
		t.Error("page0_sprite should use page 0")
	}
	r1 := atlas.Region("page1_sprite.png")
	if r1.Texture != page1 {
		t.Error("page1_sprite should use page 1")
	}
	if r1.X != 10 || r1.Y != 20 {
		t.Errorf("page1_sprite X/Y = %d/%d, want 10/20", r1.X, r1.Y)
	}
}

func TestLoadAtlas_MissingPageTexture(t *testing.T) {
	atlas, err := LoadAtlas([]byte(multiPageJSON), []Texture{testTexture{512, 512}})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	r := atlas.Region("page1_sprite.png")
	if r.Valid() {
		t.Error("region without a page texture should not be valid")
	}
	if _, err := r.UV(); err != ErrTextureNotLoaded {
		t.Errorf("UV err = %v, want ErrTextureNotLoaded", err)
	}
}

func TestLoadAtlas_InvalidJSON(t *testing.T) {
	_, err := LoadAtlas([]byte(`{invalid`), nil)
	if err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}

func TestLoadAtlas_NoFramesOrTextures(t *testing.T) {
	_, err := LoadAtlas([]byte(`{"meta":{}}`), nil)
	if err == nil {
		t.Error("expected error for JSON with no frames/textures, got nil")
	}
}

func TestLoadAtlas_NinePatchFromRegion(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []Texture{testTexture{256, 256}})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	p := NewUniformNinePatch("chrome", atlas.Region("chrome.png"), 4)
	p.Size(40, 40)
	q := p.Geometry().Quad(4)
	if q.U1 != 4.0/256 || q.U2 != 16.0/256 {
		t.Errorf("center UV = %v..%v, want 4/256..16/256", q.U1, q.U2)
	}
}

// --- Benchmarks ---

func BenchmarkLoadAtlas_SinglePage(b *testing.B) {
	data := []byte(singlePageJSON)
	pages := []Texture{testTexture{256, 256}}
	b.ReportAllocs()
	for b.Loop() {
		_, _ = LoadAtlas(data, pages)
	}
}

func BenchmarkAtlas_Region_Hit(b *testing.B) {
	atlas, _ := LoadAtlas([]byte(singlePageJSON), []Texture{testTexture{256, 256}})
	b.ReportAllocs()
	for b.Loop() {
		_ = atlas.Region("items.png")
	}
}
