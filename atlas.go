package pixelscene

import (
	"encoding/json"
	"fmt"
)

// Atlas holds one or more page textures and a map of named regions.
type Atlas struct {
	// Pages contains the atlas page textures indexed by page number.
	Pages   []Texture
	regions map[string]TextureRegion
}

// Region returns the TextureRegion for the given name.
// Unknown names resolve to a 1x1 white placeholder so callers keep drawing.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	return FullRegion(WhiteTexture)
}

// Lookup returns the named region and whether it exists.
func (a *Atlas) Lookup(name string) (TextureRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Len returns the number of named regions.
func (a *Atlas) Len() int {
	return len(a.regions)
}

// LoadAtlas parses TexturePacker JSON data and associates the given page textures.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists). Rotated frames are rejected:
// nine-patch UV math assumes upright source pixels.
func LoadAtlas(jsonData []byte, pages []Texture) (*Atlas, error) {
	var head struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &head); err != nil {
		return nil, fmt.Errorf("pixelscene: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]TextureRegion),
	}

	switch {
	case head.Textures != nil:
		if err := parseArrayFormat(head.Textures, atlas); err != nil {
			return nil, err
		}
	case head.Frames != nil:
		if err := parseHashFrames(head.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("pixelscene: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("pixelscene: failed to parse atlas frames: %w", err)
	}
	return addFrames(frames, page, atlas)
}

func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("pixelscene: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		if err := addFrames(tex.Frames, i, atlas); err != nil {
			return err
		}
	}
	return nil
}

func addFrames(frames map[string]jsonFrame, page int, atlas *Atlas) error {
	var tex Texture
	if page < len(atlas.Pages) {
		tex = atlas.Pages[page]
	}
	for name, f := range frames {
		if f.Rotated {
			return fmt.Errorf("pixelscene: atlas frame %q is rotated", name)
		}
		atlas.regions[name] = TextureRegion{
			Texture: tex,
			X:       f.Frame.X,
			Y:       f.Frame.Y,
			Width:   f.Frame.W,
			Height:  f.Frame.H,
		}
	}
	return nil
}
