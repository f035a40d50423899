package pixelscene

import "testing"

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0xFF8000)
	if c.R != 1 || c.G != 128.0/255 || c.B != 0 {
		t.Errorf("ColorFromHex = %+v", c)
	}
}

func TestNodeAlpha(t *testing.T) {
	n := NewGroup("n")
	n.Lighting.AA = 0.3
	n.SetAlpha(0.5)
	if n.Alpha() != 0.5 || n.Lighting.AA != 0 {
		t.Errorf("lighting = %+v", n.Lighting)
	}
	n.Lighting.AA = 0.25
	if n.Alpha() != 0.75 {
		t.Errorf("Alpha() = %v, want multiply + additive", n.Alpha())
	}
}

func TestNodeColorOps(t *testing.T) {
	red := Color{R: 1}
	tests := []struct {
		name  string
		apply func(*Node)
		want  Lighting
	}{
		{"tint", func(n *Node) { n.Tint(red, 0.25) },
			Lighting{RM: 0.75, GM: 0.75, BM: 0.75, AM: 1, RA: 0.25}},
		{"fill", func(n *Node) { n.ColorFill(red) },
			Lighting{AM: 1, RA: 1}},
		{"hardlight", func(n *Node) { n.Hardlight(Color{R: 1, G: 0.5, B: 0}) },
			Lighting{RM: 1, GM: 0.5, AM: 1}},
		{"brightness", func(n *Node) { n.Brightness(2) },
			Lighting{RM: 2, GM: 2, BM: 2, AM: 1}},
		{"dark", func(n *Node) { n.Lightness(0.25) },
			Lighting{RM: 0.5, GM: 0.5, BM: 0.5, AM: 1}},
		{"neutral", func(n *Node) { n.Lightness(0.5) },
			IdentityLighting},
		{"bright", func(n *Node) { n.Lightness(0.75) },
			Lighting{RM: 0.5, GM: 0.5, BM: 0.5, AM: 1, RA: 0.5, GA: 0.5, BA: 0.5}},
		{"invert", func(n *Node) { n.Invert() },
			Lighting{RM: -1, GM: -1, BM: -1, AM: 1, RA: 1, GA: 1, BA: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewGroup("n")
			tt.apply(n)
			if n.Lighting != tt.want {
				t.Errorf("lighting = %+v, want %+v", n.Lighting, tt.want)
			}
			n.ResetColor()
			if n.Lighting != IdentityLighting {
				t.Errorf("after reset = %+v", n.Lighting)
			}
		})
	}
}
