package pixelscene

// Alpha returns the effective alpha (multiply + additive terms).
func (n *Node) Alpha() float64 {
	return n.Lighting.AM + n.Lighting.AA
}

// SetAlpha sets the multiply alpha and clears the additive alpha.
func (n *Node) SetAlpha(a float64) {
	n.Lighting.AM = a
	n.Lighting.AA = 0
}

// ResetColor restores identity lighting.
func (n *Node) ResetColor() {
	n.Lighting = IdentityLighting
}

// Tint blends toward c by strength.
func (n *Node) Tint(c Color, strength float64) {
	m := 1 - strength
	n.Lighting.RM, n.Lighting.GM, n.Lighting.BM = m, m, m
	n.Lighting.RA = c.R * strength
	n.Lighting.GA = c.G * strength
	n.Lighting.BA = c.B * strength
}

// ColorFill replaces the texel color with c, keeping texel alpha.
func (n *Node) ColorFill(c Color) {
	n.Lighting.RM, n.Lighting.GM, n.Lighting.BM = 0, 0, 0
	n.Lighting.RA, n.Lighting.GA, n.Lighting.BA = c.R, c.G, c.B
}

// Hardlight multiplies each channel by c.
func (n *Node) Hardlight(c Color) {
	n.Lighting.RM, n.Lighting.GM, n.Lighting.BM = c.R, c.G, c.B
	n.Lighting.RA, n.Lighting.GA, n.Lighting.BA = 0, 0, 0
}

// Brightness scales all color channels.
func (n *Node) Brightness(v float64) {
	n.Lighting.RM, n.Lighting.GM, n.Lighting.BM = v, v, v
}

// Lightness maps 0 to black, 0.5 to unchanged and 1 to white.
func (n *Node) Lightness(v float64) {
	if v < 0.5 {
		m := v * 2
		n.Lighting.RM, n.Lighting.GM, n.Lighting.BM = m, m, m
		n.Lighting.RA, n.Lighting.GA, n.Lighting.BA = 0, 0, 0
		return
	}
	m := 2 - v*2
	a := v*2 - 1
	n.Lighting.RM, n.Lighting.GM, n.Lighting.BM = m, m, m
	n.Lighting.RA, n.Lighting.GA, n.Lighting.BA = a, a, a
}

// Invert negates the color channels.
func (n *Node) Invert() {
	n.Lighting.RM, n.Lighting.GM, n.Lighting.BM = -1, -1, -1
	n.Lighting.RA, n.Lighting.GA, n.Lighting.BA = 1, 1, 1
}
