package pixelscene

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Geometry  *QuadGeometry
	Texture   Texture
	First     int
	Count     int
	Model     [6]float64
	Lighting  Lighting
	BlendMode BlendMode
	Camera    *Camera
}

// RenderStats counts backend calls issued by one Draw.
type RenderStats struct {
	Commands      int
	TextureBinds  int
	BlendChanges  int
	Uploads       int
	DrawCalls     int
	CameraPasses  int
	SkippedFrames int
}

// renderer turns the node tree into commands and submits them through a
// DrawBatch, skipping redundant texture and blend changes.
type renderer struct {
	commands []RenderCommand
	stats    RenderStats
}

// shadowLighting darkens a quad to black keeping a fraction of its alpha.
func shadowLighting(l Lighting) Lighting {
	return Lighting{AM: l.AM * 0.6, AA: l.AA * 0.6}
}

// shadowTransform derives the ground-shadow matrix from a node's world
// transform: centered horizontally, pushed down by the shadow offset and
// scaled to the shadow fractions of the frame.
func shadowTransform(world [6]float64, w, h float64, sh *Shadow) [6]float64 {
	m := multiplyAffine(world, [6]float64{1, 0, 0, 1, w * (1 - sh.Width) / 2, h*(1-sh.Height) + sh.Offset})
	return multiplyAffine(m, [6]float64{sh.Width, 0, 0, sh.Height, 0, 0})
}

// collect appends commands for every visible node drawn through cam, in tree
// order. inherited is the camera bound higher up the tree.
func (r *renderer) collect(n *Node, cam, inherited *Camera) {
	if !n.Visible || n.destroyed {
		return
	}
	own := inherited
	if n.camera != nil {
		own = n.camera
	}
	if own == cam {
		r.emit(n, cam)
	}
	for _, child := range n.children {
		r.collect(child, cam, own)
	}
}

func (r *renderer) emit(n *Node, cam *Camera) {
	switch n.Type {
	case NodeTypeImage:
		if n.frameW == 0 && n.frameH == 0 && !n.updateFrame() {
			r.stats.SkippedFrames++
			return
		}
		if n.Shadow != nil && n.Shadow.Enabled {
			r.commands = append(r.commands, RenderCommand{
				Geometry:  n.geometry,
				Texture:   n.Region.Texture,
				Count:     1,
				Model:     shadowTransform(n.worldTransform, n.frameW, n.frameH, n.Shadow),
				Lighting:  shadowLighting(n.Lighting),
				BlendMode: n.BlendMode,
				Camera:    cam,
			})
		}
		r.commands = append(r.commands, RenderCommand{
			Geometry:  n.geometry,
			Texture:   n.Region.Texture,
			Count:     1,
			Model:     n.worldTransform,
			Lighting:  n.Lighting,
			BlendMode: n.BlendMode,
			Camera:    cam,
		})
	case NodeTypeNinePatch:
		np := n.NinePatch
		if !np.uvReady {
			np.updateVertices()
			if !np.uvReady {
				r.stats.SkippedFrames++
				return
			}
		}
		r.commands = append(r.commands, RenderCommand{
			Geometry:  np.geometry,
			Texture:   np.region.Texture,
			Count:     ninePatchQuads,
			Model:     n.worldTransform,
			Lighting:  n.Lighting,
			BlendMode: n.BlendMode,
			Camera:    cam,
		})
	case NodeTypeEmitter:
		e := n.Emitter
		if e.alive == 0 {
			return
		}
		if !e.rebuild() {
			r.stats.SkippedFrames++
			return
		}
		for i := 0; i < e.alive; i++ {
			r.commands = append(r.commands, RenderCommand{
				Geometry:  e.geometry,
				Texture:   e.config.Region.Texture,
				First:     i,
				Count:     1,
				Model:     n.worldTransform,
				Lighting:  e.particleLighting(i),
				BlendMode: n.BlendMode,
				Camera:    cam,
			})
		}
	}
}

// render draws root through every visible camera in registration order.
// main is the camera used by nodes with no camera bound above them.
func (r *renderer) render(root *Node, cameras []*Camera, main *Camera, b DrawBatch) RenderStats {
	r.stats = RenderStats{}
	updateWorldTransform(root, identityTransform, false)

	var (
		boundTex  Texture
		haveTex   bool
		blend     BlendMode
		haveBlend bool
	)
	for _, cam := range cameras {
		if !cam.Visible {
			continue
		}
		r.commands = r.commands[:0]
		r.collect(root, cam, main)
		if len(r.commands) == 0 {
			continue
		}
		r.stats.CameraPasses++
		view := viewOf(cam)
		for i := range r.commands {
			cmd := &r.commands[i]
			if !haveTex || cmd.Texture != boundTex {
				b.BindTexture(cmd.Texture)
				boundTex, haveTex = cmd.Texture, true
				r.stats.TextureBinds++
			}
			if !haveBlend || cmd.BlendMode != blend {
				b.SetBlendMode(cmd.BlendMode)
				blend, haveBlend = cmd.BlendMode, true
				r.stats.BlendChanges++
			}
			if cmd.Geometry.dirty || cmd.Geometry.handle == 0 || cmd.Geometry.owner != b {
				r.stats.Uploads++
			}
			h := cmd.Geometry.sync(b)
			b.Submit(DrawCall{
				Geometry: h,
				First:    cmd.First,
				Count:    cmd.Count,
				Camera:   view,
				Model:    cmd.Model,
				Lighting: cmd.Lighting,
			})
			r.stats.DrawCalls++
		}
		r.stats.Commands += len(r.commands)
	}
	for i := range r.commands {
		r.commands[i] = RenderCommand{}
	}
	return r.stats
}
