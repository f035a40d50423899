package pixelscene

import (
	"math"
	"math/rand/v2"
)

// particle holds per-particle simulation state. Unexported; managed by ParticleEmitter.
type particle struct {
	x, y       float64
	vx, vy     float64
	life       float64 // remaining lifetime in seconds
	maxLife    float64 // initial lifetime (for computing t)
	startScale float64
	endScale   float64
	scale      float64
	startAlpha float64
	endAlpha   float64
	alpha      float64
	color      Color
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per second while on.
	EmitRate float64
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial particle speeds in camera units per second.
	Speed Range
	// Angle is the range of emission angles in radians.
	Angle Range
	// StartScale is the range of scale factors at birth, interpolated to EndScale over lifetime.
	StartScale Range
	// EndScale is the range of scale factors at death.
	EndScale Range
	// StartAlpha is the range of alpha values at birth, interpolated to EndAlpha over lifetime.
	StartAlpha Range
	// EndAlpha is the range of alpha values at death.
	EndAlpha Range
	// Gravity is the constant acceleration applied to all particles each frame.
	Gravity Vec2
	// StartColor is the tint at birth, interpolated to EndColor over lifetime.
	StartColor Color
	// EndColor is the tint at death.
	EndColor Color
	// Region is the TextureRegion used to render each particle.
	Region TextureRegion
	// BlendMode is the compositing operation for particle rendering.
	BlendMode BlendMode
}

// ParticleEmitter manages a pool of particles with CPU-based simulation.
// Particles spawn uniformly inside the emitter node's Width x Height rect
// and live in the node's local space.
type ParticleEmitter struct {
	Node *Node

	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float64
	on        bool
	autoKill  bool
	pending   int

	target *Node

	geometry *QuadGeometry
}

// NewParticleEmitter creates an emitter node with a preallocated pool.
func NewParticleEmitter(name string, cfg EmitterConfig) *ParticleEmitter {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	n := newNode(name, NodeTypeEmitter)
	n.BlendMode = cfg.BlendMode
	e := &ParticleEmitter{
		Node:      n,
		config:    cfg,
		particles: make([]particle, max),
		geometry:  NewQuadGeometry(max),
	}
	n.Emitter = e
	return e
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() {
	e.on = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *ParticleEmitter) Stop() {
	e.on = false
	e.pending = 0
}

// Burst spawns n particles on the next update.
func (e *ParticleEmitter) Burst(n int) {
	e.pending += n
}

// Reset stops emitting and kills all alive particles.
func (e *ParticleEmitter) Reset() {
	e.on = false
	e.alive = 0
	e.emitAccum = 0
	e.pending = 0
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool {
	return e.on
}

// SetAutoKill makes the emitter destroy itself once it is stopped and its
// last particle has died.
func (e *ParticleEmitter) SetAutoKill(v bool) {
	e.autoKill = v
}

// SetVisible shows or hides the emitter node. Hidden emitters keep simulating.
func (e *ParticleEmitter) SetVisible(v bool) {
	e.Node.Visible = v
}

// Follow keeps the emitter rect on target's bounds. target must share the
// emitter's parent.
func (e *ParticleEmitter) Follow(target *Node) {
	e.target = target
	e.trackTarget()
}

// EmitterNode returns the node to add to the scene.
func (e *ParticleEmitter) EmitterNode() *Node {
	return e.Node
}

// AliveCount returns the number of alive particles.
func (e *ParticleEmitter) AliveCount() int {
	return e.alive
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig {
	return &e.config
}

// Geometry exposes the particle quad buffer.
func (e *ParticleEmitter) Geometry() *QuadGeometry {
	return e.geometry
}

func (e *ParticleEmitter) trackTarget() {
	t := e.target
	if t == nil {
		return
	}
	if t.IsDestroyed() {
		e.target = nil
		return
	}
	e.Node.SetPosition(t.X, t.Y)
	e.Node.Width, e.Node.Height = t.ScaledWidth(), t.ScaledHeight()
}

// update advances particle simulation by dt seconds.
func (e *ParticleEmitter) update(dt float64) {
	e.trackTarget()

	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx += gx
		p.vy += gy
		p.x += p.vx * dt
		p.y += p.vy * dt

		t := 1.0 - p.life/p.maxLife
		p.scale = lerp(p.startScale, p.endScale, t)
		p.alpha = lerp(p.startAlpha, p.endAlpha, t)
		p.color = Color{
			R: lerp(e.config.StartColor.R, e.config.EndColor.R, t),
			G: lerp(e.config.StartColor.G, e.config.EndColor.G, t),
			B: lerp(e.config.StartColor.B, e.config.EndColor.B, t),
		}
		i++
	}

	for ; e.pending > 0; e.pending-- {
		e.spawnParticle()
	}
	if e.on && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			e.spawnParticle()
		}
	}

	if e.autoKill && !e.on && e.alive == 0 {
		e.Node.Destroy()
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *ParticleEmitter) spawnParticle() {
	if e.alive >= len(e.particles) {
		return
	}
	p := &e.particles[e.alive]

	angle := e.config.Angle.Random()
	speed := e.config.Speed.Random()
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed

	p.x = rand.Float64() * e.Node.Width
	p.y = rand.Float64() * e.Node.Height

	p.life = e.config.Lifetime.Random()
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life

	p.startScale = e.config.StartScale.Random()
	p.endScale = e.config.EndScale.Random()
	p.scale = p.startScale

	p.startAlpha = e.config.StartAlpha.Random()
	p.endAlpha = e.config.EndAlpha.Random()
	p.alpha = p.startAlpha
	p.color = e.config.StartColor

	e.alive++
}

// rebuild writes one quad per alive particle, centered on the particle.
// Returns false when the region's texture is not loaded.
func (e *ParticleEmitter) rebuild() bool {
	uv, err := e.config.Region.UV()
	if err != nil {
		return false
	}
	w, h := e.config.Region.Size()
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		hw := float64(w) * p.scale / 2
		hh := float64(h) * p.scale / 2
		e.geometry.SetQuad(i, Quad{
			X1: float32(p.x - hw), X2: float32(p.x + hw),
			Y1: float32(p.y - hh), Y2: float32(p.y + hh),
			U1: uv.Left, U2: uv.Right, V1: uv.Top, V2: uv.Bottom,
		})
	}
	return true
}

// particleLighting combines the node lighting with a particle's color and alpha.
func (e *ParticleEmitter) particleLighting(i int) Lighting {
	p := &e.particles[i]
	l := e.Node.Lighting
	l.RM *= p.color.R
	l.GM *= p.color.G
	l.BM *= p.color.B
	l.AM *= p.alpha
	return l
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
