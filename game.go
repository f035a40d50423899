package pixelscene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws an FPS/TPS readout over every frame.
	ShowFPS bool
	// ScreenshotKey enables F12 captures into Config.ScreenshotDir.
	ScreenshotKey bool
}

// Game drives one scene at a time as an ebiten.Game: it polls input into
// the scene, advances it at the tick rate, draws it through an EbitenBatch
// and reports display size changes as Scene.Resize.
type Game struct {
	ctx    *Context
	scene  *Scene
	batch  *EbitenBatch
	poller *InputPoller

	next      *Scene
	keepNext  bool
	pointers  []PointerEvent
	keys      []KeyEvent
	outW      int
	outH      int
	fps       *fpsOverlay
	lastStats RenderStats
	shots     []string
	shotKey   bool
}

// NewGame creates the game loop for ctx and creates first.
func NewGame(ctx *Context, first *Scene) (*Game, error) {
	batch, err := NewEbitenBatch()
	if err != nil {
		return nil, err
	}
	d := ctx.Display()
	g := &Game{
		ctx:    ctx,
		scene:  first,
		batch:  batch,
		poller: NewInputPoller(DefaultKeyBindings()),
		outW:   d.Width,
		outH:   d.Height,
	}
	if !first.Created() {
		first.Create()
	}
	return g, nil
}

// Scene returns the running scene.
func (g *Game) Scene() *Scene { return g.scene }

// Input returns the input poller, whose bindings may be replaced.
func (g *Game) Input() *InputPoller { return g.poller }

// Stats returns the backend counts of the last drawn frame.
func (g *Game) Stats() RenderStats { return g.lastStats }

// SwitchScene replaces the running scene at the start of the next tick.
// Open windows are discarded.
func (g *Game) SwitchScene(next *Scene) {
	g.next, g.keepNext = next, false
}

// ResetScene replaces the running scene at the start of the next tick,
// carrying its open windows over when next has the same name.
func (g *Game) ResetScene(next *Scene) {
	g.next, g.keepNext = next, true
}

func (g *Game) applySwitch() {
	next := g.next
	g.next = nil
	if g.keepNext {
		g.scene.SaveWindows()
	}
	g.scene.Destroy()
	g.scene = next
	next.Create()
	n := next.RestoreWindows()
	g.ctx.Logger.Info("scene switched", zap.String("scene", next.Name), zap.Int("windows_restored", n))
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.next != nil {
		g.applySwitch()
	}
	if g.shotKey && inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.Screenshot(g.scene.Name)
	}
	dt := 1.0 / float64(ebiten.TPS())
	g.pointers, g.keys = g.poller.Poll(g.pointers[:0], g.keys[:0])
	for _, e := range g.pointers {
		g.scene.HandlePointer(e)
	}
	for _, e := range g.keys {
		g.scene.HandleKey(e)
	}
	g.scene.Update(dt)
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.batch.Begin(screen)
	g.lastStats = g.scene.Draw(g.batch)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The scene renders at the outside size; a
// change of size recomputes the zoom and letterboxing.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outW || outsideHeight != g.outH {
		g.outW, g.outH = outsideWidth, outsideHeight
		g.scene.Resize(DisplayMetrics{
			Width:   outsideWidth,
			Height:  outsideHeight,
			Density: g.ctx.Display().Density,
		})
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs first until the window is closed.
func Run(ctx *Context, first *Scene, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g, err := NewGame(ctx, first)
	if err != nil {
		return err
	}
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}
	g.shotKey = cfg.ScreenshotKey
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("pixelscene: run game: %w", err)
	}
	return nil
}
