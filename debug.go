package pixelscene

import (
	"fmt"

	"go.uber.org/zap"
)

// invariantGuard decides what happens when an internal invariant breaks:
// panic in debug mode, log and carry on with a clamped value otherwise.
type invariantGuard struct {
	debug bool
	log   *zap.Logger
}

// violated reports a broken invariant. A nil guard behaves like release mode
// with logging disabled.
func (g *invariantGuard) violated(msg string, fields ...zap.Field) {
	if g == nil {
		return
	}
	if g.debug {
		panic(fmt.Sprintf("pixelscene debug: %s %v", msg, fields))
	}
	if g.log != nil {
		g.log.Warn(msg+", clamping", fields...)
	}
}

// debugMaxTreeDepth is the depth above which logDrawStats warns.
const debugMaxTreeDepth = 32

// treeDepth returns the deepest path below n, n included.
func treeDepth(n *Node) int {
	d := 0
	for _, c := range n.children {
		if cd := treeDepth(c); cd > d {
			d = cd
		}
	}
	return d + 1
}

// logDrawStats logs per-frame backend call counts. Only called in debug mode.
func (s *Scene) logDrawStats(stats RenderStats) {
	log := s.ctx.Logger
	log.Debug("frame",
		zap.String("scene", s.Name),
		zap.Int("commands", stats.Commands),
		zap.Int("draw_calls", stats.DrawCalls),
		zap.Int("texture_binds", stats.TextureBinds),
		zap.Int("blend_changes", stats.BlendChanges),
		zap.Int("uploads", stats.Uploads),
		zap.Int("camera_passes", stats.CameraPasses),
		zap.Int("skipped", stats.SkippedFrames),
	)
	if d := treeDepth(s.root); d > debugMaxTreeDepth {
		log.Warn("tree depth exceeds threshold", zap.Int("depth", d), zap.Int("threshold", debugMaxTreeDepth))
	}
}
