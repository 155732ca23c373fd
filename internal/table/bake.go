package table

import (
	"go.uber.org/zap"

	"github.com/Faultbox/tablecraft/internal/logger"
)

// BakeShadows runs a full bake of frames frames from a cleared buffer. It
// blocks until every frame is blended.
func (m *Model) BakeShadows(frames int) {
	m.baker.Bake(frames)
	logger.Debug("shadows baked", zap.Int("frames", frames))
}

// ResetShadowBake clears the baked shadow. With a finite frame budget the
// bake is redone immediately; otherwise the buffer stays cleared until
// AccumulateShadows is called.
func (m *Model) ResetShadowBake() {
	m.baker.Reset()
}

// AccumulateShadows blends frames more frames into the current bake without
// clearing it.
func (m *Model) AccumulateShadows(frames int) {
	m.baker.Accumulate(frames)
}
