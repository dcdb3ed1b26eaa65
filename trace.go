// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// tracer emits one structured debug record per handler dispatch, tagged
// with a per-run id. The nop logger short-circuits before any field is
// built.
type tracer struct {
	log     *zap.Logger
	enabled bool
	step    int
}

func newTracer(log *zap.Logger, context string) *tracer {
	if log == nil {
		log = zap.NewNop()
	}
	t := &tracer{enabled: log.Core().Enabled(zapcore.DebugLevel)}
	if t.enabled {
		t.log = log.With(
			zap.String("run", uuid.NewString()),
			zap.String("context", context),
		)
	}
	return t
}

func (t *tracer) dispatched(op Operation, depth int) {
	if !t.enabled {
		return
	}
	t.step++
	t.log.Debug("dispatch",
		zap.Stringer("kind", op.Sig().Kind),
		zap.String("op", fmt.Sprintf("%T", op)),
		zap.Int("depth", depth),
		zap.Int("step", t.step),
	)
}

func (t *tracer) forked(op Operation, branches, depth int) {
	if !t.enabled {
		return
	}
	t.log.Debug("fork",
		zap.Stringer("kind", op.Sig().Kind),
		zap.Int("branches", branches),
		zap.Int("depth", depth),
	)
}

func (t *tracer) failed(raised any, depth int) {
	if !t.enabled {
		return
	}
	t.log.Debug("failure",
		zap.Any("raised", raised),
		zap.Int("depth", depth),
	)
}
