// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"code.hybscloud.com/eff"
)

func TestTraceRecordsDispatches(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	comp := eff.Then(eff.PutState(1), eff.GetState[int]())
	v, ok := eff.RunMaybe(comp, eff.WithLogger(logger)).Get()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	dispatches := logs.FilterMessage("dispatch").All()
	require.Len(t, dispatches, 2)
	for _, entry := range dispatches {
		fields := entry.ContextMap()
		assert.Equal(t, "state", fields["kind"])
		assert.Equal(t, "maybe", fields["context"])
		assert.NotEmpty(t, fields["run"])
	}
	// Both dispatches belong to the same run.
	assert.Equal(t,
		dispatches[0].ContextMap()["run"],
		dispatches[1].ContextMap()["run"],
	)
}

func TestTraceRecordsForksAndFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	comp := eff.Bind(eff.Choose([]int{1, 2}), func(n int) eff.Comp[int] {
		return eff.Then(eff.Guard(n == 2), eff.Pure(n))
	})
	got := eff.RunList(comp, eff.WithLogger(logger))
	assert.Equal(t, []int{2}, got)

	assert.NotEmpty(t, logs.FilterMessage("fork").All())
	assert.NotEmpty(t, logs.FilterMessage("failure").All())
}

func TestTraceSilentWithoutLogger(t *testing.T) {
	// Smoke test: no logger configured, nothing panics, nothing is emitted.
	v, ok := eff.RunMaybe(eff.Pure("quiet")).Get()
	require.True(t, ok)
	assert.Equal(t, "quiet", v)
}

func TestTraceDistinctRunIDs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	comp := eff.GetState[int]()
	eff.RunMaybe(comp, eff.WithLogger(logger))
	eff.RunMaybe(comp, eff.WithLogger(logger))

	dispatches := logs.FilterMessage("dispatch").All()
	require.Len(t, dispatches, 2)
	assert.NotEqual(t,
		dispatches[0].ContextMap()["run"],
		dispatches[1].ContextMap()["run"],
	)
}
