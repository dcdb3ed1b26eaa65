// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eff"
)

// requireCompositionError runs fn, requiring that it panics with a
// *CompositionError, and returns it.
func requireCompositionError(t *testing.T, fn func()) *eff.CompositionError {
	t.Helper()
	var cerr *eff.CompositionError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a composition-error panic")
			var ok bool
			cerr, ok = r.(*eff.CompositionError)
			require.True(t, ok, "panic value %v is not a *CompositionError", r)
		}()
		fn()
	}()
	return cerr
}

// appendLog appends tag to a string state and returns the new log. Used to
// observe evaluation order.
func appendLog(tag string) eff.Comp[string] {
	return eff.UpdateState(func(s string) string { return s + tag })
}
