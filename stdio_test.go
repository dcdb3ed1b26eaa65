// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eff"
)

func TestConsoleGreeting(t *testing.T) {
	comp := eff.Then(
		eff.WriteStr("name? "),
		eff.Bind(eff.ReadLine(), func(name string) eff.Comp[string] {
			return eff.Then(eff.WriteLine("hello, "+name), eff.Pure(name))
		}),
	)
	console := eff.NewScriptConsole("world\n")

	v, err := eff.RunIO(comp, eff.WithConsole(console))
	require.NoError(t, err)
	assert.Equal(t, "world", v)
	assert.Equal(t, "name? hello, world\n", console.Output())
}

func TestConsoleCharRoundtrip(t *testing.T) {
	comp := eff.Bind(eff.ReadChar(), func(ch rune) eff.Comp[rune] {
		return eff.Then(eff.WriteChar(ch), eff.Pure(ch))
	})
	console := eff.NewScriptConsole("x")

	v, err := eff.RunIO(comp, eff.WithConsole(console))
	require.NoError(t, err)
	assert.Equal(t, 'x', v)
	assert.Equal(t, "x", console.Output())
}

func TestConsoleReadPastScriptFails(t *testing.T) {
	console := eff.NewScriptConsole("")
	_, err := eff.RunIO(eff.ReadLine(), eff.WithConsole(console))
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsoleEOFIsCatchable(t *testing.T) {
	comp := eff.Catch(
		eff.ReadLine(),
		func(error) eff.Comp[string] { return eff.Pure("<default>") },
	)
	console := eff.NewScriptConsole("")

	v, err := eff.RunIO(comp, eff.WithConsole(console))
	require.NoError(t, err)
	assert.Equal(t, "<default>", v)
}

func TestConsoleRejectedOutsideIOContext(t *testing.T) {
	cerr := requireCompositionError(t, func() {
		eff.RunList(eff.WriteLine("nope"))
	})
	assert.Equal(t, eff.KindConsole, cerr.Kind)
}

func TestConsoleMixedWithOtherEffects(t *testing.T) {
	// Read a line, stash it in state, echo it back uppercase the cheap way.
	comp := eff.Bind(eff.ReadLine(), func(line string) eff.Comp[string] {
		return eff.Then(
			eff.PutState(line),
			eff.Bind(eff.GetState[string](), func(s string) eff.Comp[string] {
				return eff.Then(eff.WriteLine(s), eff.Pure(s))
			}),
		)
	})
	console := eff.NewScriptConsole("ping\n")

	v, err := eff.RunIO(comp, eff.WithConsole(console))
	require.NoError(t, err)
	assert.Equal(t, "ping", v)
	assert.Equal(t, "ping\n", console.Output())
}

func TestScriptConsoleMultipleLines(t *testing.T) {
	comp := eff.Map2(
		func(a, b string) string { return a + "|" + b },
		eff.ReadLine(),
		eff.ReadLine(),
	)
	console := eff.NewScriptConsole("one\ntwo\n")

	v, err := eff.RunIO(comp, eff.WithConsole(console))
	require.NoError(t, err)
	assert.Equal(t, "one|two", v)
}
