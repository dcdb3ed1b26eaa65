// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eff"
)

const propertyN = 1000

func TestPureSucceedsInEveryContext(t *testing.T) {
	comp := eff.Pure(42)

	either := eff.RunEither[string, int](comp)
	v, ok := either.GetRight()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	maybe := eff.RunMaybe(comp)
	v, ok = maybe.Get()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	assert.Equal(t, []int{42}, eff.RunList(comp))

	v, err := eff.RunIO(comp)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestPureEmptyEffectList(t *testing.T) {
	comp := eff.Pure("x")
	assert.Empty(t, comp.Requires())
	assert.Empty(t, comp.Ensures())
}

func TestMap2LeftToRightOnceEach(t *testing.T) {
	h, final := eff.NewStateHandler("")
	comp := eff.Map2(
		func(a, b string) int { return len(a) + len(b) },
		appendLog("a"),
		appendLog("b"),
	)
	res := eff.RunMaybe(comp, eff.WithHandler(h))
	require.True(t, res.IsSome())
	assert.Equal(t, "ab", final())
}

func TestMap3LeftToRightOnceEach(t *testing.T) {
	h, final := eff.NewStateHandler("")
	comp := eff.Map3(
		func(a, b, c string) string { return c },
		appendLog("a"),
		appendLog("b"),
		appendLog("c"),
	)
	res := eff.RunMaybe(comp, eff.WithHandler(h))
	v, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", v)
	assert.Equal(t, "abc", final())
}

func TestThenDiscardsFirstResult(t *testing.T) {
	comp := eff.Then(eff.PutState(7), eff.GetState[int]())
	v, ok := eff.RunMaybe(comp).Get()
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

// --- Monad laws ---

func runMaybeInt(m eff.Comp[int]) eff.Maybe[int] {
	return eff.RunMaybe(m)
}

// TestPropertyBindLeftIdentity: Bind(Pure(a), f) ≡ f(a)
func TestPropertyBindLeftIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := rng.IntN(2001) - 1000
		f := func(x int) eff.Comp[int] { return eff.Pure(x * 3) }
		left := runMaybeInt(eff.Bind(eff.Pure(a), f))
		right := runMaybeInt(f(a))
		if left != right {
			t.Fatalf("left identity: %v != %v (a=%d)", left, right, a)
		}
	}
}

// TestPropertyBindRightIdentity: Bind(m, Pure) ≡ m
func TestPropertyBindRightIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := rng.IntN(2001) - 1000
		m := eff.Pure(a)
		left := runMaybeInt(eff.Bind(m, eff.Pure))
		right := runMaybeInt(m)
		if left != right {
			t.Fatalf("right identity: %v != %v (a=%d)", left, right, a)
		}
	}
}

// TestPropertyBindAssociativity:
// Bind(Bind(m, f), g) ≡ Bind(m, func(x) Bind(f(x), g))
func TestPropertyBindAssociativity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := rng.IntN(2001) - 1000
		m := eff.Pure(a)
		f := func(x int) eff.Comp[int] { return eff.Pure(x + 3) }
		g := func(x int) eff.Comp[int] { return eff.Pure(x * 2) }
		left := runMaybeInt(eff.Bind(eff.Bind(m, f), g))
		right := runMaybeInt(eff.Bind(m, func(x int) eff.Comp[int] {
			return eff.Bind(f(x), g)
		}))
		if left != right {
			t.Fatalf("associativity: %v != %v (a=%d)", left, right, a)
		}
	}
}

// TestPropertyBindEffectfulAssociativity exercises the laws through a
// stateful computation rather than pure values.
func TestPropertyBindEffectfulAssociativity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for range propertyN {
		a := rng.IntN(100)
		m := eff.UpdateState(func(s int) int { return s + a })
		f := func(x int) eff.Comp[int] { return eff.UpdateState(func(s int) int { return s * 2 }) }
		g := func(x int) eff.Comp[int] { return eff.Pure(x + 1) }

		hl, finall := eff.NewStateHandler(1)
		left := eff.RunMaybe(eff.Bind(eff.Bind(m, f), g), eff.WithHandler(hl))
		hr, finalr := eff.NewStateHandler(1)
		right := eff.RunMaybe(eff.Bind(m, func(x int) eff.Comp[int] {
			return eff.Bind(f(x), g)
		}), eff.WithHandler(hr))

		if left != right || finall() != finalr() {
			t.Fatalf("effectful associativity: %v/%d != %v/%d (a=%d)",
				left, finall(), right, finalr(), a)
		}
	}
}
