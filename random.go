// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import (
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
)

// Seeded pseudo-random number effect.
//
// The resource is an int64 seed. Each draw derives the next seed from the
// current one with a fixed deterministic transform, so a fixed seed yields
// an identical sequence across runs. The transform is xxhash mixing of the
// seed bytes; no statistical or bit-exact compatibility with any particular
// generator is promised, only seed-determinism.

// DefaultSeed is the seed used when a run supplies no explicit one.
const DefaultSeed int64 = 123456789

// ErrEmptyRange is the failure value of an RndInt draw with hi < lo.
var ErrEmptyRange = errors.New("eff: empty random range")

// nextSeed is the deterministic seed transform.
func nextSeed(s int64) int64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(s))
	return int64(xxhash.Sum64(b[:]))
}

// Srand is the effect operation for setting the seed.
type Srand struct {
	Phantom[struct{}]
	Seed int64
}

// Sig implements Operation.
func (Srand) Sig() Sig { return sigAt(KindRand, seedType) }

// DispatchRand handles Srand in rand handler dispatch.
func (o Srand) DispatchRand(Resource) Outcome {
	return resume(o.Seed, struct{}{})
}

// RndInt is the effect operation for drawing a value in [Lo, Hi].
type RndInt struct {
	Phantom[int64]
	Lo, Hi int64
}

// Sig implements Operation.
func (RndInt) Sig() Sig { return sigAt(KindRand, seedType) }

// DispatchRand handles RndInt in rand handler dispatch.
func (o RndInt) DispatchRand(r Resource) Outcome {
	if o.Hi < o.Lo {
		return Outcome{Failed: true, Raised: ErrEmptyRange}
	}
	seed := nextSeed(r.(int64))
	span := uint64(o.Hi-o.Lo) + 1
	return resume(seed, o.Lo+int64(uint64(seed)%span))
}

// RndFin is the effect operation for drawing a bounded value in [0, K].
type RndFin struct {
	Phantom[int64]
	K int64
}

// Sig implements Operation.
func (RndFin) Sig() Sig { return sigAt(KindRand, seedType) }

// DispatchRand handles RndFin in rand handler dispatch.
func (o RndFin) DispatchRand(r Resource) Outcome {
	return RndInt{Lo: 0, Hi: o.K}.DispatchRand(r)
}

// SeedRand performs Srand, replacing the seed.
func SeedRand(seed int64) Comp[struct{}] { return Perform(Srand{Seed: seed}) }

// RandInt performs RndInt, drawing a value in [lo, hi].
func RandInt(lo, hi int64) Comp[int64] { return Perform(RndInt{Lo: lo, Hi: hi}) }

// RandFin performs RndFin, drawing a value in [0, k].
func RandFin(k int64) Comp[int64] { return Perform(RndFin{K: k}) }
