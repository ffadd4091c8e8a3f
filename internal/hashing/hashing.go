// Package hashing derives bit array positions for velocitybloom.
//
// Three unseeded 64-bit hashers are applied to the value's bytes and each
// digest is reduced modulo the bit array length. Insert and lookup must both
// go through Indices, otherwise inserted values could test absent.
package hashing

import (
	"encoding/binary"
	"hash/fnv"
	"math/bits"

	"github.com/dchest/siphash"
)

// Hasher produces a 64-bit digest of a byte sequence.
type Hasher interface {
	Sum64(b []byte) uint64
}

// FNV is 64-bit FNV-1a.
type FNV struct{}

func (FNV) Sum64(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

const fxSeed uint64 = 0x517cc1b727220a95

// Fx is the word-at-a-time multiply/rotate hash known as FxHash.
type Fx struct{}

func (Fx) Sum64(b []byte) uint64 {
	var h uint64
	for len(b) >= 8 {
		h = fxAdd(h, binary.LittleEndian.Uint64(b))
		b = b[8:]
	}
	if len(b) >= 4 {
		h = fxAdd(h, uint64(binary.LittleEndian.Uint32(b)))
		b = b[4:]
	}
	if len(b) >= 2 {
		h = fxAdd(h, uint64(binary.LittleEndian.Uint16(b)))
		b = b[2:]
	}
	if len(b) >= 1 {
		h = fxAdd(h, uint64(b[0]))
	}
	return h
}

func fxAdd(h, word uint64) uint64 {
	return (bits.RotateLeft64(h, 5) ^ word) * fxSeed
}

// Sip is SipHash-2-4 keyed with zeros.
type Sip struct{}

func (Sip) Sum64(b []byte) uint64 {
	return siphash.Hash(0, 0, b)
}

// hashers is the fixed triple used for index derivation, in order.
var hashers = [3]Hasher{FNV{}, Fx{}, Sip{}}

// Indices returns one position in [0, m) per hasher. Duplicate positions are
// kept. Panics if m is zero.
func Indices(value []byte, m uint64) [3]uint64 {
	if m == 0 {
		panic("hashing: zero-length bit array")
	}
	var idx [3]uint64
	for i, h := range hashers {
		idx[i] = h.Sum64(value) % m
	}
	return idx
}
