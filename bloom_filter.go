// Package velocitybloom is a fixed-size bloom filter with three fixed hash
// functions. Queries answer Absent or PossiblyPresent, never a bare bool.
package velocitybloom

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/danish45007/velocitybloom/internal/hashing"
)

// ByteView is any value the filter can read as a byte sequence.
type ByteView interface {
	~[]byte | ~string
}

// Filter is a fixed-size bloom filter over values of type T.
// It is not safe for concurrent Insert; see SyncFilter.
type Filter[T ByteView] struct {
	bits *bitset.BitSet // Membership bits, never cleared.
	size uint           // Length of bits, fixed at construction.
}

// New creates a Filter with the default configuration.
func New[T ByteView]() *Filter[T] {
	return newFilter[T](DefaultBits)
}

// NewWithConfig creates a Filter with cfg.Bits bits, all unset.
// A zero-length bit array is rejected with ErrZeroBits.
func NewWithConfig[T ByteView](cfg Config) (*Filter[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newFilter[T](cfg.Bits), nil
}

// MustNewWithConfig is like NewWithConfig but panics on an invalid config.
func MustNewWithConfig[T ByteView](cfg Config) *Filter[T] {
	f, err := NewWithConfig[T](cfg)
	if err != nil {
		panic(err)
	}
	return f
}

func newFilter[T ByteView](size uint) *Filter[T] {
	return &Filter[T]{
		bits: bitset.New(size),
		size: size,
	}
}

// Insert adds value to the filter. Inserting the same value again has no effect.
func (f *Filter[T]) Insert(value T) {
	for _, idx := range f.hashIndices(value) {
		f.bits.Set(uint(idx))
	}
}

// Contains reports Absent if value was never inserted and PossiblyPresent otherwise.
// PossiblyPresent may be a false positive.
func (f *Filter[T]) Contains(value T) ContainsResponse {
	for _, idx := range f.hashIndices(value) {
		if !f.bits.Test(uint(idx)) {
			return Absent
		}
	}
	return PossiblyPresent
}

// Bits returns the length of the bit array.
func (f *Filter[T]) Bits() uint {
	return f.size
}

// hashIndices is the only place positions are derived, for Insert and Contains alike.
func (f *Filter[T]) hashIndices(value T) [HashFunctions]uint64 {
	return hashing.Indices([]byte(value), uint64(f.size))
}

// Words returns a copy of the bit array packed into 64-bit words,
// bit i at word i/64, position i%64.
func (f *Filter[T]) Words() []uint64 {
	words := f.bits.Bytes()
	out := make([]uint64, len(words))
	copy(out, words)
	return out
}

// FromWords rebuilds a Filter from its length and the words returned by Words.
func FromWords[T ByteView](bits uint, words []uint64) (*Filter[T], error) {
	if bits == 0 {
		return nil, ErrZeroBits
	}
	if uint(len(words)) != wordsFor(bits) {
		return nil, ErrWordCount
	}
	if tail := bits % wordBits; tail != 0 && words[len(words)-1]>>tail != 0 {
		return nil, ErrBitsOutRange
	}
	set := make([]uint64, len(words))
	copy(set, words)
	return &Filter[T]{
		bits: bitset.FromWithLength(bits, set),
		size: bits,
	}, nil
}

// wordsFor rounds up without overflowing near the top of the uint range.
func wordsFor(bits uint) uint {
	n := bits / wordBits
	if bits%wordBits != 0 {
		n++
	}
	return n
}
