/*
Package snapshot persists velocitybloom filters.

A snapshot is a protobuf message, encoded by hand with protowire:

	1 bits           varint   length of the bit array
	2 hash_functions varint   always 3
	3 bitset         bytes    ceil(bits/8) bytes, bit i in byte i/8 at position i%8
	4 checksum       fixed32  murmur3 32-bit sum of the bitset bytes

On disk the message is preceded by its length as a little-endian int64.
*/
package snapshot

import (
	"errors"
	"fmt"
	"math"

	"github.com/spaolacci/murmur3"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/danish45007/velocitybloom"
)

const (
	fieldBits          protowire.Number = 1
	fieldHashFunctions protowire.Number = 2
	fieldBitset        protowire.Number = 3
	fieldChecksum      protowire.Number = 4
)

var (
	ErrCorruptSnapshot          = errors.New("snapshot: corrupt snapshot")
	ErrChecksumMismatch         = errors.New("snapshot: bitset checksum mismatch")
	ErrUnsupportedHashFunctions = errors.New("snapshot: unsupported hash function count")
)

// Source is what a snapshot is taken from: a Filter or a SyncFilter.
type Source interface {
	Bits() uint
	Words() []uint64
}

// Marshal encodes the current state of src.
func Marshal(src Source) []byte {
	bits := src.Bits()
	bitset := wordsToBytes(src.Words(), bits)

	var b []byte
	b = protowire.AppendTag(b, fieldBits, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(bits))
	b = protowire.AppendTag(b, fieldHashFunctions, protowire.VarintType)
	b = protowire.AppendVarint(b, velocitybloom.HashFunctions)
	b = protowire.AppendTag(b, fieldBitset, protowire.BytesType)
	b = protowire.AppendBytes(b, bitset)
	b = protowire.AppendTag(b, fieldChecksum, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, murmur3.Sum32(bitset))
	return b
}

// Unmarshal decodes a snapshot produced by Marshal into a new Filter.
func Unmarshal[T velocitybloom.ByteView](data []byte) (*velocitybloom.Filter[T], error) {
	var (
		bits, hashFunctions uint64
		bitset              []byte
		checksum            uint32
		seenBits, seenSum   bool
	)

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldBits && typ == protowire.VarintType:
			bits, n = protowire.ConsumeVarint(data)
			seenBits = true
		case num == fieldHashFunctions && typ == protowire.VarintType:
			hashFunctions, n = protowire.ConsumeVarint(data)
		case num == fieldBitset && typ == protowire.BytesType:
			bitset, n = protowire.ConsumeBytes(data)
		case num == fieldChecksum && typ == protowire.Fixed32Type:
			checksum, n = protowire.ConsumeFixed32(data)
			seenSum = true
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: field %d: %w", ErrCorruptSnapshot, num, protowire.ParseError(n))
		}
		data = data[n:]
	}

	if !seenBits || bits == 0 {
		return nil, fmt.Errorf("%w: missing bits", ErrCorruptSnapshot)
	}
	if hashFunctions != velocitybloom.HashFunctions {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedHashFunctions, hashFunctions)
	}
	if bits > math.MaxUint {
		return nil, fmt.Errorf("%w: %d bits exceeds platform range", ErrCorruptSnapshot, bits)
	}
	if uint64(len(bitset)) != bytesFor(bits) {
		return nil, fmt.Errorf("%w: bitset is %d bytes for %d bits", ErrCorruptSnapshot, len(bitset), bits)
	}
	if !seenSum {
		return nil, fmt.Errorf("%w: missing checksum", ErrCorruptSnapshot)
	}
	if murmur3.Sum32(bitset) != checksum {
		return nil, ErrChecksumMismatch
	}

	f, err := velocitybloom.FromWords[T](uint(bits), bytesToWords(bitset))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return f, nil
}

func wordsToBytes(words []uint64, bits uint) []byte {
	out := make([]byte, bytesFor(uint64(bits)))
	for i := range out {
		out[i] = byte(words[i/8] >> (8 * (i % 8)))
	}
	return out
}

func bytesFor(bits uint64) uint64 {
	n := bits / 8
	if bits%8 != 0 {
		n++
	}
	return n
}

func bytesToWords(b []byte) []uint64 {
	words := make([]uint64, (len(b)+7)/8)
	for i, v := range b {
		words[i/8] |= uint64(v) << (8 * (i % 8))
	}
	return words
}
