package velocitybloom

import "errors"

var (
	ErrZeroBits     = errors.New("velocitybloom: bits must be positive")
	ErrWordCount    = errors.New("velocitybloom: word count does not match bits")
	ErrBitsOutRange = errors.New("velocitybloom: bit set beyond capacity")
)
