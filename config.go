package velocitybloom

// Config holds the options recognized by NewWithConfig.
type Config struct {
	Bits uint // Total length of the bit array.
}

// DefaultConfig returns a Config with a 1024 bit array.
func DefaultConfig() Config {
	return Config{Bits: DefaultBits}
}

// Validate reports ErrZeroBits when the bit array would be empty.
func (c Config) Validate() error {
	if c.Bits == 0 {
		return ErrZeroBits
	}
	return nil
}
