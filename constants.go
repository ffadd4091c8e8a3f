package velocitybloom

const (
	DefaultBits   = 1024 // Default size of the bit array.
	HashFunctions = 3    // Number of hash functions, fixed.
	wordBits      = 64   // Bits per packed word of the bit array.
)
