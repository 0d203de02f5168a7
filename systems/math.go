package systems

import "math"

// normalizeHeading wraps an angle to [0, 2π).
func normalizeHeading(h float64) float64 {
	const twoPi = 2 * math.Pi
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	// math.Mod of a tiny negative can round up to exactly 2π.
	if h >= twoPi {
		h = 0
	}
	return h
}

// parity returns +1 for even n and -1 for odd n, including negatives.
func parity(n int) float64 {
	if n%2 == 0 {
		return 1
	}
	return -1
}
