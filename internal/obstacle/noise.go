package obstacle

// Deterministic per-spawn jitter: hash-based pseudo-random values so a fixed
// seed reproduces the same obstacle layout run-to-run.

// hash2D maps integer lattice coordinates to a deterministic pseudo-random
// float in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

// sizeJitter returns a size multiplier in [0.6, 1.4] for the n-th spawn.
func sizeJitter(seed int64, n uint64) float32 {
	h := hash2D(int32(n), 0, int32(seed))
	return 0.6 + h*0.8
}

// offsetJitter returns a value in [0,1] for the n-th spawn on the given
// jitter channel (0 = lateral, 1 = vertical).
func offsetJitter(seed int64, n uint64, channel int32) float32 {
	return hash2D(int32(n), channel+1, int32(seed))
}
