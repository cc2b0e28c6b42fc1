package gf2

// IsZeroVec returns true when every entry of v is zero.
func IsZeroVec(v []uint8) bool {
	for _, b := range v {
		if b&1 == 1 {
			return false
		}
	}
	return true
}

//HammingWeight counts the ones in v.
func HammingWeight(v []uint8) int {
	count := 0
	for _, b := range v {
		count += int(b & 1)
	}
	return count
}

// HammingDistance calculates number of bits different.
// If a and b are different sizes it assumes they are
// both aligned with the zero index (the difference is at the end)
func HammingDistance(a, b []uint8) int {
	min, max := len(a), len(b)
	if min > max {
		min, max = max, min
	}
	count := 0
	for i := 0; i < min; i++ {
		if a[i]&1 != b[i]&1 {
			count++
		}
	}
	return max - min + count
}
