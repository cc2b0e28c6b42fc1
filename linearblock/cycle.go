package linearblock

import "github.com/nathanhack/ldpc/gf2"

// Count4Cycles counts the length 4 cycles of the Tanner graph of H. Only the
// first wc ones of each column are considered. Every pair of columns sharing
// s rows contributes s choose 2 cycles.
func Count4Cycles(H *gf2.Matrix, wc int) int {
	columns := NewTanner(H).VarToChecks
	for j, checks := range columns {
		if len(checks) > wc {
			columns[j] = checks[:wc]
		}
	}

	count := 0
	for a := 0; a < len(columns); a++ {
		for b := a + 1; b < len(columns); b++ {
			s := sharedCount(columns[a], columns[b])
			count += s * (s - 1) / 2
		}
	}
	return count
}

// sharedCount returns the size of the intersection of two sorted index lists.
func sharedCount(a, b []int) int {
	count := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			count++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return count
}
