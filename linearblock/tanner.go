package linearblock

import "github.com/nathanhack/ldpc/gf2"

// Tanner is the bipartite graph of a parity matrix. CheckToVars[i] lists the
// variable (column) indices of check i, VarToChecks[j] the check (row)
// indices of variable j. Both are sorted.
type Tanner struct {
	CheckToVars [][]int
	VarToChecks [][]int
}

func NewTanner(H *gf2.Matrix) *Tanner {
	rows, cols := H.Dims()
	t := &Tanner{
		CheckToVars: make([][]int, rows),
		VarToChecks: make([][]int, cols),
	}
	for i := 0; i < rows; i++ {
		t.CheckToVars[i] = H.RowNonzero(i)
		for _, j := range t.CheckToVars[i] {
			t.VarToChecks[j] = append(t.VarToChecks[j], i)
		}
	}
	return t
}

// Edges returns the number of ones in H.
func (t *Tanner) Edges() int {
	count := 0
	for _, vars := range t.CheckToVars {
		count += len(vars)
	}
	return count
}
