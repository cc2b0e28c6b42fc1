package internal

import (
	"github.com/nathanhack/ldpc/gf2"
)

// ColumnSwapped returns a copy of H with column c taken from column order[c] of H.
func ColumnSwapped(H *gf2.Matrix, order []int) *gf2.Matrix {
	return H.PermuteColumns(order)
}

//ValidateHGMatrices tests if G*H.T ==0 where H.T is the transpose of H
func ValidateHGMatrices(G, H *gf2.Matrix) bool {
	if G == nil || H == nil {
		return false
	}
	rows, gcols := G.Dims()
	_, hcols := H.Dims()
	if gcols != hcols {
		return false
	}

	for i := 0; i < rows; i++ {
		//equiv to H*g^T for row g of G
		if !gf2.IsZeroVec(H.MulVec(G.Row(i))) {
			return false
		}
	}
	return true
}
