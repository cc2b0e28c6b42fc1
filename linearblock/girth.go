package linearblock

import (
	"context"
	"math"
	"sync"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/threadpool"
)

type girthNode struct {
	parentIndex int
}

// CalculateGirth calculates the girth of the tanner graph induced by H.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func CalculateGirth(ctx context.Context, H *gf2.Matrix, threads int) int {
	return CalculateGirthLowerBound(ctx, H, -1, threads)
}

// CalculateGirthLowerBound returns the length of the smallest cycle.
// It searches for cycles with a length <= smallestGirth. If no cycles are found
// that are smaller or equal to smallestGirth then it returns -1.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func CalculateGirthLowerBound(ctx context.Context, H *gf2.Matrix, smallestGirth, threads int) int {
	if smallestGirth != -1 && (smallestGirth < 4 || smallestGirth%2 != 0) {
		panic("smallestGirth == -1 or smallestGirth must be a even number >=4")
	}

	tanner := NewTanner(H)
	pool := threadpool.NewFixedSize(ctx, threads, len(tanner.CheckToVars))
	calculated := -1
	mux := sync.RWMutex{}
	for i := range tanner.CheckToVars {
		index := i
		pool.Add(func() {
			mux.RLock()
			limit := smallestGirth
			mux.RUnlock()

			g := CalculateCycleLowerBound(ctx, tanner, index, limit)

			mux.Lock()
			if g > 0 && (g <= smallestGirth || smallestGirth == -1) {
				smallestGirth = g
				calculated = g
			}
			mux.Unlock()
		})
	}
	pool.Wait()
	return calculated
}

// CalculateCycleLowerBound runs a BFS starting at the checkIndex check node, for maxGirth/2 steps
// if maxGirth ==-1 it will search until it finds a cycle
// in either case it returns the length of the cycle (up to maxGirth) or -1 if no cycle was found
func CalculateCycleLowerBound(ctx context.Context, tanner *Tanner, checkIndex, maxGirth int) int {
	if maxGirth == -1 {
		maxGirth = math.MaxInt64
	}
	rows := len(tanner.CheckToVars)

	//we prime the history with the variable nodes of the check
	prevHop := make(map[int]girthNode)
	for _, i := range tanner.CheckToVars[checkIndex] {
		prevHop[i] = girthNode{parentIndex: checkIndex}
	}
	//if there was only one variable node (or less than 1) then there is no way
	// this will have a loop
	if len(prevHop) <= 1 {
		return -1
	}

	for level := 1; level < 2*rows && level < maxGirth/2+1; level++ {
		select {
		case <-ctx.Done():
			return -1
		default:
		}

		//odd levels hold check nodes, even levels hold variable nodes
		hop := make(map[int]girthNode)
		for v, gn := range prevHop {
			levelHop := level % 2
			var indices []int
			if levelHop == 0 {
				indices = tanner.CheckToVars[v]
			} else {
				indices = tanner.VarToChecks[v]
			}
			for _, i := range indices {
				if i == gn.parentIndex {
					continue
				}
				_, has := hop[i]
				if has || (levelHop == 1 && i == checkIndex) {
					return (level + 1) * 2
				}
				hop[i] = girthNode{parentIndex: v}
			}
		}
		if len(hop) == 0 {
			return -1
		}
		prevHop = hop
	}
	return -1
}
