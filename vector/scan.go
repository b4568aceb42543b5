package vector

import (
	"math"
)

// NoDistance is returned when a set holds less than two vectors;
// it is larger than any real distance so min() folding stays safe
const NoDistance = math.MaxInt

// ScanResult holds the outcome of a pruned pairwise scan
type ScanResult struct {
	Min          int
	TotalPairs   int64
	SkippedPairs int64
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// MinHamming finds the minimum pairwise distance inside vecs, starting
// from currMin. The first vector is a pivot: distances to it are always
// computed, and a pair is skipped when |d(p,a) - d(p,b)| is already
// greater than the running minimum. Skipped pairs still count as pairs.
func MinHamming(vecs []Binary, currMin int) (ScanResult, error) {
	n := len(vecs)
	if n < 2 {
		return ScanResult{Min: NoDistance}, nil
	}
	res := ScanResult{}
	minDist := currMin
	pivot := vecs[0]
	pivotDists := make([]int, n)
	for i := 1; i < n; i++ {
		d, err := Hamming(pivot, vecs[i])
		if err != nil {
			return ScanResult{}, err
		}
		pivotDists[i] = d
		res.TotalPairs++
		if d < minDist {
			minDist = d
		}
	}
	for i := 1; i < n; i++ {
		for j := i + 1; j < n; j++ {
			res.TotalPairs++
			// equal bound is not skipped
			if absDiff(pivotDists[i], pivotDists[j]) > minDist {
				res.SkippedPairs++
				continue
			}
			d, err := Hamming(vecs[i], vecs[j])
			if err != nil {
				return ScanResult{}, err
			}
			if d < minDist {
				minDist = d
			}
		}
	}
	res.Min = minDist
	return res, nil
}

// BruteForceMin compares every pair; returns NoDistance for less than two vectors
func BruteForceMin(vecs []Binary) (int, error) {
	minDist := NoDistance
	for i := range vecs {
		for j := i + 1; j < len(vecs); j++ {
			d, err := Hamming(vecs[i], vecs[j])
			if err != nil {
				return 0, err
			}
			if d < minDist {
				minDist = d
			}
		}
	}
	return minDist, nil
}

// PairsCount returns n*(n-1)/2
func PairsCount(n int) int64 {
	if n < 2 {
		return 0
	}
	return int64(n) * int64(n-1) / 2
}
