package recaman

import "fmt"

// MaxTerms bounds the number of terms Generate accepts.
const MaxTerms = 10_000_000

// Generate returns the first n terms of the Recamán sequence starting at start.
//
// Term i steps back by i when the result is non-negative and not yet in the
// sequence, otherwise it steps forward by i.
func Generate(n, start int) ([]int, error) {
	if n < 0 || n > MaxTerms {
		return nil, fmt.Errorf("%w: count %d outside [0, %d]", ErrInvalidArgument, n, MaxTerms)
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: start %d is negative", ErrInvalidArgument, start)
	}

	seq := make([]int, 0, n)
	seen := make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		var x int
		if i == 0 {
			x = start
		} else {
			prev := seq[i-1]
			x = prev - i
			if _, dup := seen[x]; x < 0 || dup {
				x = prev + i
			}
		}
		seq = append(seq, x)
		seen[x] = struct{}{}
	}
	return seq, nil
}

// MaxTerm returns the largest value in seq, or 0 for an empty sequence.
func MaxTerm(seq []int) int {
	m := 0
	for _, v := range seq {
		if v > m {
			m = v
		}
	}
	return m
}
