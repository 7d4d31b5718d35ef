package facematch

import (
	"math"

	"voteguard/models"
)

// Distance computes the Euclidean distance between two embeddings.
// Embeddings of different lengths (or zero length) are incomparable and
// yield +Inf, a guaranteed non-match, so a malformed capture can never
// falsely flag a duplicate.
func Distance(a, b models.Embedding) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
