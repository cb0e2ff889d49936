// Package vote implements the vote aggregator (C6): clipped per-label
// vote sums for the classifier and the scalar vote for the regressor,
// plus the Argmax used to turn a classifier's per-label votes into a
// predicted class.
package vote

// ClipSum clips v to [-threshold, threshold], the symmetric vote clip
// spec §4.6 requires of every label's vote and the regressor's scalar
// vote.
func ClipSum(v, threshold int) int {
	if v > threshold {
		return threshold
	}
	if v < -threshold {
		return -threshold
	}
	return v
}

// ClassifierLabelVote computes v(label) = clip(sum(w*out) over the
// label's m positive clauses minus sum(w*out) over its m negative
// clauses, -T, T). clauseOutput and weights are indexed by the global
// clause id; posStart/negStart are the first clause index of each half
// and m = clauses_per_label/2.
func ClassifierLabelVote(clauseOutput []byte, weights []int32, posStart, negStart, m, threshold int) int {
	sum := 0
	for i := 0; i < m; i++ {
		if clauseOutput[posStart+i] != 0 {
			sum += weight(weights, posStart+i)
		}
	}
	for i := 0; i < m; i++ {
		if clauseOutput[negStart+i] != 0 {
			sum -= weight(weights, negStart+i)
		}
	}
	return ClipSum(sum, threshold)
}

// RegressorVote computes the scalar regressor vote: a single-polarity
// sum over all clauses (spec §4.6: "single polarity partition yielding
// a scalar vote in [0, T]"), clipped the same way.
func RegressorVote(clauseOutput []byte, weights []int32, threshold int) int {
	sum := 0
	for j, out := range clauseOutput {
		if out != 0 {
			sum += weight(weights, j)
		}
	}
	return ClipSum(sum, threshold)
}

func weight(weights []int32, j int) int {
	if weights == nil {
		return 1
	}
	return int(weights[j])
}

// Argmax returns the index of the largest value in votes, breaking ties
// toward the lowest index — the same tie-breaking rule as
// hwy/contrib/vec/argmax_base.go's BaseArgmax (val == maxVal does not
// overwrite the current best).
func Argmax(votes []int) int {
	best := 0
	bestVal := votes[0]
	for i := 1; i < len(votes); i++ {
		if votes[i] > bestVal {
			best = i
			bestVal = votes[i]
		}
	}
	return best
}
