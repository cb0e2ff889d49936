package vote

import "testing"

func TestClipSumSymmetric(t *testing.T) {
	cases := []struct{ v, t, want int }{
		{5, 10, 5},
		{15, 10, 10},
		{-15, 10, -10},
		{0, 10, 0},
	}
	for _, c := range cases {
		if got := ClipSum(c.v, c.t); got != c.want {
			t.Fatalf("ClipSum(%d,%d) = %d, want %d", c.v, c.t, got, c.want)
		}
	}
}

func TestClassifierLabelVoteUnweighted(t *testing.T) {
	// 2 positive, 2 negative clauses for this label.
	out := []byte{1, 1, 0, 1}
	v := ClassifierLabelVote(out, nil, 0, 2, 2, 15)
	// pos: out[0]+out[1] = 2, neg: out[2]+out[3] = 1 -> 2-1=1
	if v != 1 {
		t.Fatalf("vote = %d, want 1", v)
	}
}

func TestClassifierLabelVoteWeightedAndClipped(t *testing.T) {
	out := []byte{1, 1}
	weights := []int32{20, 20}
	v := ClassifierLabelVote(out, weights, 0, 0, 0, 15)
	// m=0 both halves -> sum stays 0 regardless of weights/out.
	if v != 0 {
		t.Fatalf("vote = %d, want 0", v)
	}

	out2 := []byte{1, 1}
	v2 := ClassifierLabelVote(out2, weights, 0, 1, 1, 15)
	// pos clause 0 weight 20 fires, neg clause 1 weight 20 fires -> 0, then clip.
	if v2 != 0 {
		t.Fatalf("vote = %d, want 0", v2)
	}

	out3 := []byte{1, 0}
	v3 := ClassifierLabelVote(out3, weights, 0, 1, 1, 15)
	// only pos clause 0 (weight 20) fires -> 20, clipped to threshold 15.
	if v3 != 15 {
		t.Fatalf("vote = %d, want 15 (clipped)", v3)
	}
}

func TestRegressorVoteClipsAtThreshold(t *testing.T) {
	out := make([]byte, 20)
	for i := range out {
		out[i] = 1
	}
	if v := RegressorVote(out, nil, 15); v != 15 {
		t.Fatalf("vote = %d, want 15 (clipped)", v)
	}
}

func TestArgmaxBreaksTiesToLowestIndex(t *testing.T) {
	votes := []int{3, 5, 5, 1}
	if got := Argmax(votes); got != 1 {
		t.Fatalf("Argmax = %d, want 1", got)
	}
}

func TestArgmaxSingleElement(t *testing.T) {
	if got := Argmax([]int{7}); got != 0 {
		t.Fatalf("Argmax = %d, want 0", got)
	}
}
