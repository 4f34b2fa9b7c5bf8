package encoding

import (
	"gonum.org/v1/gonum/stat"
)

// TimingStats summarizes the token timing of a transcript. Useful as a
// quick sanity check on ASR output before a corpus-wide scan.
type TimingStats struct {
	Tokens   int
	Duration float64 // last token begin - first token begin, seconds
	MeanGap  float64 // mean inter-token gap, seconds
	StdGap   float64 // standard deviation of inter-token gaps
}

// TimingStats computes timing statistics over the transcript's non-empty
// tokens. A transcript with fewer than two tokens has zero duration and gaps.
func (t *Transcript) TimingStats() TimingStats {
	ts := TimingStats{Tokens: len(t.tokenTimes)}
	if len(t.tokenTimes) < 2 {
		return ts
	}
	ts.Duration = t.tokenTimes[len(t.tokenTimes)-1] - t.tokenTimes[0]

	gaps := make([]float64, len(t.tokenTimes)-1)
	for i := 1; i < len(t.tokenTimes); i++ {
		gaps[i-1] = t.tokenTimes[i] - t.tokenTimes[i-1]
	}
	ts.MeanGap = stat.Mean(gaps, nil)
	if len(gaps) > 1 {
		ts.StdGap = stat.StdDev(gaps, nil)
	}
	return ts
}
