package encoding

import (
	"fmt"
	"unicode/utf8"
)

// Transcript represents automatically transcribed text with a begin time for
// every element. All elements belonging to the same original token share that
// token's begin time, so the times array is non-decreasing overall and
// strictly increasing across token boundaries.
type Transcript struct {
	TextSource

	// times[i] is the begin time in seconds of the token element i belongs to.
	times []float32

	// Begin time of each non-empty token, in order. Kept for timing
	// diagnostics; empty tokens contribute no entry.
	tokenTimes []float64
}

// TranscriptRecord is the transcript interchange form handed in by upstream
// ASR tooling: one entry per token, parallel begin times.
type TranscriptRecord struct {
	Text       []string  `json:"text"`
	BeginTimes []float64 `json:"begin_times"`
}

// FromTokens constructs a Transcript from pre-tokenized text and per-token
// begin times. Each token is encoded in the target mode and its begin time is
// replicated across every resulting element. Begin times must be strictly
// increasing across non-empty tokens; an empty token contributes no elements
// and no comparison point.
func FromTokens(name string, tokens []string, beginTimes []float64, mode Mode) (*Transcript, error) {
	if len(tokens) != len(beginTimes) {
		return nil, fmt.Errorf("transcript %q: %d tokens vs %d begin times: %w",
			name, len(tokens), len(beginTimes), ErrShapeMismatch)
	}

	t := &Transcript{TextSource: TextSource{name: name, mode: mode}}
	havePrev := false
	var prev float64
	var byteIndex uint32

	for k, tok := range tokens {
		if !utf8.ValidString(tok) {
			return nil, fmt.Errorf("transcript %q token %d: %w", name, k, ErrInvalidEncoding)
		}
		if tok == "" {
			continue
		}
		bt := beginTimes[k]
		if havePrev && bt <= prev {
			return nil, fmt.Errorf("transcript %q token %d: begin time %v after %v: %w",
				name, k, bt, prev, ErrNonMonotonicTime)
		}
		havePrev = true
		prev = bt
		t.tokenTimes = append(t.tokenTimes, bt)

		if mode == ModeBytes {
			t.bytes = append(t.bytes, tok...)
			for i := 0; i < len(tok); i++ {
				t.times = append(t.times, float32(bt))
			}
		} else {
			for _, r := range tok {
				t.points = append(t.points, r)
				t.offsets = append(t.offsets, byteIndex)
				t.times = append(t.times, float32(bt))
				byteIndex += utf8Width(r)
			}
		}
	}

	if uint64(t.Len()) > MaxSourceLen {
		return nil, fmt.Errorf("transcript %q: %w", name, ErrSourceTooLarge)
	}
	return t, nil
}

// FromTranscriptRecord constructs a Transcript from the record form exchanged
// with upstream ASR tooling.
func FromTranscriptRecord(name string, rec TranscriptRecord, mode Mode) (*Transcript, error) {
	return FromTokens(name, rec.Text, rec.BeginTimes, mode)
}

// Times returns the per-element begin times. The returned slice is owned by
// the Transcript and must not be modified.
func (t *Transcript) Times() []float32 { return t.times }

// TimeAt returns the begin time of the token element i belongs to.
func (t *Transcript) TimeAt(i int) float32 { return t.times[i] }

// Tokens returns the number of non-empty tokens the transcript was built from.
func (t *Transcript) Tokens() int { return len(t.tokenTimes) }
