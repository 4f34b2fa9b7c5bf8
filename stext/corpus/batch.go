package corpus

import (
	"fmt"

	"github.com/ZanzyTHEbar/sourced-text/stext/encoding"
)

// SourcedText is a ragged, provenance-tagged concatenation of one or more
// encoded sources (or of other SourcedTexts) into a single flat buffer.
// For every element it records the position in the originating source's own
// coordinate space and which document it came from, so any flat index can be
// mapped back to {document, original position} in O(1).
//
// A SourcedText exclusively owns its data/pos/doc buffers; the referenced
// sources are shared read-only. Callers may edit element values in Data()
// in place, but inserting or deleting elements would desynchronize pos/doc
// and is only supported through whole-batch transforms like Remove.
type SourcedText struct {
	data []uint32
	pos  []uint32
	doc  DocIndex
	srcs []encoding.Source

	// Ragged row-boundary offsets into data, present when the batch was
	// built by concatenating whole documents in order: segment k occupies
	// data[docSplits[k]:docSplits[k+1]]. Nil for single-source batches.
	docSplits []uint32
}

// FromSources builds one single-document batch per source: identity pos,
// scalar doc 0 since each batch's source list holds just its own source.
// This is the base case that seeds all batching. The element data is
// deep-copied (and widened to uint32) so the returned batches never alias a
// source's buffer.
func FromSources(sources []encoding.Source) ([]*SourcedText, error) {
	batches := make([]*SourcedText, len(sources))
	for docIdx, src := range sources {
		if src == nil {
			return nil, fmt.Errorf("source %d is nil", docIdx)
		}
		n := src.Len()
		data := make([]uint32, n)
		pos := make([]uint32, n)
		for i := 0; i < n; i++ {
			data[i] = src.At(i)
			pos[i] = uint32(i)
		}
		batches[docIdx] = &SourcedText{
			data: data,
			pos:  pos,
			doc:  SingleDoc(0),
			srcs: []encoding.Source{src},
		}
	}
	return batches, nil
}

// Append concatenates batches in order into a single batch.
//
// The result's doc is always materialized per-element, and every input
// batch's doc values are remapped by that batch's cumulative source-count
// offset, because the result's source list is the in-order concatenation of
// the inputs' source lists without deduplication. DocSplits records the
// batch-boundary structure: splits[k] is the start offset of input k,
// splits[last] the total length.
//
// A single-element input yields a structural copy, never an alias.
func Append(texts []*SourcedText) (*SourcedText, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	total := 0
	nsrc := 0
	for i, t := range texts {
		if t == nil {
			return nil, fmt.Errorf("batch %d is nil", i)
		}
		total += len(t.data)
		nsrc += len(t.srcs)
	}

	data := make([]uint32, 0, total)
	pos := make([]uint32, 0, total)
	doc := make([]uint32, 0, total)
	srcs := make([]encoding.Source, 0, nsrc)
	splits := make([]uint32, 0, len(texts)+1)
	splits = append(splits, 0)

	var srcOffset uint32
	for _, t := range texts {
		data = append(data, t.data...)
		pos = append(pos, t.pos...)
		doc = t.doc.appendTo(doc, len(t.data), srcOffset)
		srcs = append(srcs, t.srcs...)
		srcOffset += uint32(len(t.srcs))
		splits = append(splits, uint32(len(data)))
	}

	return &SourcedText{
		data:      data,
		pos:       pos,
		doc:       PerElementDoc(doc),
		srcs:      srcs,
		docSplits: splits,
	}, nil
}

// Len returns the number of elements in the flat buffer.
func (t *SourcedText) Len() int { return len(t.data) }

// Data returns the owned flat buffer. Callers may edit element values in
// place; the buffer is never shared with any source.
func (t *SourcedText) Data() []uint32 { return t.data }

// Pos returns the position of element i within its originating source's own
// coordinate space. It does not bounds-check; use Resolve for checked access.
func (t *SourcedText) Pos(i int) uint32 { return t.pos[i] }

// Doc returns the batch's document index.
func (t *SourcedText) Doc() DocIndex { return t.doc }

// Sources returns the ordered source list document ids index into. The
// returned slice is owned by the batch.
func (t *SourcedText) Sources() []encoding.Source { return t.srcs }

// DocSplits returns the ragged row-boundary offsets, or nil when the batch
// was not built by whole-document concatenation.
func (t *SourcedText) DocSplits() []uint32 { return t.docSplits }

// Resolve maps flat index i back to the source it came from and the position
// within that source's coordinate space. O(1).
func (t *SourcedText) Resolve(i int) (encoding.Source, uint32, error) {
	if i < 0 || i >= len(t.data) {
		return nil, 0, fmt.Errorf("index %d with length %d: %w", i, len(t.data), ErrIndexOutOfRange)
	}
	return t.srcs[t.doc.At(i)], t.pos[i], nil
}
