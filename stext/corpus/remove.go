package corpus

import (
	"fmt"

	roaring "github.com/RoaringBitmap/roaring"

	"github.com/ZanzyTHEbar/sourced-text/stext/encoding"
)

// Remove returns a new batch containing only the elements where keep[i] is
// true, preserving relative order. Data, pos and doc are compacted by the
// same mask. DocSplits, when present, is recomputed by counting kept
// elements per original segment; segments left with zero kept elements are
// dropped rather than retained as zero-width entries.
func (t *SourcedText) Remove(keep []bool) (*SourcedText, error) {
	if len(keep) != len(t.data) {
		return nil, fmt.Errorf("keep mask length %d vs batch length %d: %w",
			len(keep), len(t.data), encoding.ErrShapeMismatch)
	}

	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}

	data := make([]uint32, 0, n)
	pos := make([]uint32, 0, n)
	var doc []uint32
	if !t.doc.IsScalar() {
		doc = make([]uint32, 0, n)
	}
	for i, k := range keep {
		if !k {
			continue
		}
		data = append(data, t.data[i])
		pos = append(pos, t.pos[i])
		if doc != nil {
			doc = append(doc, t.doc.At(i))
		}
	}

	out := &SourcedText{
		data: data,
		pos:  pos,
		srcs: append([]encoding.Source(nil), t.srcs...),
	}
	if doc != nil {
		out.doc = PerElementDoc(doc)
	} else {
		out.doc = SingleDoc(t.doc.Scalar())
	}

	if t.docSplits != nil {
		splits := make([]uint32, 0, len(t.docSplits))
		splits = append(splits, 0)
		var kept uint32
		for seg := 0; seg+1 < len(t.docSplits); seg++ {
			var segKept uint32
			for i := t.docSplits[seg]; i < t.docSplits[seg+1]; i++ {
				if keep[i] {
					segKept++
				}
			}
			if segKept > 0 {
				kept += segKept
				splits = append(splits, kept)
			}
		}
		out.docSplits = splits
	}

	return out, nil
}

// RemoveBitmap is Remove with a roaring keep-mask over flat positions, the
// form bitmap-producing scanners hand back. Set bits are kept.
func (t *SourcedText) RemoveBitmap(keep *roaring.Bitmap) (*SourcedText, error) {
	mask := make([]bool, len(t.data))
	it := keep.Iterator()
	for it.HasNext() {
		i := it.Next()
		if uint64(i) >= uint64(len(t.data)) {
			return nil, fmt.Errorf("bitmap position %d with length %d: %w", i, len(t.data), ErrIndexOutOfRange)
		}
		mask[i] = true
	}
	return t.Remove(mask)
}
