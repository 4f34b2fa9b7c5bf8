package corpus

import (
	roaring "github.com/RoaringBitmap/roaring"
)

// DocBitmaps holds roaring bitmaps keyed by document id:
// document id -> bitmap of flat positions whose elements came from it.
// It accelerates per-document masking without rescanning the doc array.
type DocBitmaps struct {
	Docs map[uint32]*roaring.Bitmap
}

func NewDocBitmaps() *DocBitmaps {
	return &DocBitmaps{Docs: make(map[uint32]*roaring.Bitmap)}
}

// BuildDocBitmaps indexes a batch's provenance into per-document bitmaps.
func BuildDocBitmaps(t *SourcedText) *DocBitmaps {
	db := NewDocBitmaps()
	for i := 0; i < t.Len(); i++ {
		db.Add(t.doc.At(i), uint32(i))
	}
	return db
}

func (db *DocBitmaps) Add(docID uint32, position uint32) {
	bm, ok := db.Docs[docID]
	if !ok {
		bm = roaring.New()
		db.Docs[docID] = bm
	}
	bm.Add(position)
}

// Doc returns a copy of the bitmap of flat positions for one document.
func (db *DocBitmaps) Doc(docID uint32) *roaring.Bitmap {
	return db.clone(db.Docs[docID])
}

// OrDocs returns the union of the given documents' position bitmaps. Useful
// as a keep-mask for RemoveBitmap when trimming a batch down to a document
// subset.
func (db *DocBitmaps) OrDocs(docIDs ...uint32) *roaring.Bitmap {
	res := roaring.New()
	for _, id := range docIDs {
		if bm, ok := db.Docs[id]; ok {
			res.Or(bm)
		}
	}
	return res
}

func (db *DocBitmaps) clone(b *roaring.Bitmap) *roaring.Bitmap {
	if b == nil {
		return roaring.New()
	}
	c := roaring.New()
	c.Or(b) // copy
	return c
}
