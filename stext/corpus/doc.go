package corpus

// DocIndex records which document each element of a batch came from. An
// unmixed batch stores a single scalar document id; a batch that mixes
// documents stores one id per element. Call sites must branch on IsScalar
// explicitly; the scalar form exists for memory efficiency, not as a type
// distinction downstream code should special-case.
type DocIndex struct {
	scalar  uint32
	perElem []uint32 // nil in the scalar form
}

// SingleDoc returns the scalar form: every element belongs to document id.
func SingleDoc(id uint32) DocIndex {
	return DocIndex{scalar: id}
}

// PerElementDoc returns the per-element form. The slice is taken over, not
// copied.
func PerElementDoc(ids []uint32) DocIndex {
	return DocIndex{perElem: ids}
}

// IsScalar reports whether the index is in the scalar (unmixed) form.
func (d DocIndex) IsScalar() bool { return d.perElem == nil }

// Scalar returns the document id of the scalar form. Only meaningful when
// IsScalar is true.
func (d DocIndex) Scalar() uint32 { return d.scalar }

// At returns the document id for element i.
func (d DocIndex) At(i int) uint32 {
	if d.perElem == nil {
		return d.scalar
	}
	return d.perElem[i]
}

// appendTo appends n document ids (shifted by offset) to dst, expanding the
// scalar form. Used when concatenating batches.
func (d DocIndex) appendTo(dst []uint32, n int, offset uint32) []uint32 {
	if d.perElem == nil {
		id := d.scalar + offset
		for i := 0; i < n; i++ {
			dst = append(dst, id)
		}
		return dst
	}
	for _, id := range d.perElem {
		dst = append(dst, id+offset)
	}
	return dst
}
