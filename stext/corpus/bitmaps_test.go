package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocBitmaps(t *testing.T) {
	combined, srcs := buildCombined(t) // abc | de | fgh

	db := BuildDocBitmaps(combined)
	require.Len(t, db.Docs, 3)

	assert.Equal(t, []uint32{0, 1, 2}, db.Doc(0).ToArray())
	assert.Equal(t, []uint32{3, 4}, db.Doc(1).ToArray())
	assert.Equal(t, []uint32{5, 6, 7}, db.Doc(2).ToArray())

	// missing document yields an empty bitmap, not nil
	assert.True(t, db.Doc(9).IsEmpty())

	// Doc returns a copy; mutating it must not corrupt the index
	clone := db.Doc(0)
	clone.Add(42)
	assert.Equal(t, []uint32{0, 1, 2}, db.Doc(0).ToArray())

	// union mask trims the batch down to a document subset
	mask := db.OrDocs(0, 2)
	out, err := combined.RemoveBitmap(mask)
	require.NoError(t, err)
	assert.Equal(t, []uint32{'a', 'b', 'c', 'f', 'g', 'h'}, out.Data())

	for i := 0; i < out.Len(); i++ {
		src, _, err := out.Resolve(i)
		require.NoError(t, err)
		assert.NotSame(t, srcs[1], src, "document 1 must be fully masked out")
	}
}
