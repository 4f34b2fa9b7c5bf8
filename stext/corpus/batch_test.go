package corpus

import (
	"testing"

	"github.com/ZanzyTHEbar/sourced-text/stext/encoding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcedText(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"FromSourcesIdentity", testBatchFromSourcesIdentity},
		{"AppendMixedModes", testBatchAppendMixedModes},
		{"AppendRemapsDocIDs", testBatchAppendRemapsDocIDs},
		{"AppendAssociativity", testBatchAppendAssociativity},
		{"AppendEmptyInput", testBatchAppendEmptyInput},
		{"AppendNilBatch", testBatchAppendNilBatch},
		{"AppendSingleIsCopy", testBatchAppendSingleIsCopy},
		{"ResolveOutOfRange", testBatchResolveOutOfRange},
		{"DataIsOwnedCopy", testBatchDataIsOwnedCopy},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func mustSource(t *testing.T, name, text string, mode encoding.Mode) *encoding.TextSource {
	t.Helper()
	src, err := encoding.FromString(name, text, mode)
	require.NoError(t, err)
	return src
}

func testBatchFromSourcesIdentity(t *testing.T) {
	src := mustSource(t, "doc", "héllo", encoding.ModeCodepoints)
	batches, err := FromSources([]encoding.Source{src})
	require.NoError(t, err)
	require.Len(t, batches, 1)

	b := batches[0]
	require.Equal(t, src.Len(), b.Len())
	assert.True(t, b.Doc().IsScalar(), "single unmixed batch keeps the scalar doc form")
	assert.Nil(t, b.DocSplits())

	for i := 0; i < b.Len(); i++ {
		resolved, pos, err := b.Resolve(i)
		require.NoError(t, err)
		assert.Same(t, src, resolved, "element %d must resolve to its source", i)
		assert.Equal(t, uint32(i), pos)
		assert.Equal(t, src.At(i), b.Data()[i])
	}
}

func testBatchAppendMixedModes(t *testing.T) {
	// "héllo" as codepoints plus "hi" as bytes: flat length 7,
	// doc = [0,0,0,0,0,1,1], sources = [hello, hi]
	hello := mustSource(t, "hello", "héllo", encoding.ModeCodepoints)
	hi := mustSource(t, "hi", "hi", encoding.ModeBytes)

	batches, err := FromSources([]encoding.Source{hello, hi})
	require.NoError(t, err)

	combined, err := Append(batches)
	require.NoError(t, err)

	require.Equal(t, 7, combined.Len())
	require.Len(t, combined.Sources(), 2)
	assert.Same(t, hello, combined.Sources()[0])
	assert.Same(t, hi, combined.Sources()[1])

	wantDoc := []uint32{0, 0, 0, 0, 0, 1, 1}
	require.False(t, combined.Doc().IsScalar(), "doc is materialized after concatenation")
	for i, want := range wantDoc {
		assert.Equal(t, want, combined.Doc().At(i), "doc %d", i)
	}

	assert.Equal(t, []uint32{104, 233, 108, 108, 111, 104, 105}, combined.Data())
	assert.Equal(t, []uint32{0, 5, 7}, combined.DocSplits())
}

func testBatchAppendRemapsDocIDs(t *testing.T) {
	// Two separately-built batches both carry doc id 0 relative to their own
	// source lists; concatenation must remap the second onto the combined list.
	a := mustSource(t, "a", "aa", encoding.ModeBytes)
	b := mustSource(t, "b", "bbb", encoding.ModeBytes)

	batchA, err := FromSources([]encoding.Source{a})
	require.NoError(t, err)
	batchB, err := FromSources([]encoding.Source{b})
	require.NoError(t, err)

	combined, err := Append([]*SourcedText{batchA[0], batchB[0]})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		src, pos, err := combined.Resolve(i)
		require.NoError(t, err)
		assert.Same(t, a, src)
		assert.Equal(t, uint32(i), pos)
	}
	for i := 2; i < 5; i++ {
		src, pos, err := combined.Resolve(i)
		require.NoError(t, err)
		assert.Same(t, b, src)
		assert.Equal(t, uint32(i-2), pos)
	}

	// the same source appended twice is listed twice, not deduplicated
	again, err := Append([]*SourcedText{batchA[0], batchA[0]})
	require.NoError(t, err)
	require.Len(t, again.Sources(), 2)
	assert.Equal(t, uint32(0), again.Doc().At(0))
	assert.Equal(t, uint32(1), again.Doc().At(2))
}

func testBatchAppendAssociativity(t *testing.T) {
	srcs := []encoding.Source{
		mustSource(t, "a", "héllo", encoding.ModeCodepoints),
		mustSource(t, "b", "wörld", encoding.ModeBytes),
		mustSource(t, "c", "日本", encoding.ModeCodepoints),
	}
	batches, err := FromSources(srcs)
	require.NoError(t, err)

	flat, err := Append(batches)
	require.NoError(t, err)

	ab, err := Append(batches[:2])
	require.NoError(t, err)
	nested, err := Append([]*SourcedText{ab, batches[2]})
	require.NoError(t, err)

	require.Equal(t, flat.Len(), nested.Len())
	for i := 0; i < flat.Len(); i++ {
		srcFlat, posFlat, err := flat.Resolve(i)
		require.NoError(t, err)
		srcNested, posNested, err := nested.Resolve(i)
		require.NoError(t, err)
		assert.Same(t, srcFlat, srcNested, "source at %d", i)
		assert.Equal(t, posFlat, posNested, "pos at %d", i)
	}
}

func testBatchAppendEmptyInput(t *testing.T) {
	combined, err := Append(nil)
	assert.Nil(t, combined)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func testBatchAppendNilBatch(t *testing.T) {
	src := mustSource(t, "doc", "abc", encoding.ModeBytes)
	batches, err := FromSources([]encoding.Source{src})
	require.NoError(t, err)

	combined, err := Append([]*SourcedText{batches[0], nil})
	assert.Nil(t, combined)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch 1 is nil")
}

func testBatchAppendSingleIsCopy(t *testing.T) {
	src := mustSource(t, "doc", "abc", encoding.ModeBytes)
	batches, err := FromSources([]encoding.Source{src})
	require.NoError(t, err)

	copied, err := Append(batches)
	require.NoError(t, err)

	require.Equal(t, batches[0].Len(), copied.Len())
	copied.Data()[0] = 999
	assert.Equal(t, uint32('a'), batches[0].Data()[0], "copy must not alias the input batch")
}

func testBatchResolveOutOfRange(t *testing.T) {
	src := mustSource(t, "doc", "abc", encoding.ModeBytes)
	batches, err := FromSources([]encoding.Source{src})
	require.NoError(t, err)

	_, _, err = batches[0].Resolve(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, _, err = batches[0].Resolve(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func testBatchDataIsOwnedCopy(t *testing.T) {
	src := mustSource(t, "doc", "abc", encoding.ModeBytes)
	batches, err := FromSources([]encoding.Source{src})
	require.NoError(t, err)

	// editing the batch's data must never reach the shared source
	batches[0].Data()[0] = uint32('z')
	assert.Equal(t, "abc", src.Text())
}
