package serviceImp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunksKeepsLongParagraphWhole(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("alpha ", 60)) // well past the split threshold

	chunks := splitChunks(long)

	require.Len(t, chunks, 1)
	assert.Equal(t, long, chunks[0])
}

func TestSplitChunksRepacksShortParagraphSentences(t *testing.T) {
	para := "First sentence about inventory.  Second sentence about ordering costs and cycle stock."

	chunks := splitChunks(para)

	require.Len(t, chunks, 1)
	assert.Equal(t, "First sentence about inventory. Second sentence about ordering costs and cycle stock.", chunks[0],
		"repacking joins sentences with single spaces")
}

func TestSplitChunksSeparatesParagraphs(t *testing.T) {
	a := strings.TrimSpace(strings.Repeat("alpha ", 60))
	b := strings.TrimSpace(strings.Repeat("beta ", 60))

	chunks := splitChunks(a + "\n\n \n" + b)

	require.Len(t, chunks, 2)
	assert.Equal(t, a, chunks[0])
	assert.Equal(t, b, chunks[1])
}

func TestSplitChunksDropsTinyFragments(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("alpha ", 60))

	chunks := splitChunks(long + "\n\nToo short.")

	require.Len(t, chunks, 1)
	assert.Equal(t, long, chunks[0])
}

func TestSplitChunksMinimumLengthBoundary(t *testing.T) {
	atLimit := strings.Repeat("a", 50)
	aboveLimit := strings.Repeat("b", 51)

	chunks := splitChunks(atLimit + "\n\n" + aboveLimit)

	require.Len(t, chunks, 1)
	assert.Equal(t, aboveLimit, chunks[0])
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Hello there. How are you? Fine! Done")
	assert.Equal(t, []string{"Hello there.", "How are you?", "Fine!", "Done"}, got)
}

func TestSplitSentencesIgnoresDecimalPoints(t *testing.T) {
	got := splitSentences("Version 2.5 ships 1.3 million units")
	assert.Equal(t, []string{"Version 2.5 ships 1.3 million units"}, got)
}

func TestSplitSentencesKeepsTrailingPunctuation(t *testing.T) {
	got := splitSentences("End here.")
	assert.Equal(t, []string{"End here."}, got)
}
