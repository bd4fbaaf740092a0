package consult_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/visitnotes/consult"
)

func TestAccumulator_ConcatenatesInArrivalOrder(t *testing.T) {
	t.Parallel()

	var acc consult.Accumulator
	acc.Append("Patient ")
	acc.Append("presents with ")
	acc.Append("headache.")

	assert.Equal(t, "Patient presents with headache.", acc.Preview())
	assert.Equal(t, 3, acc.Chunks())
	assert.Equal(t, len("Patient presents with headache."), acc.Len())
}

func TestAccumulator_ChunkBoundariesDoNotMatter(t *testing.T) {
	t.Parallel()

	splits := [][]string{
		{"Hello"},
		{"Hel", "lo"},
		{"H", "ello"},
		{"H", "e", "l", "l", "o"},
	}

	for _, chunks := range splits {
		var acc consult.Accumulator
		for _, c := range chunks {
			acc.Append(c)
		}
		assert.Equal(t, "Hello", acc.Preview())
		assert.Equal(t, len(chunks), acc.Chunks())
	}
}

func TestAccumulator_ZeroValueIsEmpty(t *testing.T) {
	t.Parallel()

	var acc consult.Accumulator
	assert.Empty(t, acc.Preview())
	assert.Zero(t, acc.Chunks())
	assert.Zero(t, acc.Len())
}

func TestAccumulator_EmptyChunksStillCounted(t *testing.T) {
	t.Parallel()

	var acc consult.Accumulator
	acc.Append("")
	acc.Append("x")
	acc.Append("")

	assert.Equal(t, "x", acc.Preview())
	assert.Equal(t, 3, acc.Chunks())
}
