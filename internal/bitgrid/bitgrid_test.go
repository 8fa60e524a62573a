package bitgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTest(t *testing.T) {
	g := New(200)
	g.Set(0, true)
	g.Set(63, true)
	g.Set(64, true)
	g.Set(199, true)

	assert.True(t, g.Test(0))
	assert.True(t, g.Test(63))
	assert.True(t, g.Test(64))
	assert.True(t, g.Test(199))
	assert.False(t, g.Test(1))
	assert.False(t, g.Test(65))
	assert.Equal(t, 4, g.Count())

	g.Set(64, false)
	assert.False(t, g.Test(64))
	assert.Equal(t, 3, g.Count())
}

func TestTestAndClear(t *testing.T) {
	g := New(128)
	g.Set(70, true)

	assert.True(t, g.TestAndClear(70))
	assert.False(t, g.Test(70))
	assert.False(t, g.TestAndClear(70), "second clear must report prior zero")
}

func TestRangeWithinOneWord(t *testing.T) {
	g := New(128)
	g.SetRange(10, 20, true)

	assert.True(t, g.TestRange(10, 20))
	assert.True(t, g.TestRange(12, 5))
	assert.False(t, g.TestRange(9, 2))
	assert.False(t, g.TestRange(29, 2))
	assert.Equal(t, 20, g.Count())
}

func TestRangeStraddlingWords(t *testing.T) {
	g := New(320)
	// Covers a partial first word, two full words and a partial last word.
	g.SetRange(40, 200, true)

	require.True(t, g.TestRange(40, 200))
	assert.Equal(t, 200, g.Count())
	assert.False(t, g.TestRange(39, 201))
	assert.False(t, g.TestRange(40, 201))

	// Punch a hole in a middle word and re-test.
	g.Set(128, false)
	assert.False(t, g.TestRange(40, 200))
	assert.True(t, g.TestRange(40, 88))
	assert.True(t, g.TestRange(129, 111))

	g.SetRange(40, 200, false)
	assert.Equal(t, 0, g.Count())
}

func TestFullWordRange(t *testing.T) {
	g := New(64)
	g.SetRange(0, 64, true)
	assert.True(t, g.TestRange(0, 64))
	assert.Equal(t, 64, g.Count())
	g.SetRange(0, 64, false)
	assert.Equal(t, 0, g.Count())
}

func TestTestAndClearRangeAtomicity(t *testing.T) {
	g := New(256)
	g.SetRange(60, 10, true)
	g.Set(65, false)

	// Failed test must leave every bit untouched.
	require.False(t, g.TestAndClearRange(60, 10))
	assert.True(t, g.Test(60))
	assert.True(t, g.Test(64))
	assert.True(t, g.Test(66))
	assert.Equal(t, 9, g.Count())

	g.Set(65, true)
	require.True(t, g.TestAndClearRange(60, 10))
	assert.Equal(t, 0, g.Count())
}

func TestTailBitsStayZero(t *testing.T) {
	g := New(70)
	g.SetRange(0, 70, true)
	g.SetRange(0, 70, false)
	for _, w := range g.Words() {
		assert.Zero(t, w)
	}

	g.SetRange(64, 6, true)
	assert.Equal(t, uint64(0x3f), g.Words()[1])
}

func TestReset(t *testing.T) {
	g := New(1024)
	g.SetRange(100, 700, true)
	g.Reset()
	assert.Equal(t, 0, g.Count())
	assert.Equal(t, 1024, g.Len())
}
