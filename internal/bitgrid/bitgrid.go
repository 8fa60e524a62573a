// Package bitgrid implements a fixed-size packed bit array with
// word-granular range operations. The greedy meshers spend almost all of
// their time in TestRange/TestAndClearRange, so those operate on whole
// 64-bit words with prefix/suffix masks rather than per-bit loops.
package bitgrid

import "math/bits"

// WordBits is the number of bits per storage word.
const WordBits = 64

// Grid is a fixed-size packed bit array. The zero value is unusable; create
// one with New. Unused tail bits of the last word are kept at zero.
type Grid struct {
	words []uint64
	size  int
}

// New returns a zeroed grid of exactly size bits.
func New(size int) *Grid {
	return &Grid{
		words: make([]uint64, (size+WordBits-1)/WordBits),
		size:  size,
	}
}

// Len returns the number of bits in the grid.
func (g *Grid) Len() int { return g.size }

// Words exposes the backing words. Callers must preserve the tail-bit
// invariant when writing through it.
func (g *Grid) Words() []uint64 { return g.words }

// Reset clears every bit.
func (g *Grid) Reset() {
	clear(g.words)
}

// Test reports whether bit i is set.
func (g *Grid) Test(i int) bool {
	return g.words[i/WordBits]&(1<<(uint(i)%WordBits)) != 0
}

// Set sets bit i to v.
func (g *Grid) Set(i int, v bool) {
	if v {
		g.words[i/WordBits] |= 1 << (uint(i) % WordBits)
	} else {
		g.words[i/WordBits] &^= 1 << (uint(i) % WordBits)
	}
}

// TestAndClear returns the prior value of bit i and unconditionally clears it.
func (g *Grid) TestAndClear(i int) bool {
	mask := uint64(1) << (uint(i) % WordBits)
	w := &g.words[i/WordBits]
	prev := *w&mask != 0
	*w &^= mask
	return prev
}

// TestRange reports whether every bit in [i, i+n) is set. n must be >= 1 and
// i+n must not exceed the grid length.
func (g *Grid) TestRange(i, n int) bool {
	first := i / WordBits
	last := (i + n - 1) / WordBits

	if first == last {
		mask := rangeMask(uint(i)%WordBits, uint(n))
		return g.words[first]&mask == mask
	}

	head := headMask(uint(i) % WordBits)
	if g.words[first]&head != head {
		return false
	}
	for w := first + 1; w < last; w++ {
		if g.words[w] != ^uint64(0) {
			return false
		}
	}
	tail := tailMask(uint(i+n) % WordBits)
	return g.words[last]&tail == tail
}

// TestAndClearRange returns TestRange(i, n); when true it also clears the
// whole range. A failed test leaves the grid untouched.
func (g *Grid) TestAndClearRange(i, n int) bool {
	if !g.TestRange(i, n) {
		return false
	}
	g.SetRange(i, n, false)
	return true
}

// SetRange sets every bit in [i, i+n) to v.
func (g *Grid) SetRange(i, n int, v bool) {
	first := i / WordBits
	last := (i + n - 1) / WordBits

	if first == last {
		mask := rangeMask(uint(i)%WordBits, uint(n))
		if v {
			g.words[first] |= mask
		} else {
			g.words[first] &^= mask
		}
		return
	}

	head := headMask(uint(i) % WordBits)
	tail := tailMask(uint(i+n) % WordBits)
	if v {
		g.words[first] |= head
		for w := first + 1; w < last; w++ {
			g.words[w] = ^uint64(0)
		}
		g.words[last] |= tail
	} else {
		g.words[first] &^= head
		for w := first + 1; w < last; w++ {
			g.words[w] = 0
		}
		g.words[last] &^= tail
	}
}

// Count returns the number of set bits.
func (g *Grid) Count() int {
	total := 0
	for _, w := range g.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// headMask covers bits [off, 64) of a word.
func headMask(off uint) uint64 {
	return ^uint64(0) << off
}

// tailMask covers bits [0, end) of a word; end == 0 means the whole word.
func tailMask(end uint) uint64 {
	if end == 0 {
		return ^uint64(0)
	}
	return ^uint64(0) >> (WordBits - end)
}

// rangeMask covers bits [off, off+n) of a single word.
func rangeMask(off, n uint) uint64 {
	if n == WordBits {
		return ^uint64(0)
	}
	return ((uint64(1) << n) - 1) << off
}
