package typestrike

import "strings"

// bufferSize is the capacity of the rolling input buffers.
const bufferSize = 10

// runeRing is a fixed-capacity circular buffer of runes. Pushing onto a
// full ring overwrites the oldest rune.
type runeRing struct {
	buf   [bufferSize]rune
	start int
	n     int
}

// Push appends r, dropping the oldest rune when full.
func (r *runeRing) Push(c rune) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = c
		r.n++
		return
	}
	r.buf[r.start] = c
	r.start = (r.start + 1) % len(r.buf)
}

// Reset empties the ring.
func (r *runeRing) Reset() {
	r.start = 0
	r.n = 0
}

// Len returns the number of buffered runes.
func (r *runeRing) Len() int {
	return r.n
}

// String returns the buffered runes, oldest first.
func (r *runeRing) String() string {
	var sb strings.Builder
	sb.Grow(r.n)
	for i := 0; i < r.n; i++ {
		sb.WriteRune(r.buf[(r.start+i)%len(r.buf)])
	}
	return sb.String()
}

// Suffix returns the last n runes (all of them if n exceeds Len).
func (r *runeRing) Suffix(n int) string {
	s := r.String()
	if n >= r.n {
		return s
	}
	runes := []rune(s)
	return string(runes[len(runes)-n:])
}
