package typestrike

import (
	"strings"
	"unicode/utf8"
)

// MatchKind classifies the outcome of one keystroke.
type MatchKind int

const (
	MatchMiss     MatchKind = iota // No target and no word in progress
	MatchLetter                    // A single-character target was hit
	MatchWord                      // A word target was completed
	MatchProgress                  // The keystroke continues a live word
)

// String returns a human-readable name for the kind.
func (k MatchKind) String() string {
	switch k {
	case MatchMiss:
		return "miss"
	case MatchLetter:
		return "letter"
	case MatchWord:
		return "word"
	case MatchProgress:
		return "progress"
	default:
		return "unknown"
	}
}

// MatchResult describes what a keystroke did.
type MatchResult struct {
	Kind      MatchKind
	Target    Target // The removed target for letter and word hits
	Points    int
	Milestone bool
}

// Matcher resolves keystrokes against a pool with word priority.
type Matcher struct {
	pool   *Pool
	scorer *Scorer
	buf    runeRing
}

// newMatcher binds a matcher to the session's pool and scorer.
func newMatcher(pool *Pool, scorer *Scorer) *Matcher {
	return &Matcher{pool: pool, scorer: scorer}
}

// Buffer returns the rolling word buffer, oldest first.
func (m *Matcher) Buffer() string {
	return m.buf.String()
}

// Reset clears the word buffer.
func (m *Matcher) Reset() {
	m.buf.Reset()
}

// Type resolves one uppercase character.
//
// Words take precedence: a word target matches when the buffer ends with
// its full text. Then single characters are tried. If neither matches but
// the buffer's tail starts a live word, the keystroke counts as progress.
// Among several candidates the target closest to the bottom wins.
func (m *Matcher) Type(c rune) MatchResult {
	m.scorer.Keystroke()
	m.buf.Push(c)

	if i := m.pool.mostUrgent(func(t *Target) bool {
		return t.IsWord && m.buf.Suffix(utf8.RuneCountInString(t.Text)) == t.Text
	}); i >= 0 {
		t := m.pool.remove(i)
		points, milestone := m.scorer.Hit(true)
		m.buf.Reset()
		m.markTargeted()
		return MatchResult{Kind: MatchWord, Target: t, Points: points, Milestone: milestone}
	}

	ch := string(c)
	if i := m.pool.mostUrgent(func(t *Target) bool {
		return !t.IsWord && t.Text == ch
	}); i >= 0 {
		t := m.pool.remove(i)
		points, milestone := m.scorer.Hit(false)
		m.markTargeted()
		return MatchResult{Kind: MatchLetter, Target: t, Points: points, Milestone: milestone}
	}

	if m.markTargeted() {
		m.scorer.Progress()
		return MatchResult{Kind: MatchProgress}
	}

	m.scorer.Miss()
	m.buf.Reset()
	return MatchResult{Kind: MatchMiss}
}

// markTargeted flags word targets whose prefix is being typed and reports
// whether any word is in progress.
func (m *Matcher) markTargeted() bool {
	inProgress := false
	for i := range m.pool.targets {
		t := &m.pool.targets[i]
		t.Targeted = t.IsWord && wordInProgress(&m.buf, t.Text)
		inProgress = inProgress || t.Targeted
	}
	return inProgress
}

// wordInProgress reports whether a non-empty tail of the buffer is a
// proper prefix of word. The longest tail is tried first.
func wordInProgress(buf *runeRing, word string) bool {
	n := buf.Len()
	if wl := utf8.RuneCountInString(word); n >= wl {
		n = wl - 1
	}
	for k := n; k > 0; k-- {
		if strings.HasPrefix(word, buf.Suffix(k)) {
			return true
		}
	}
	return false
}
