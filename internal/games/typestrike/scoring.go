package typestrike

// Scoring constants.
const (
	letterPoints = 10
	wordPoints   = letterPoints * 3
	missPenalty  = 2
	comboStep    = 10 // Combo hits per multiplier step and per milestone

	// GodModeLives is the sentinel life count set by the GODMODE egg.
	GodModeLives = 999999
)

// Multiplier returns the score multiplier for a combo value.
func Multiplier(combo int) int {
	return 1 + combo/comboStep
}

// Scorer tracks score, combo, lives and keystroke counters of a session.
type Scorer struct {
	Score     int
	Combo     int
	BestCombo int
	Lives     int
	MaxLives  int
	Correct   int // Correct keystrokes
	Total     int // All accepted keystrokes

	god bool
}

// newScorer returns a scorer with full lives.
func newScorer(maxLives int) Scorer {
	return Scorer{Lives: maxLives, MaxLives: maxLives}
}

// Keystroke counts one accepted keystroke.
func (s *Scorer) Keystroke() {
	s.Total++
}

// Hit applies a successful match and returns the points awarded and
// whether the new combo is a milestone.
func (s *Scorer) Hit(word bool) (points int, milestone bool) {
	s.Correct++
	s.Combo++
	if s.Combo > s.BestCombo {
		s.BestCombo = s.Combo
	}

	base := letterPoints
	if word {
		base = wordPoints
	}
	points = base * Multiplier(s.Combo)
	s.Score += points
	if s.Score < 0 {
		s.Score = 0
	}
	return points, s.Combo > 0 && s.Combo%comboStep == 0
}

// Progress counts a correct keystroke that advances a word without
// completing it. Combo and score are untouched.
func (s *Scorer) Progress() {
	s.Correct++
}

// Miss resets the combo and applies the score penalty, floored at zero.
func (s *Scorer) Miss() {
	s.Combo = 0
	s.Score -= missPenalty
	if s.Score < 0 {
		s.Score = 0
	}
}

// LoseLife handles a target reaching the bottom. Reports whether the
// player is out of lives.
func (s *Scorer) LoseLife() bool {
	s.Combo = 0
	s.Lives--
	return s.Lives <= 0
}

// GainLife restores one life without exceeding MaxLives.
func (s *Scorer) GainLife() {
	if s.Lives < s.MaxLives {
		s.Lives++
	}
}

// AddCombo bumps the combo by n, keeping BestCombo current.
func (s *Scorer) AddCombo(n int) {
	s.Combo += n
	if s.Combo > s.BestCombo {
		s.BestCombo = s.Combo
	}
}

// EnableGodMode sets lives to the GodModeLives sentinel. Expiries still
// cost a life each.
func (s *Scorer) EnableGodMode() {
	s.god = true
	s.Lives = GodModeLives
}

// GodMode reports whether GODMODE was activated this session.
func (s *Scorer) GodMode() bool {
	return s.god
}
