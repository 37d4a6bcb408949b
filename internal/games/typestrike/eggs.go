package typestrike

import "strings"

// EasterEgg is a hidden code typed during play.
type EasterEgg struct {
	Code        string
	Name        string
	Description string
}

// Easter egg effect parameters.
const (
	wowComboBonus = 50
	zenSpeed      = 0.7
	rushSpeed     = 1.5
)

// EasterEggs lists every code in scan order.
var EasterEggs = []EasterEgg{
	{Code: "SOS", Name: "Lifeline", Description: "+1 life"},
	{Code: "WOW", Name: "Hype", Description: "+50 combo"},
	{Code: "ZEN", Name: "Calm", Description: "targets slow down"},
	{Code: "007", Name: "Licensed", Description: "score doubled"},
	{Code: "RUSH", Name: "Adrenaline", Description: "targets speed up"},
	{Code: "GODMODE", Name: "Invincible", Description: "infinite lives"},
}

// eggDetector scans the last typed characters for easter egg codes.
type eggDetector struct {
	buf       runeRing
	activated map[string]bool
}

// Reset clears the buffer and the activated set for a new session.
func (d *eggDetector) Reset() {
	d.buf.Reset()
	d.activated = make(map[string]bool)
}

// Found returns how many codes fired this session.
func (d *eggDetector) Found() int {
	return len(d.activated)
}

// Push records a keystroke and returns the codes it triggered.
// A code fires at most once per session.
func (d *eggDetector) Push(c rune) []EasterEgg {
	if d.activated == nil {
		d.activated = make(map[string]bool)
	}
	d.buf.Push(c)
	recent := d.buf.String()

	var fired []EasterEgg
	for _, egg := range EasterEggs {
		if d.activated[egg.Code] {
			continue
		}
		if strings.Contains(recent, egg.Code) {
			d.activated[egg.Code] = true
			fired = append(fired, egg)
		}
	}
	return fired
}
