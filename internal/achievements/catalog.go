// Package achievements tracks unlockable milestones across sessions.
package achievements

import "time"

// Definition describes one achievement. Target > 0 marks a progressive
// achievement that unlocks when Progress reaches Target.
type Definition struct {
	ID          string
	Name        string
	Description string
	Target      int
}

// Catalog lists every achievement in display order.
var Catalog = []Definition{
	{ID: "first-session", Name: "First Steps", Description: "Finish your first typing session"},
	{ID: "speed-demon-50", Name: "Speed Demon I", Description: "Reach 50 WPM"},
	{ID: "speed-demon-75", Name: "Speed Demon II", Description: "Reach 75 WPM"},
	{ID: "speed-demon-100", Name: "Speed Master", Description: "Reach 100 WPM"},
	{ID: "perfectionist", Name: "Perfectionist", Description: "Complete a level with 100% accuracy"},
	{ID: "accuracy-master", Name: "Accuracy Master", Description: "Keep 95%+ accuracy for 5 sessions", Target: 5},
	{ID: "marathon-runner", Name: "Marathon Runner", Description: "Type 1000 letters in total", Target: 1000},
	{ID: "combo-king-50", Name: "Combo King", Description: "Reach a 50x combo"},
	{ID: "combo-master-100", Name: "Combo Master", Description: "Reach a 100x combo"},
	{ID: "level-5", Name: "Upper Row Adept", Description: "Complete level 5"},
	{ID: "level-10", Name: "Lower Row Master", Description: "Complete level 10"},
	{ID: "level-15", Name: "Number Ninja", Description: "Complete level 15"},
	{ID: "level-20", Name: "Ultimate Champion", Description: "Complete level 20"},
	{ID: "word-wizard", Name: "Word Wizard", Description: "Type 50 words correctly", Target: 50},
	{ID: "easter-egg-hunter", Name: "Easter Egg Hunter", Description: "Discover 3 easter eggs", Target: 3},
	{ID: "week-warrior", Name: "Week Warrior", Description: "Play 7 days in a row", Target: 7},
}

// Lookup returns the definition with the given id.
func Lookup(id string) (Definition, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// State is the persisted progress of one achievement.
type State struct {
	ID         string
	Unlocked   bool
	UnlockedAt time.Time
	Progress   int
	UpdatedAt  time.Time
}

// Achievement joins a definition with its current state.
type Achievement struct {
	Definition
	State
}

// Percent returns progress towards the target, 100 once unlocked.
func (a Achievement) Percent() int {
	switch {
	case a.Unlocked:
		return 100
	case a.Target <= 0:
		return 0
	}
	p := a.Progress * 100 / a.Target
	if p > 100 {
		p = 100
	}
	return p
}
