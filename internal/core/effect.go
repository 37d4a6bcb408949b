package core

// Effect names a sound or visual cue emitted by the game.
// Hosts map effects to actual audio; the simulation never waits on them.
type Effect string

const (
	EffectLetterHit         Effect = "letterHit"
	EffectWordHit           Effect = "wordHit"
	EffectWrongLetter       Effect = "wrongLetter"
	EffectComboMilestone    Effect = "comboMilestone"
	EffectLevelComplete     Effect = "levelComplete"
	EffectGameOver          Effect = "gameOver"
	EffectAchievementUnlock Effect = "achievementUnlock"
	EffectLifeLost          Effect = "lifeLost"
	EffectPowerUp           Effect = "powerUp"
)

// AllEffects lists every effect name, in a stable order.
func AllEffects() []Effect {
	return []Effect{
		EffectLetterHit,
		EffectWordHit,
		EffectWrongLetter,
		EffectComboMilestone,
		EffectLevelComplete,
		EffectGameOver,
		EffectAchievementUnlock,
		EffectLifeLost,
		EffectPowerUp,
	}
}
