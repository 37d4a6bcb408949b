package core

// Color represents a foreground color for a screen cell.
// Hosts translate it to ANSI 256-color codes.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Semantic roles used by the renderer.
const (
	ColorLetter   = ColorBrightCyan
	ColorWord     = ColorBrightYellow
	ColorTargeted = ColorOrange
	ColorParticle = ColorYellow
	ColorHUD      = ColorWhite
	ColorDanger   = ColorBrightRed
	ColorGood     = ColorBrightGreen
	ColorMuted    = ColorGray
)

// ComboColor picks a HUD color that heats up with the combo multiplier.
func ComboColor(combo int) Color {
	switch {
	case combo >= 50:
		return ColorMagenta
	case combo >= 30:
		return ColorBrightRed
	case combo >= 10:
		return ColorOrange
	case combo > 0:
		return ColorBrightGreen
	default:
		return ColorMuted
	}
}
