package typestrike

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/typestrike/internal/core"
)

// Minimum screen size for the play field.
const (
	minScreenW = 40
	minScreenH = 12
)

// Render draws the current state into dst. The screen is pre-cleared.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.Snapshot())
}

// RenderSnapshot draws a snapshot; split out so hosts and tests can render
// without a live game.
func RenderSnapshot(dst *core.Screen, s Snapshot) {
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCenteredColor(dst.Height()/2, "Terminal too small", core.ColorDanger)
		return
	}

	switch s.Phase {
	case PhaseMenu:
		renderMenu(dst, s)
	case PhaseLevelStart:
		renderLevelCard(dst, s)
	case PhasePlaying:
		renderField(dst, s)
	case PhaseLevelComplete, PhaseGameOver:
		renderResult(dst, s)
	}
}

func renderMenu(dst *core.Screen, s Snapshot) {
	dst.DrawTextCenteredColor(1, "T Y P E S T R I K E", core.ColorWord)
	dst.DrawTextCenteredColor(2, "type the falling letters before they land", core.ColorMuted)

	// Scrolling window of levels around the cursor.
	rows := dst.Height() - 7
	first := core.Clamp(s.MenuCursor-rows/2, 0, core.Max(0, LevelCount()-rows))
	for i := 0; i < rows && first+i < LevelCount(); i++ {
		idx := first + i
		lvl := GetLevel(idx)
		line := fmt.Sprintf("  %-4s %-16s %3.0fs", lvl.ID, lvl.Name, lvl.Duration)
		color := core.ColorHUD
		if idx == s.MenuCursor {
			line = "> " + line[2:]
			color = core.ColorTargeted
		}
		dst.DrawTextCenteredColor(4+i, line, color)
	}

	dst.DrawTextCenteredColor(dst.Height()-2, "up/down level  enter start  h history  a achievements  q quit", core.ColorMuted)
}

func renderLevelCard(dst *core.Screen, s Snapshot) {
	y := dst.Height()/2 - 4
	dst.DrawTextCenteredColor(y, fmt.Sprintf("LEVEL %s", s.Level.ID), core.ColorWord)
	dst.DrawTextCenteredColor(y+1, s.Level.Name, core.ColorBrightCyan)
	y = drawWrapped(dst, y+3, s.Level.Description, core.ColorHUD)
	y = drawWrapped(dst, y+1, "Hint: "+s.Level.Hint, core.ColorGood)
	if s.Level.EasterEgg != "" {
		y = drawWrapped(dst, y+1, s.Level.EasterEgg, core.ColorMagenta)
	}
	keys := fmt.Sprintf("Keys: %s", strings.Join(s.Level.Letters, " "))
	if len(s.Level.Words) > 0 {
		keys += "  + words"
	}
	dst.DrawTextCenteredColor(y+1, keys, core.ColorMuted)
	dst.DrawTextCenteredColor(dst.Height()-2, "enter start  esc menu", core.ColorMuted)
}

func renderField(dst *core.Screen, s Snapshot) {
	renderHUD(dst, s)

	field := core.NewRect(0, 1, dst.Width(), dst.Height()-2)
	border := core.ColorMuted
	switch s.Flash.Kind {
	case FlashHit:
		border = core.ColorGood
	case FlashMiss:
		border = core.ColorDanger
	}
	dst.DrawBox(field, border)
	inner := field.Inset(1)

	for _, p := range s.Particles {
		x, y := inner.Project(p.X, p.Y, s.Canvas.Width, s.Canvas.Height)
		if inner.Contains(x, y) {
			glyph := '·'
			if p.Life > 0.6 {
				glyph = '*'
			}
			dst.SetColor(x, y, glyph, core.ColorParticle)
		}
	}

	for _, t := range s.Targets {
		x, y := inner.Project(t.X, t.Y, s.Canvas.Width, s.Canvas.Height)
		if y < inner.Y || y >= inner.Bottom() {
			continue
		}
		color := core.ColorLetter
		switch {
		case t.Targeted:
			color = core.ColorTargeted
		case t.IsWord:
			color = core.ColorWord
		}
		text := t.Text
		x = core.Clamp(x-len(text)/2, inner.X, inner.Right()-len(text))
		dst.DrawTextColor(x, y, text, color)
	}

	footer := dst.Height() - 1
	dst.DrawTextColor(1, footer, "> "+s.WordBuffer, core.ColorHUD)
	if s.Banner.Text != "" {
		dst.DrawTextCenteredColor(footer, s.Banner.Text, core.ColorMagenta)
	}
}

func renderHUD(dst *core.Screen, s Snapshot) {
	lives := strings.Repeat("♥", core.Max(0, s.Lives))
	if s.GodMode {
		lives = "♥ x ∞"
	} else if s.Lives > s.MaxLives {
		lives = fmt.Sprintf("♥ x %d", s.Lives)
	}

	left := fmt.Sprintf(" %s %s ", s.Level.ID, s.Level.Name)
	dst.DrawTextColor(0, 0, left, core.ColorWord)
	x := len([]rune(left))
	dst.DrawTextColor(x, 0, lives, core.ColorDanger)
	x += len([]rune(lives)) + 2

	dst.DrawTextColor(x, 0, fmt.Sprintf("Score %d", s.Score), core.ColorHUD)
	x += len(fmt.Sprintf("Score %d", s.Score)) + 2

	combo := fmt.Sprintf("Combo %d x%d", s.Combo, s.Multiplier)
	dst.DrawTextColor(x, 0, combo, core.ComboColor(s.Combo))

	right := fmt.Sprintf("Acc %d%%  %ds ", s.Accuracy, int(s.Remaining+0.999))
	dst.DrawTextColor(dst.Width()-len(right), 0, right, core.ColorHUD)
}

func renderResult(dst *core.Screen, s Snapshot) {
	title, color := "LEVEL COMPLETE!", core.ColorGood
	keys := "enter next level  m menu"
	if s.Phase == PhaseGameOver {
		title, color = "GAME OVER", core.ColorDanger
		keys = "r/enter retry from level 1  m menu"
	}

	y := 2
	dst.DrawTextCenteredColor(y, title, color)
	dst.DrawTextCenteredColor(y+1, fmt.Sprintf("%s %s", s.Level.ID, s.Level.Name), core.ColorWord)

	if r := s.Result; r != nil {
		lines := []string{
			fmt.Sprintf("Score       %d", r.Score),
			fmt.Sprintf("WPM         %d", r.WPM()),
			fmt.Sprintf("Accuracy    %d%%", r.Accuracy()),
			fmt.Sprintf("Best combo  %d", r.BestCombo),
			fmt.Sprintf("Words       %d", r.Words),
			fmt.Sprintf("Time        %.0fs", r.Elapsed.Seconds()),
		}
		for i, l := range lines {
			dst.DrawTextCenteredColor(y+3+i, fmt.Sprintf("%-18s", l), core.ColorHUD)
		}
		y += 3 + len(lines) + 1
	}

	feedback := s.Feedback
	if feedback == "" {
		feedback = "Coach is reviewing your session..."
	}
	y = drawWrapped(dst, y, feedback, core.ColorBrightCyan)

	if len(s.Unlocked) > 0 {
		drawWrapped(dst, y+1, "Unlocked: "+strings.Join(s.Unlocked, ", "), core.ColorOrange)
	}

	dst.DrawTextCenteredColor(dst.Height()-2, keys, core.ColorMuted)
}

// drawWrapped word-wraps text to the screen width minus a margin, centered,
// and returns the next free row.
func drawWrapped(dst *core.Screen, y int, text string, c core.Color) int {
	width := dst.Width() - 8
	for _, line := range wrap(text, width) {
		dst.DrawTextCenteredColor(y, line, c)
		y++
	}
	return y
}

func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
