package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typestrike/internal/games/typestrike"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows the level curriculum with each level's keys and your best score.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	best := map[string]int{}
	if cfg, err := loadConfig(); err == nil {
		if prof, openErr := openProfile(cfg); openErr == nil {
			if scores, scoreErr := prof.store.BestByLevel(context.Background()); scoreErr == nil {
				best = scores
			}
			prof.Close()
		}
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-5s  %-24s  %-6s  %s\n", "#", "ID", "Name", "Best", "Keys")
	fmt.Printf("  %-3s  %-5s  %-24s  %-6s  %s\n", "-", "--", "----", "----", "----")

	for i := 0; i < typestrike.LevelCount(); i++ {
		lvl := typestrike.GetLevel(i)
		score := "-"
		if b, ok := best[lvl.ID]; ok {
			score = fmt.Sprint(b)
		}
		keys := strings.Join(lvl.Letters, "")
		if lvl.HasWords() {
			keys += fmt.Sprintf(" +%d words", len(lvl.Words))
		}
		fmt.Printf("  %-3d  %-5s  %-24s  %-6s  %s\n", lvl.Number, lvl.ID, lvl.Name, score, keys)
	}

	fmt.Println()
	fmt.Println("Run 'typestrike play --level <#>' to start at a level.")
	return nil
}
