package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievement progress",
	Args:  cobra.NoArgs,
	RunE:  runAchievements,
}

func runAchievements(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	prof, err := openProfile(cfg)
	if err != nil {
		return fmt.Errorf("error opening sessions database: %w", err)
	}
	defer prof.Close()

	all, err := prof.achievements.All(context.Background())
	if err != nil {
		return err
	}

	unlocked := 0
	for _, a := range all {
		mark := "  "
		if a.Unlocked {
			mark = "* "
			unlocked++
		}
		progress := ""
		if a.Target > 0 && !a.Unlocked {
			progress = fmt.Sprintf(" (%d/%d)", a.Progress, a.Target)
		}
		fmt.Printf("%s%-18s %3d%%  %s%s\n", mark, a.Name, a.Percent(), a.Description, progress)
	}
	fmt.Println()
	fmt.Printf("%d of %d unlocked\n", unlocked, len(all))
	return nil
}
