package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamdan/hifzi/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show memorization statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		states, err := s.VerseStates().All(cmd.Context())
		if err != nil {
			return err
		}

		counts := map[progress.Status]int{}
		for _, st := range states {
			counts[st.Status]++
		}

		fmt.Printf("Verses tracked: %d\n", len(states))
		for _, status := range []progress.Status{
			progress.StatusNew, progress.StatusLearning,
			progress.StatusReviewing, progress.StatusMastered,
		} {
			fmt.Printf("  %-10s %d\n", status, counts[status])
		}

		profile, err := s.Learner().Load(cmd.Context())
		if err != nil {
			return err
		}
		if profile == nil {
			return nil
		}

		fmt.Println()
		fmt.Printf("Level %d — %d XP total\n", profile.Level, profile.TotalXP)
		fmt.Printf("Daily: %d/%d XP\n", profile.DailyXP, profile.DailyGoal)
		fmt.Printf("Streak: %d days (longest %d)\n", profile.CurrentStreak, profile.LongestStreak)
		fmt.Printf("Memorized: %d verses, %d lessons (%d perfect)\n",
			profile.VersesMemorized, profile.LessonsCompleted, profile.PerfectLessons)
		return nil
	},
}
