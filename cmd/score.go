package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamdan/hifzi/internal/align"
	"github.com/hamdan/hifzi/internal/content"
	"github.com/hamdan/hifzi/internal/progress"
	"github.com/hamdan/hifzi/internal/recite"
)

var scoreCmd = &cobra.Command{
	Use:   "score <surah> <ayah> <transcript>",
	Short: "Score a recitation transcript against a verse",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		surah, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid surah number %q", args[0])
		}
		ayah, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid ayah number %q", args[1])
		}
		transcript := strings.Join(args[2:], " ")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		client := content.NewClient(cfg.Content.BaseURL, cfg.Content.APIKey, log)
		verses, err := client.GetVerses(cmd.Context(), surah, ayah, ayah, "quran-uthmani")
		if err != nil {
			return fmt.Errorf("fetch verse: %w", err)
		}
		if len(verses) == 0 {
			return fmt.Errorf("surah %d has no ayah %d", surah, ayah)
		}
		verse := verses[0]

		tracker := progress.NewTracker(s.VerseStates())
		svc := recite.NewService(tracker, s.Learner(), cfg.Scoring.PassThreshold, log)

		practice, _ := cmd.Flags().GetBool("practice")
		durationSecs, _ := cmd.Flags().GetFloat64("duration")
		duration := time.Duration(durationSecs * float64(time.Second))

		var report recite.Report
		if practice {
			report = svc.ScoreOnly(verse, transcript)
		} else {
			r, err := svc.Submit(cmd.Context(), verse, transcript, duration)
			if err != nil {
				return err
			}
			report = *r
		}

		printReport(&report, practice)
		return nil
	},
}

func init() {
	scoreCmd.Flags().Bool("practice", false, "Score without recording a recall test")
	scoreCmd.Flags().Float64("duration", 0, "Recitation duration in seconds (feeds the XP bonus)")
}

func printReport(r *recite.Report, practice bool) {
	fmt.Printf("Verse %s\n", r.VerseID)
	fmt.Printf("Accuracy:   %.1f%%\n", r.Accuracy)
	fmt.Printf("Error rate: %.3f\n", r.ErrorRate)

	verdict := "FAIL"
	if r.Passed {
		verdict = "PASS"
	}
	fmt.Printf("Result:     %s\n", verdict)

	if len(r.Feedback) > 0 {
		fmt.Println()
		for _, w := range r.Feedback {
			switch w.Status {
			case align.StatusCorrect:
				fmt.Printf("  %2d  ✓ %s\n", w.Index+1, w.Word)
			case align.StatusIncorrect:
				fmt.Printf("  %2d  ✗ %s (expected %s)\n", w.Index+1, w.Word, w.Expected)
			case align.StatusMissing:
				fmt.Printf("  %2d  - missing: %s\n", w.Index+1, w.Expected)
			case align.StatusExtra:
				fmt.Printf("  %2d  + extra: %s\n", w.Index+1, w.Word)
			}
		}
	}

	if !practice {
		fmt.Printf("\nXP earned: %d\n", r.XPEarned)
		if r.GoalCompleted {
			fmt.Println("Daily goal reached!")
		}
	}
}
