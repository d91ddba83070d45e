package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hamdan/hifzi/internal/content"
)

var versesCmd = &cobra.Command{
	Use:   "verses <surah> [from] [to]",
	Short: "Fetch and print verses of a surah",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		surah, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid surah number %q", args[0])
		}
		from, to := 1, math.MaxInt
		if len(args) > 1 {
			if from, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid ayah number %q", args[1])
			}
			to = from
		}
		if len(args) > 2 {
			if to, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid ayah number %q", args[2])
			}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		client := content.NewClient(cfg.Content.BaseURL, cfg.Content.APIKey, log)
		verses, err := client.GetVerses(cmd.Context(), surah, from, to, "quran-uthmani")
		if err != nil {
			return fmt.Errorf("fetch verses: %w", err)
		}
		if len(verses) == 0 {
			return fmt.Errorf("no verses in surah %d range %d-%d", surah, from, to)
		}

		for _, v := range verses {
			fmt.Printf("%d:%d  %s\n", v.SurahNumber, v.NumberInSurah, v.Text)
		}
		return nil
	},
}
