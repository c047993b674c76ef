// cmd_puzzle.go
//
// Offline inspection commands: puzzle and prefixes.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/subverse/internal/corpus"
	"github.com/robalobadob/subverse/internal/daily"
	"github.com/robalobadob/subverse/internal/puzzle"
)

var (
	flagLength int
	flagSeed   string
	flagReveal bool
)

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Print the puzzle for a length and seed",
	Long:  `Selects and shuffles a puzzle exactly as the server would. Without --seed, today's daily seed is used.`,
	RunE:  runPuzzle,
}

var prefixesCmd = &cobra.Command{
	Use:   "prefixes",
	Short: "List every eligible prefix of a length",
	RunE:  runPrefixes,
}

func init() {
	puzzleCmd.Flags().IntVarP(&flagLength, "length", "n", 0, "words per puzzle (default DAILY_LENGTH)")
	puzzleCmd.Flags().StringVarP(&flagSeed, "seed", "s", "", "seed (default today's daily seed)")
	puzzleCmd.Flags().BoolVar(&flagReveal, "reveal", false, "also print the answer and its reference")
	prefixesCmd.Flags().IntVarP(&flagLength, "length", "n", 0, "words per prefix (default DAILY_LENGTH)")
}

func runPuzzle(cmd *cobra.Command, args []string) error {
	c, err := loadCorpus(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	n := flagLength
	if n == 0 {
		n = cfg.DailyLength
	}
	seed := flagSeed
	if seed == "" {
		seed = daily.Seed(time.Now(), cfg.DailySalt)
	}

	p, err := puzzle.NewSelector(corpus.NewIndexer(c)).New(n, seed)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed:   %s\nlength: %d\n", p.Seed, p.Length)
	fmt.Fprintf(out, "first:  %s\n", p.Words[0])
	var tiles []string
	for _, t := range p.Tiles {
		if t.Index != 0 {
			tiles = append(tiles, fmt.Sprintf("[%d] %s", t.Index, t.Word))
		}
	}
	fmt.Fprintf(out, "tiles:  %s\n", strings.Join(tiles, "  "))
	if flagReveal {
		fmt.Fprintf(out, "answer: %s\nref:    %s\n", p.Target(), p.Record.Ref)
	}
	return nil
}

func runPrefixes(cmd *cobra.Command, args []string) error {
	c, err := loadCorpus(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	n := flagLength
	if n == 0 {
		n = cfg.DailyLength
	}
	recs, err := corpus.NewIndexer(c).PrefixesOfLength(n)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range recs {
		fmt.Fprintf(out, "%-12s %s\n", r.Ref, r.PrefixText)
	}
	fmt.Fprintf(out, "%d prefixes of length %d\n", len(recs), n)
	return nil
}
