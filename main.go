// main.go
//
// subverse command line.
//   subverse serve                       run the HTTP API
//   subverse puzzle --length 5 --seed s  print a puzzle's shuffled tiles
//   subverse prefixes --length 5         list eligible prefixes
//   subverse corpus import --db path     copy a YAML corpus into SQLite
//
// Configuration comes from the environment and an optional .env file
// (see internal/config).

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/subverse/internal/config"
	"github.com/robalobadob/subverse/internal/corpus"
	"github.com/robalobadob/subverse/internal/corpusdb"
	"github.com/robalobadob/subverse/internal/httpserver"
	"github.com/robalobadob/subverse/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "subverse",
	Short:         "Daily verse-reassembly puzzles",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		setupLogging(cfg)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, puzzleCmd, prefixesCmd, corpusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("subverse")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := loadCorpus(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	ix := corpus.NewIndexer(c)
	lengths := []int{cfg.DailyLength}
	for n := cfg.LevelMin; n <= cfg.LevelMax; n++ {
		lengths = append(lengths, n)
	}
	if err := ix.Warm(cmd.Context(), lengths...); err != nil {
		return err
	}
	docs, sections, units := c.Stats()
	log.Info().Int("documents", docs).Int("sections", sections).Int("units", units).Msg("corpus loaded")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(store.NewMemoryStore(), ix, cfg)
	log.Info().Str("port", cfg.Port).Msg("starting subverse server")
	return srv.Start(ctx, ":"+cfg.Port)
}

// loadCorpus picks the corpus source: SQLite, then YAML file, then the embedded default.
func loadCorpus(ctx context.Context, cfg *config.Config) (*corpus.Corpus, error) {
	switch {
	case cfg.CorpusDB != "":
		db, err := corpusdb.Open(cfg.CorpusDB)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return corpusdb.Load(ctx, db)
	case cfg.CorpusFile != "":
		return corpus.LoadFile(cfg.CorpusFile)
	default:
		return corpus.Default()
	}
}

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
