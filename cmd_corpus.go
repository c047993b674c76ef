// cmd_corpus.go
//
// corpus import: copy a YAML corpus (or the embedded default) into SQLite so
// the server can run with CORPUS_DB.
// corpus show: print one unit of the configured corpus.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/subverse/internal/corpus"
	"github.com/robalobadob/subverse/internal/corpusdb"
)

var (
	flagDB   string
	flagFile string
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Corpus maintenance",
}

var corpusImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a YAML corpus into a SQLite database",
	RunE:  runCorpusImport,
}

func init() {
	corpusImportCmd.Flags().StringVar(&flagDB, "db", "", "SQLite database path (default CORPUS_DB)")
	corpusImportCmd.Flags().StringVar(&flagFile, "file", "", "YAML corpus (default CORPUS_FILE or embedded)")
	corpusCmd.AddCommand(corpusImportCmd, corpusShowCmd)
}

var corpusShowCmd = &cobra.Command{
	Use:     "show DOC SECTION:UNIT",
	Short:   "Print one unit of the corpus",
	Example: "  subverse corpus show John 11:35",
	Args:    cobra.ExactArgs(2),
	RunE:    runCorpusShow,
}

func runCorpusShow(cmd *cobra.Command, args []string) error {
	sec, unit, ok := strings.Cut(args[1], ":")
	if !ok {
		return fmt.Errorf("bad reference %q: want SECTION:UNIT", args[1])
	}
	c, err := loadCorpus(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	ref := corpus.Ref{DocumentID: args[0], SectionID: sec, UnitID: unit}
	text, ok := c.Lookup(ref)
	if !ok {
		return fmt.Errorf("%s: not in corpus", ref)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", ref, text)
	return nil
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	dbPath := flagDB
	if dbPath == "" {
		dbPath = cfg.CorpusDB
	}
	if dbPath == "" {
		return errors.New("no database: pass --db or set CORPUS_DB")
	}

	var (
		c   *corpus.Corpus
		err error
	)
	switch {
	case flagFile != "":
		c, err = corpus.LoadFile(flagFile)
	case cfg.CorpusFile != "":
		c, err = corpus.LoadFile(cfg.CorpusFile)
	default:
		c, err = corpus.Default()
	}
	if err != nil {
		return err
	}

	db, err := corpusdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := corpusdb.Import(cmd.Context(), db, c)
	if err != nil {
		return err
	}
	log.Info().Str("db", dbPath).Int("units", n).Msg("corpus imported")
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d units into %s\n", n, dbPath)
	return nil
}
