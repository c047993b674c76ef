// internal/corpusdb/db.go
//
// SQLite-backed corpus source.
// Responsibilities:
//   - Opening SQLite databases with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Loading a corpus from the units table in ordinal order.
//   - Importing a corpus into the units table (replaces previous contents).

package corpusdb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/subverse/internal/corpus"
)

//go:embed sql/*.sql
var migrations embed.FS

// Open opens (and creates if missing) a SQLite database file and migrates it.
func Open(dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/corpus.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies embedded migrations in lexical order, each in its own transaction.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(migrations, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk sql dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Load reads the corpus in ordinal order. Units of one document and of one
// section must be contiguous, otherwise the hierarchy would be ambiguous.
func Load(ctx context.Context, db *sql.DB) (*corpus.Corpus, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT document_id, section_id, unit_id, text FROM units ORDER BY ordinal ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &corpus.Corpus{}
	seenDoc := map[string]bool{}
	seenSec := map[string]bool{}
	for rows.Next() {
		var docID, secID, unitID, text string
		if err := rows.Scan(&docID, &secID, &unitID, &text); err != nil {
			return nil, err
		}

		n := len(c.Documents)
		if n == 0 || c.Documents[n-1].ID != docID {
			if seenDoc[docID] {
				return nil, fmt.Errorf("corpusdb: document %s is not contiguous", docID)
			}
			seenDoc[docID] = true
			c.Documents = append(c.Documents, corpus.Document{ID: docID})
			n++
		}
		doc := &c.Documents[n-1]

		m := len(doc.Sections)
		if m == 0 || doc.Sections[m-1].ID != secID {
			key := docID + "\x00" + secID
			if seenSec[key] {
				return nil, fmt.Errorf("corpusdb: section %s %s is not contiguous", docID, secID)
			}
			seenSec[key] = true
			doc.Sections = append(doc.Sections, corpus.Section{ID: secID})
			m++
		}
		sec := &doc.Sections[m-1]
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("corpusdb: %s %s:%s: empty text", docID, secID, unitID)
		}
		sec.Units = append(sec.Units, corpus.Unit{ID: unitID, Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(c.Documents) == 0 {
		return nil, fmt.Errorf("corpusdb: units table is empty")
	}
	return c, nil
}

// Import replaces the stored corpus with c and returns the number of units written.
func Import(ctx context.Context, db *sql.DB, c *corpus.Corpus) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM units`); err != nil {
		return 0, fmt.Errorf("clear units: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO units (ordinal, document_id, section_id, unit_id, text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	c.Each(func(ref corpus.Ref, text string) bool {
		if _, err = stmt.ExecContext(ctx, n, ref.DocumentID, ref.SectionID, ref.UnitID, text); err != nil {
			err = fmt.Errorf("insert %s: %w", ref, err)
			return false
		}
		n++
		return true
	})
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
