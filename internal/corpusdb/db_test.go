package corpusdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/subverse/internal/corpus"
)

func openTemp(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "corpus.db")
}

func TestImportLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(openTemp(t))
	require.NoError(t, err)
	defer db.Close()

	src, err := corpus.Default()
	require.NoError(t, err)

	n, err := Import(ctx, db, src)
	require.NoError(t, err)
	_, _, units := src.Stats()
	assert.Equal(t, units, n)

	got, err := Load(ctx, db)
	require.NoError(t, err)
	if diff := cmp.Diff(src, got); diff != "" {
		t.Fatalf("corpus changed through SQLite (-want +got):\n%s", diff)
	}

	// Both sources must yield the same puzzles.
	a, err := corpus.NewIndexer(src).PrefixesOfLength(6)
	require.NoError(t, err)
	b, err := corpus.NewIndexer(got).PrefixesOfLength(6)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := openTemp(t)
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	db, err := Open(openTemp(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = Load(ctx, db)
	assert.Error(t, err, "empty table")

	_, err = db.Exec(`INSERT INTO units (ordinal, document_id, section_id, unit_id, text) VALUES
		(1, 'Gen', '1', '1', 'a.'), (2, 'Ex', '1', '1', 'b.'), (3, 'Gen', '2', '1', 'c.')`)
	require.NoError(t, err)
	_, err = Load(ctx, db)
	assert.ErrorContains(t, err, "not contiguous")

	_, err = db.Exec(`DELETE FROM units`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO units (ordinal, document_id, section_id, unit_id, text) VALUES
		(1, 'D', '1', '1', '   ')`)
	require.NoError(t, err)
	_, err = Load(ctx, db)
	assert.ErrorContains(t, err, "D 1:1: empty text")
}

func TestLoadOrdersByOrdinal(t *testing.T) {
	ctx := context.Background()
	db, err := Open(openTemp(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO units (ordinal, document_id, section_id, unit_id, text) VALUES
		(20, 'Gen', '1', '2', 'second.'), (10, 'Gen', '1', '1', 'first.')`)
	require.NoError(t, err)

	c, err := Load(ctx, db)
	require.NoError(t, err)
	require.Len(t, c.Documents, 1)
	assert.Equal(t, []corpus.Unit{{ID: "1", Text: "first."}, {ID: "2", Text: "second."}},
		c.Documents[0].Sections[0].Units)
}
