// internal/corpus/index.go
//
// Prefix extraction and per-length memoization.
// Responsibilities:
//   - Split unit text into words (single-space delimiter, punctuation stays attached).
//   - Decide, per requested length n, which units contribute a prefix record.
//   - Memoize the result per n for the lifetime of the Indexer.
//
// Eligibility rule for a unit with words w[0..m-1]:
//   - m == n                       → the whole unit qualifies (prefix = full text).
//   - n <= m and w[n-1] has one of , . ; : ( ) ! ?  → prefix = w[0..n-1] joined.
//   - otherwise                    → excluded for this n.

package corpus

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidLength is returned for a requested prefix length below 1.
var ErrInvalidLength = errors.New("invalid length")

// Punctuation is the set of characters that may close a prefix.
const Punctuation = ",.;:()!?"

// Words splits text on single spaces.
func Words(text string) []string {
	return strings.Split(text, " ")
}

// Join is the inverse of Words.
func Join(words []string) string {
	return strings.Join(words, " ")
}

// PrefixOf reports the eligible prefix of text for length n, if any.
func PrefixOf(text string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	words := Words(text)
	switch {
	case len(words) == n:
		return text, true
	case n <= len(words) && strings.ContainsAny(words[n-1], Punctuation):
		return Join(words[:n]), true
	}
	return "", false
}

// Indexer extracts and caches prefix records of a single immutable corpus.
// Results are populated lazily on first request per length, kept for the
// lifetime of the Indexer and never invalidated. Safe for concurrent use.
type Indexer struct {
	corpus *Corpus

	mu    sync.RWMutex
	cache map[int][]Record
	group singleflight.Group
}

// NewIndexer builds an Indexer over c. c must not be mutated afterwards.
func NewIndexer(c *Corpus) *Indexer {
	return &Indexer{corpus: c, cache: make(map[int][]Record)}
}

// Corpus returns the indexed corpus.
func (ix *Indexer) Corpus() *Corpus { return ix.corpus }

// PrefixesOfLength returns every eligible record for length n in corpus order.
// The returned slice is shared; callers must treat it as read-only.
func (ix *Indexer) PrefixesOfLength(n int) ([]Record, error) {
	if n < 1 {
		return nil, ErrInvalidLength
	}
	ix.mu.RLock()
	recs, ok := ix.cache[n]
	ix.mu.RUnlock()
	if ok {
		return recs, nil
	}

	// Concurrent first requests share one computation.
	v, _, _ := ix.group.Do(strconv.Itoa(n), func() (any, error) {
		recs := extract(ix.corpus, n)
		ix.mu.Lock()
		ix.cache[n] = recs
		ix.mu.Unlock()
		return recs, nil
	})
	return v.([]Record), nil
}

// Count returns the number of eligible records for length n.
func (ix *Indexer) Count(n int) (int, error) {
	recs, err := ix.PrefixesOfLength(n)
	return len(recs), err
}

// Warm populates the cache for every given length concurrently.
func (ix *Indexer) Warm(ctx context.Context, lengths ...int) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, n := range lengths {
		n := n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := ix.PrefixesOfLength(n)
			return err
		})
	}
	return g.Wait()
}

// extract scans the whole corpus for length n.
func extract(c *Corpus, n int) []Record {
	out := []Record{}
	c.Each(func(ref Ref, text string) bool {
		if prefix, ok := PrefixOf(text, n); ok {
			out = append(out, Record{Ref: ref, FullText: text, PrefixText: prefix})
		}
		return true
	})
	return out
}
