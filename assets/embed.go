// assets/embed.go
//
// Files compiled into the binary.
//   - corpus.yaml: default corpus used when no CORPUS_FILE / CORPUS_DB is configured.

package assets

import (
	_ "embed"
)

//go:embed corpus.yaml
var corpusYAML []byte

// CorpusYAML returns the raw embedded default corpus.
func CorpusYAML() []byte {
	return corpusYAML
}
