// internal/corpus/load.go
//
// Corpus loading from YAML.
//
// File format: a mapping of document → section → unit → text.
//
//	Gen:
//	  "1":
//	    "1": In the beginning God created the heaven and the earth.
//
// Key order in the file is the corpus order. The document is decoded into a
// yaml.Node tree and walked directly so no Go map ever reorders keys.
//
// Constraints:
//   • Leaves must be non-empty scalars; surrounding whitespace is trimmed.
//   • Keys must be unique within their parent.
//   • The embedded default corpus is parsed once (sync.Once).

package corpus

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/subverse/assets"
)

var (
	defaultOnce   sync.Once
	defaultCorpus *Corpus
	defaultErr    error
)

// Default returns the embedded corpus shipped with the binary.
func Default() (*Corpus, error) {
	defaultOnce.Do(func() {
		defaultCorpus, defaultErr = Parse(assets.CorpusYAML())
	})
	return defaultCorpus, defaultErr
}

// LoadFile reads a YAML corpus from path.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML corpus.
func Parse(data []byte) (*Corpus, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, errors.New("corpus: empty document")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("corpus: line %d: expected a mapping of documents", top.Line)
	}

	c := &Corpus{}
	err := eachPair(top, func(docID string, docNode *yaml.Node) error {
		doc := Document{ID: docID}
		if docNode.Kind != yaml.MappingNode {
			return fmt.Errorf("corpus: %s: expected a mapping of sections", docID)
		}
		err := eachPair(docNode, func(secID string, secNode *yaml.Node) error {
			sec := Section{ID: secID}
			if secNode.Kind != yaml.MappingNode {
				return fmt.Errorf("corpus: %s %s: expected a mapping of units", docID, secID)
			}
			err := eachPair(secNode, func(unitID string, unitNode *yaml.Node) error {
				if unitNode.Kind != yaml.ScalarNode {
					return fmt.Errorf("corpus: %s %s:%s: expected text", docID, secID, unitID)
				}
				text := strings.TrimSpace(unitNode.Value)
				if text == "" {
					return fmt.Errorf("corpus: %s %s:%s: empty text", docID, secID, unitID)
				}
				sec.Units = append(sec.Units, Unit{ID: unitID, Text: text})
				return nil
			})
			doc.Sections = append(doc.Sections, sec)
			return err
		})
		c.Documents = append(c.Documents, doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// eachPair visits key/value pairs of a mapping node in document order.
func eachPair(m *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	seen := make(map[string]struct{}, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.Value == "" {
			return fmt.Errorf("corpus: line %d: invalid key", k.Line)
		}
		if _, dup := seen[k.Value]; dup {
			return fmt.Errorf("corpus: line %d: duplicate key %q", k.Line, k.Value)
		}
		seen[k.Value] = struct{}{}
		if err := fn(k.Value, v); err != nil {
			return err
		}
	}
	return nil
}
