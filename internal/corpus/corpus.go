// internal/corpus/corpus.go
//
// Core type definitions for the source text.
// Defines:
//   - Corpus: ordered document → section → unit hierarchy.
//   - Record: one eligible sentence prefix ("subverse") of a unit.
//
// Notes:
//   - Every level is a slice, never a map: iteration order is the order of the
//     corpus definition and downstream selection indices depend on it.

package corpus

import "fmt"

// Corpus is the immutable text source puzzles are drawn from.
type Corpus struct {
	Documents []Document
}

// Document is the top level of the hierarchy (a book).
type Document struct {
	ID       string
	Sections []Section
}

// Section groups numbered units (a chapter).
type Section struct {
	ID    string
	Units []Unit
}

// Unit is a single line of text (a verse).
type Unit struct {
	ID   string
	Text string
}

// Ref addresses one unit within a corpus.
type Ref struct {
	DocumentID string `json:"documentId"`
	SectionID  string `json:"sectionId"`
	UnitID     string `json:"unitId"`
}

// String renders the reference as "Doc Section:Unit".
func (r Ref) String() string {
	return fmt.Sprintf("%s %s:%s", r.DocumentID, r.SectionID, r.UnitID)
}

// Record is an eligible prefix of one unit for a given word length.
type Record struct {
	Ref
	FullText   string `json:"fullText"`
	PrefixText string `json:"prefixText"`
}

// Each walks every unit in corpus order. Returning false from fn stops the walk.
func (c *Corpus) Each(fn func(ref Ref, text string) bool) {
	if c == nil {
		return
	}
	for _, d := range c.Documents {
		for _, s := range d.Sections {
			for _, u := range s.Units {
				if !fn(Ref{DocumentID: d.ID, SectionID: s.ID, UnitID: u.ID}, u.Text) {
					return
				}
			}
		}
	}
}

// Lookup returns the text of the addressed unit.
func (c *Corpus) Lookup(ref Ref) (string, bool) {
	var (
		text  string
		found bool
	)
	c.Each(func(r Ref, t string) bool {
		if r == ref {
			text, found = t, true
			return false
		}
		return true
	})
	return text, found
}

// Stats returns counts of documents, sections and units.
func (c *Corpus) Stats() (documents, sections, units int) {
	if c == nil {
		return 0, 0, 0
	}
	documents = len(c.Documents)
	for _, d := range c.Documents {
		sections += len(d.Sections)
		for _, s := range d.Sections {
			units += len(s.Units)
		}
	}
	return documents, sections, units
}
