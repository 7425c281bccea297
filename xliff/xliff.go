// Package xliff implements the in-memory XLIFF 1.2 document model used by
// res2xlf, together with reading and writing of .xlf files.
//
// A Document is a tree: Document → File → Group → Unit. Every unit belongs
// to exactly one group, every group to exactly one file and every file to
// exactly one document. Nothing is shared between trees.
//
// Only the subset of XLIFF 1.2 that resource files map onto is modelled:
// <file>, <header><tool/>, <body>, <group>, <trans-unit>, <source>,
// <target state="…"> and <note>.
package xliff

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
)

// Namespace is the XLIFF 1.2 document namespace.
const Namespace = "urn:oasis:names:tc:xliff:document:1.2"

// Version is the XLIFF version written to the root element.
const Version = "1.2"

// Note authors.
const (
	// NoteFromUpdate tags notes added by the recycling pass.
	NoteFromUpdate = "MultilingualUpdate"
	// NoteFromBuild tags notes carried over from resource comments.
	NoteFromBuild = "MultilingualBuild"
)

// ---------------------------------------------------------------------------
// Data model
// ---------------------------------------------------------------------------

// State is the workflow state of a translation unit's target.
type State string

// XLIFF 1.2 target states.
const (
	StateNew                    State = "new"
	StateNeedsTranslation       State = "needs-translation"
	StateNeedsReviewTranslation State = "needs-review-translation"
	StateTranslated             State = "translated"
	StateFinal                  State = "final"
	StateSignedOff              State = "signed-off"
)

// Document is one loaded XLIFF document.
type Document struct {
	XMLName xml.Name `xml:"urn:oasis:names:tc:xliff:document:1.2 xliff"`
	Version string   `xml:"version,attr"`
	Files   []*File  `xml:"file"`
}

// File is one logical resource file inside a document.
type File struct {
	Original       string  `xml:"original,attr"`
	SourceLanguage string  `xml:"source-language,attr"`
	TargetLanguage string  `xml:"target-language,attr,omitempty"`
	Datatype       string  `xml:"datatype,attr"`
	Header         *Header `xml:"header,omitempty"`
	Body           Body    `xml:"body"`
}

// Header carries the tool that produced the file.
type Header struct {
	Tool *Tool `xml:"tool,omitempty"`
}

// Tool identifies the producing tool.
type Tool struct {
	ID      string `xml:"tool-id,attr"`
	Name    string `xml:"tool-name,attr"`
	Version string `xml:"tool-version,attr,omitempty"`
}

// Body holds the translation groups of a file.
type Body struct {
	Groups []*Group `xml:"group"`
}

// Group is a named bucket of translation units.
type Group struct {
	ID       string  `xml:"id,attr"`
	Datatype string  `xml:"datatype,attr,omitempty"`
	Units    []*Unit `xml:"trans-unit"`
}

// Unit is a single translation unit.
//
// ID is unique within its originating resource file at best; the same ID
// may appear in several groups or files.
type Unit struct {
	ID        string `xml:"id,attr"`
	Translate string `xml:"translate,attr,omitempty"`
	Space     string `xml:"http://www.w3.org/XML/1998/namespace space,attr,omitempty"`
	Source    string `xml:"source"`
	Target    Target `xml:"target"`
	Notes     []Note `xml:"note"`
}

// Target is the target segment of a unit with its workflow state.
type Target struct {
	State State  `xml:"state,attr,omitempty"`
	Text  string `xml:",chardata"`
}

// Note is an annotation on a unit.
type Note struct {
	From      string `xml:"from,attr,omitempty"`
	Annotates string `xml:"annotates,attr,omitempty"`
	Priority  int    `xml:"priority,attr,omitempty"`
	Content   string `xml:",chardata"`
}

// New returns an empty document.
func New() *Document {
	return &Document{Version: Version}
}

// ---------------------------------------------------------------------------
// Traversal
// ---------------------------------------------------------------------------

// Units yields every unit of the document depth-first in document order:
// files, then groups, then units.
func (d *Document) Units() iter.Seq[*Unit] {
	return func(yield func(*Unit) bool) {
		for _, f := range d.Files {
			for _, g := range f.Body.Groups {
				for _, u := range g.Units {
					if !yield(u) {
						return
					}
				}
			}
		}
	}
}

// Count returns the number of units in the document.
func (d *Document) Count() int {
	n := 0
	for range d.Units() {
		n++
	}
	return n
}

// CountStates returns the number of units per target state.
func (d *Document) CountStates() map[State]int {
	counts := make(map[State]int)
	for u := range d.Units() {
		counts[u.Target.State]++
	}
	return counts
}

// SetTargetLanguage sets the target language on every file.
func (d *Document) SetTargetLanguage(tag language.Tag) {
	for _, f := range d.Files {
		f.TargetLanguage = tag.String()
	}
}

// AddNote appends a note to the unit.
func (u *Unit) AddNote(from, content string) {
	u.Notes = append(u.Notes, Note{From: from, Content: content})
}

// ---------------------------------------------------------------------------
// Reading
// ---------------------------------------------------------------------------

// ParseFile reads and parses an XLIFF file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// Parse parses XLIFF 1.2 data.
func Parse(data []byte) (*Document, error) {
	d := New()
	if err := xml.Unmarshal(data, d); err != nil {
		return nil, err
	}
	if d.Version != Version {
		return nil, fmt.Errorf("unsupported XLIFF version %q", d.Version)
	}
	return d, nil
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Marshal produces the indented XML form of the document. The output only
// depends on the document content.
func (d *Document) Marshal() ([]byte, error) {
	if d.Version == "" {
		d.Version = Version
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding XLIFF: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// WriteFile marshals the document and writes it to path, creating the
// parent directory when needed.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
