// Package resource loads native resource files (.resx, .resw, .resjson)
// into XLIFF documents and saves XLIFF documents to disk.
package resource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/minios-linux/res2xlf/resjson"
	"github.com/minios-linux/res2xlf/resx"
	"github.com/minios-linux/res2xlf/xliff"
	"golang.org/x/text/language"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// Tool is written to the <header> of every loaded file.
var Tool = xliff.Tool{ID: "res2xlf", Name: "res2xlf"}

// Kind identifies a native resource format.
type Kind int

const (
	// Resx is a .NET .resx file.
	Resx Kind = iota
	// Resw is a UWP .resw file (same layout as .resx).
	Resw
	// ResJSON is a Windows .resjson file.
	ResJSON
)

func (k Kind) String() string {
	switch k {
	case Resx:
		return "resx"
	case Resw:
		return "resw"
	case ResJSON:
		return "resjson"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// datatype is the XLIFF datatype attribute for the kind.
func (k Kind) datatype() string {
	if k == ResJSON {
		return "resjson"
	}
	return "resx"
}

// KindFromPath infers the format from the file extension (case-insensitive).
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".resx":
		return Resx, nil
	case ".resw":
		return Resw, nil
	case ".resjson":
		return ResJSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Load reads a resource file into XLIFF documents. One physical file yields
// exactly one document whose source and target language are both source.
// Every unit starts in state "new" with the resource text on both sides.
func Load(path string, source language.Tag, kind Kind) ([]*xliff.Document, error) {
	name := filepath.Base(path)
	file := &xliff.File{
		Original:       name,
		SourceLanguage: source.String(),
		TargetLanguage: source.String(),
		Datatype:       kind.datatype(),
		Header:         &xliff.Header{Tool: &Tool},
	}

	switch kind {
	case Resx, Resw:
		rf, err := resx.ParseFile(path)
		if err != nil {
			return nil, err
		}
		g := &xliff.Group{ID: name, Datatype: kind.datatype()}
		for _, e := range rf.Entries {
			g.Units = append(g.Units, newUnit(e.Name, e.Value, e.Comment))
		}
		file.Body.Groups = append(file.Body.Groups, g)

	case ResJSON:
		jf, err := resjson.ParseFile(path)
		if err != nil {
			return nil, err
		}
		for _, jg := range jf.Groups {
			id := name
			if jg.Path != "" {
				id = jg.Path
			}
			g := &xliff.Group{ID: id, Datatype: kind.datatype()}
			for _, e := range jg.Entries {
				g.Units = append(g.Units, newUnit(e.Key, e.Value, e.Comment))
			}
			file.Body.Groups = append(file.Body.Groups, g)
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}

	doc := xliff.New()
	doc.Files = []*xliff.File{file}
	return []*xliff.Document{doc}, nil
}

func newUnit(id, value, comment string) *xliff.Unit {
	u := &xliff.Unit{
		ID:        id,
		Translate: "yes",
		Space:     "preserve",
		Source:    value,
		Target:    xliff.Target{State: xliff.StateNew, Text: value},
	}
	if comment != "" {
		u.Notes = append(u.Notes, xliff.Note{
			From:      xliff.NoteFromBuild,
			Annotates: "source",
			Priority:  2,
			Content:   comment,
		})
	}
	return u
}

// Save writes the document to path, creating the destination folder.
func Save(doc *xliff.Document, path string) error {
	return doc.WriteFile(path)
}
