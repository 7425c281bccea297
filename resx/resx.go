// Package resx implements reading of .NET .resx and UWP .resw resource files.
//
// Both formats share the same XML layout:
//
//	<root>
//	  <resheader name="resmimetype">…</resheader>
//	  <data name="Greeting" xml:space="preserve">
//	    <value>Hello</value>
//	    <comment>Shown on the start page</comment>
//	  </data>
//	</root>
//
// Only string resources are returned. Entries with a type or mimetype
// attribute (images, serialized objects, file references) and designer
// entries (names starting with ">>" or "$this.") are skipped.
package resx

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Entry is a single string resource.
type Entry struct {
	// Name is the resource name (attribute name="…").
	Name string
	// Value is the resource text.
	Value string
	// Comment is the developer comment, if any.
	Comment string
}

// File represents a parsed resource file.
type File struct {
	// Entries in document order. Duplicate names are kept.
	Entries []*Entry
}

type xmlRoot struct {
	XMLName xml.Name  `xml:"root"`
	Data    []xmlData `xml:"data"`
}

type xmlData struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	MimeType string `xml:"mimetype,attr"`
	Value    string `xml:"value"`
	Comment  string `xml:"comment"`
}

// ParseFile reads and parses a .resx or .resw file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses resource file data.
func Parse(data []byte) (*File, error) {
	var root xmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	f := &File{}
	for _, d := range root.Data {
		if !isString(d) {
			continue
		}
		f.Entries = append(f.Entries, &Entry{
			Name:    d.Name,
			Value:   d.Value,
			Comment: d.Comment,
		})
	}
	return f, nil
}

// isString reports whether a <data> element is a localizable string.
func isString(d xmlData) bool {
	if d.Name == "" || d.Type != "" || d.MimeType != "" {
		return false
	}
	return !strings.HasPrefix(d.Name, ">>") && !strings.HasPrefix(d.Name, "$this.")
}

// Names returns the resource names in document order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Entries))
	for _, e := range f.Entries {
		names = append(names, e.Name)
	}
	return names
}
