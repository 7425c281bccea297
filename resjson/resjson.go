// Package resjson implements reading of Windows .resjson resource files.
//
// A .resjson file is a JSON object that may contain // and /* */ comments,
// trailing commas and a UTF-8 byte order mark:
//
//	{
//	    "Greeting"          : "Hello",
//	    "_Greeting.comment" : "Shown on the start page",
//	    "Menu" : {
//	        "Open" : "Open"
//	    }
//	}
//
//   - String values are resources.
//   - "_Key.comment" attaches a developer comment to Key in the same object.
//     Any other key starting with "_" is metadata and ignored.
//   - Nested objects form their own group, named by the slash-joined path
//     of object keys ("Menu", "Menu/File", …). Keys inside keep their leaf
//     name, so the same key may appear in several groups.
//
// Key order from the file is preserved.
package resjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"
)

// ---------------------------------------------------------------------------
// File model
// ---------------------------------------------------------------------------

// Entry is a single string resource.
type Entry struct {
	Key     string
	Value   string
	Comment string
}

// Group holds the resources of one JSON object.
type Group struct {
	// Path is the slash-joined key path of the object; empty for the root.
	Path    string
	Entries []*Entry
}

// File represents a parsed .resjson file.
type File struct {
	// Groups in document order, parents before their nested objects.
	// Objects without string resources are omitted.
	Groups []*Group
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a .resjson file from disk.
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

// Parse parses .resjson content from a byte slice.
func Parse(data []byte) (*File, error) {
	data, err := standardize(data)
	if err != nil {
		return nil, err
	}

	f := &File{}
	if err := f.parseObject(data, ""); err != nil {
		return nil, err
	}

	groups := f.Groups[:0]
	for _, g := range f.Groups {
		if len(g.Entries) > 0 {
			groups = append(groups, g)
		}
	}
	f.Groups = groups
	return f, nil
}

// parseObject streams one JSON object, appending its group before the
// groups of any nested objects.
func (f *File) parseObject(data []byte, path string) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parsing resjson: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("parsing resjson: expected '{', got %v", tok)
	}

	g := &Group{Path: path}
	f.Groups = append(f.Groups, g)
	comments := make(map[string]string)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing resjson key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("parsing resjson: expected string key, got %T", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("parsing resjson value for %q: %w", key, err)
		}

		if strings.HasPrefix(key, "_") {
			if name, ok := strings.CutSuffix(key[1:], ".comment"); ok {
				var s string
				if err := json.Unmarshal(raw, &s); err == nil {
					comments[name] = s
				}
			}
			continue
		}

		switch bytes.TrimSpace(raw)[0] {
		case '{':
			if err := f.parseObject(raw, joinPath(path, key)); err != nil {
				return err
			}
		case '"':
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return fmt.Errorf("parsing resjson value for %q: %w", key, err)
			}
			g.Entries = append(g.Entries, &Entry{Key: key, Value: s})
		}
	}

	// Closing '}'
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parsing resjson: %w", err)
	}

	for _, e := range g.Entries {
		e.Comment = comments[e.Key]
	}
	return nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "/" + key
}

var utf8BOM = []byte("\xef\xbb\xbf")

// standardize turns .resjson content into plain JSON: a leading UTF-8 BOM is
// dropped, and comments and trailing commas become spaces so byte offsets
// in later errors still point into the original file.
func standardize(data []byte) ([]byte, error) {
	data = bytes.Clone(bytes.TrimPrefix(data, utf8BOM))
	out, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing resjson: %w", err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Count returns the number of string resources across all groups.
func (f *File) Count() int {
	n := 0
	for _, g := range f.Groups {
		n += len(g.Entries)
	}
	return n
}
