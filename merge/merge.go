// Package merge implements the recycling merge of a translated resource
// document into the XLIFF workflow.
//
// The default-language document supplies the authoritative source text.
// A translated document, loaded with its translations sitting on the source
// side, is rewritten so that each matched unit carries the default-language
// text as source and keeps the old text as target, marked for recycling.
package merge

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/minios-linux/res2xlf/xliff"
	"golang.org/x/text/language"
)

// ErrDocumentCount is returned when a single resource file did not load as
// exactly one document.
var ErrDocumentCount = errors.New("unexpected number of XLIFF documents")

// NeedsReviewNote is attached to units whose translation equals the source.
const NeedsReviewNote = "Resource is marked as 'Needs review' since the Source and target were the same value."

// Extension of the generated files.
const Extension = ".xlf"

// Stats summarizes one merge.
type Stats struct {
	// Matched counts matched target units (one source unit may match several).
	Matched int
	// NeedsReview counts matches whose text was identical to the source.
	NeedsReview int
	// Translated counts matches that received the default-language source.
	Translated int
	// Unmatched counts source units absent from the target document.
	Unmatched int
	// TargetOnly counts target units whose ID does not occur in the source.
	TargetOnly int
}

// Single returns the only document of a load result.
func Single(docs []*xliff.Document) (*xliff.Document, error) {
	if len(docs) != 1 {
		return nil, fmt.Errorf("%w: got %d, want 1", ErrDocumentCount, len(docs))
	}
	return docs[0], nil
}

// FindMatches returns every unit in targets whose ID equals src.ID, in
// document order. The returned units belong to targets.
//
// No match means the resource was missing from the translated file (for
// example added after it was last translated). Several matches happen when
// an ID is not unique; each one must be handled.
func FindMatches(targets []*xliff.Document, src *xliff.Unit) []*xliff.Unit {
	var matched []*xliff.Unit
	for _, doc := range targets {
		for u := range doc.Units() {
			if u.ID == src.ID {
				matched = append(matched, u)
			}
		}
	}
	return matched
}

// Merge recycles the translations in targets against source and retargets
// the result to tag. targets must hold exactly one document, which is
// modified in place and returned. source is only read.
//
// For every source unit, in document order, each matching target unit is
// either:
//   - marked needs-review-translation with an explanatory note, when its
//     source text equals the default-language text (nothing was translated);
//   - marked translated, with its source replaced by the default-language text.
//
// Target text is never changed. Units without a counterpart are left alone.
func Merge(source *xliff.Document, targets []*xliff.Document, tag language.Tag) (*xliff.Document, Stats, error) {
	var stats Stats

	result, err := Single(targets)
	if err != nil {
		return nil, stats, err
	}

	result.SetTargetLanguage(tag)

	sourceIDs := make(map[string]bool)
	for u := range source.Units() {
		sourceIDs[u.ID] = true

		matches := FindMatches(targets, u)
		if len(matches) == 0 {
			stats.Unmatched++
			continue
		}
		for _, m := range matches {
			stats.Matched++
			recycle(m, u, &stats)
		}
	}

	for u := range result.Units() {
		if !sourceIDs[u.ID] {
			stats.TargetOnly++
		}
	}

	return result, stats, nil
}

// recycle applies the state transition to one matched unit.
func recycle(m, src *xliff.Unit, stats *Stats) {
	// Ordinal comparison: the two texts are normally in different languages.
	if m.Source == src.Source {
		m.Target.State = xliff.StateNeedsReviewTranslation
		m.AddNote(xliff.NoteFromUpdate, NeedsReviewNote)
		stats.NeedsReview++
		return
	}
	m.Target.State = xliff.StateTranslated
	m.Source = src.Source
	stats.Translated++
}

// OutputPath returns the XLIFF path for a locale:
// folder/<default file name without extension>.<locale>.xlf
func OutputPath(folder, defaultFile string, tag language.Tag) string {
	name := defaultFile
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(folder, name) + "." + tag.String() + Extension
}
