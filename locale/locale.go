// Package locale derives the target locale of a translated resource file
// from its path.
//
// Two project layouts are recognised without configuration:
//
//	AppResources.de-DE.resx   locale is the next-to-last dot segment
//	de-DE/Resources.resw      locale is the parent directory name
//
// Candidates are validated against BCP 47 with golang.org/x/text/language.
// The directory fallback accepts any valid tag, so a file directly under a
// folder such as src/ resolves to "src" (Sardinian). FromDirectory reports
// when the fallback was used.
package locale

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
)

// ErrResolution is matched by every locale resolution failure.
var ErrResolution = errors.New("cannot resolve locale")

// ResolutionError reports a path whose locale could not be determined.
type ResolutionError struct {
	Path      string
	Candidate string
	Err       error
}

func (e *ResolutionError) Error() string {
	if e.Candidate == "" {
		return fmt.Sprintf("%s: no locale in file name or parent directory", e.Path)
	}
	return fmt.Sprintf("%s: invalid locale %q: %v", e.Path, e.Candidate, e.Err)
}

func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrResolution}
	}
	return []error{ErrResolution, e.Err}
}

// Resolve returns the locale of a translated resource file.
func Resolve(p string) (language.Tag, error) {
	cand := Candidate(p)
	if cand == "" {
		return language.Und, &ResolutionError{Path: p}
	}
	tag, err := language.Parse(cand)
	if err != nil {
		return language.Und, &ResolutionError{Path: p, Candidate: cand, Err: err}
	}
	return tag, nil
}

// Candidate returns the unvalidated locale tag for a path: the extension of
// the file name without its final extension, or else the name of the
// parent directory. Backslashes are treated as separators.
func Candidate(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if cand := nameCandidate(p); cand != "" {
		return cand
	}

	dir := path.Dir(p)
	switch dir {
	case ".", "/":
		return ""
	}
	return path.Base(dir)
}

// FromDirectory reports whether the locale candidate of p comes from its
// parent directory rather than its file name.
func FromDirectory(p string) bool {
	p = strings.ReplaceAll(p, `\`, "/")
	return nameCandidate(p) == "" && Candidate(p) != ""
}

func nameCandidate(p string) string {
	name := path.Base(p)
	stem := strings.TrimSuffix(name, path.Ext(name))
	return strings.TrimPrefix(path.Ext(stem), ".")
}

// Parse validates a locale tag given directly, such as the default
// language on the command line.
func Parse(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: invalid locale %q: %v", ErrResolution, s, err)
	}
	return tag, nil
}
