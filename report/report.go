// Package report implements the res2xlf run report: a YAML file listing
// every generated XLIFF file with its recycling counts and an MD5 checksum
// of the written bytes.
package report

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Version is the report format version.
const Version = 1

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Report is the run report file structure.
type Report struct {
	Version        int      `yaml:"version"`
	Source         string   `yaml:"source"`
	SourceLanguage string   `yaml:"source_language"`
	Outputs        []Output `yaml:"outputs"`

	mu sync.Mutex `yaml:"-"`
}

// Output describes one generated XLIFF file.
type Output struct {
	Locale      string `yaml:"locale"`
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Checksum    string `yaml:"checksum"`
	Matched     int    `yaml:"matched"`
	NeedsReview int    `yaml:"needs_review"`
	Translated  int    `yaml:"translated"`
	Unmatched   int    `yaml:"unmatched"`
	TargetOnly  int    `yaml:"target_only"`
}

// New returns an empty report for a default resource file.
func New(source, sourceLanguage string) *Report {
	return &Report{
		Version:        Version,
		Source:         filepath.ToSlash(source),
		SourceLanguage: sourceLanguage,
	}
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a report from path.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	r := &Report{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("%s: unsupported report version %d", path, r.Version)
	}
	return r, nil
}

// Save writes the report to path, creating the parent directory.
func (r *Report) Save(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Recording
// ---------------------------------------------------------------------------

// Hash computes the MD5 hex digest of data.
func Hash(data []byte) string {
	return fmt.Sprintf("%x", md5.Sum(data))
}

// HashFile computes the MD5 hex digest of a file's contents.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Hash(data), nil
}

// Add appends an output entry. Paths are stored with forward slashes.
func (r *Report) Add(o Output) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.Input = filepath.ToSlash(o.Input)
	o.Output = filepath.ToSlash(o.Output)
	r.Outputs = append(r.Outputs, o)
}

// Totals sums the counts over all outputs.
func (r *Report) Totals() Output {
	r.mu.Lock()
	defer r.mu.Unlock()

	var t Output
	for _, o := range r.Outputs {
		t.Matched += o.Matched
		t.NeedsReview += o.NeedsReview
		t.Translated += o.Translated
		t.Unmatched += o.Unmatched
		t.TargetOnly += o.TargetOnly
	}
	return t
}

// ---------------------------------------------------------------------------
// Human-readable summary
// ---------------------------------------------------------------------------

// Summary returns a human-readable summary string.
func (r *Report) Summary() string {
	t := r.Totals()
	if len(r.Outputs) == 0 {
		return "no outputs"
	}

	var locales []string
	for _, o := range r.Outputs {
		locales = append(locales, o.Locale)
	}
	return fmt.Sprintf("%d files (%s): %d translated, %d needs review, %d unmatched",
		len(r.Outputs), strings.Join(locales, ", "), t.Translated, t.NeedsReview, t.Unmatched)
}
