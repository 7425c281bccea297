// Package config loads the .res2xlf.yaml project file.
//
// A project file replaces the positional command line arguments. It names
// the output folder, the default language and resource file, and the
// translated resource files (globs allowed):
//
//	output: xlf
//	default_language: en-US
//	default_file: Strings/en-US/Resources.resw
//	translated:
//	  - Strings/*/Resources.resw
//	report: xlf/res2xlf-report.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// ProjectFileName is the default project file name.
const ProjectFileName = ".res2xlf.yaml"

// ProjectFile is the top-level .res2xlf.yaml structure.
type ProjectFile struct {
	// Output is the folder receiving the generated XLIFF files (default ".").
	Output string `yaml:"output,omitempty"`
	// DefaultLanguage is the language of DefaultFile (e.g. "en-US").
	DefaultLanguage string `yaml:"default_language"`
	// DefaultFile is the project's default-language resource file.
	DefaultFile string `yaml:"default_file"`
	// Translated lists translated resource files or doublestar globs.
	Translated []string `yaml:"translated"`
	// Report is an optional path for the YAML run report.
	Report string `yaml:"report,omitempty"`

	dir string `yaml:"-"`
}

// Job is a fully resolved conversion request.
type Job struct {
	OutputFolder    string
	DefaultLanguage string
	DefaultFile     string
	TranslatedFiles []string
	ReportPath      string
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// FindProjectFile returns the project file path in rootDir, or "" when
// there is none.
func FindProjectFile(rootDir string) string {
	path := filepath.Join(rootDir, ProjectFileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// LoadProjectFile loads and validates a project file.
func LoadProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	pf.dir = filepath.Dir(path)

	// Defaults
	if pf.Output == "" {
		pf.Output = "."
	}

	if pf.DefaultLanguage == "" {
		return nil, fmt.Errorf("%s: default_language is required", path)
	}
	if pf.DefaultFile == "" {
		return nil, fmt.Errorf("%s: default_file is required", path)
	}
	if len(pf.Translated) == 0 {
		return nil, fmt.Errorf("%s: translated must list at least one file", path)
	}

	return &pf, nil
}

// ---------------------------------------------------------------------------
// Resolving
// ---------------------------------------------------------------------------

// Resolve expands globs and turns relative paths into paths relative to the
// project file directory. Entries keep their declared order; the matches of
// one glob are sorted, and the default file is never taken from a glob.
func (pf *ProjectFile) Resolve() (*Job, error) {
	job := &Job{
		OutputFolder:    pf.abs(pf.Output),
		DefaultLanguage: pf.DefaultLanguage,
		DefaultFile:     pf.abs(pf.DefaultFile),
	}
	if pf.Report != "" {
		job.ReportPath = pf.abs(pf.Report)
	}

	defaultClean := filepath.Clean(job.DefaultFile)
	for _, entry := range pf.Translated {
		pattern := pf.abs(entry)
		if !hasMeta(entry) {
			job.TranslatedFiles = append(job.TranslatedFiles, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", entry, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%q matches no files", entry)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if filepath.Clean(m) == defaultClean {
				continue
			}
			job.TranslatedFiles = append(job.TranslatedFiles, m)
		}
	}

	if len(job.TranslatedFiles) == 0 {
		return nil, fmt.Errorf("no translated files besides %s", pf.DefaultFile)
	}
	return job, nil
}

func (pf *ProjectFile) abs(p string) string {
	if filepath.IsAbs(p) || pf.dir == "" {
		return p
	}
	return filepath.Join(pf.dir, p)
}

func hasMeta(p string) bool {
	for _, c := range p {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
