// res2xlf recycles translated .resx, .resw and .resjson files into XLIFF 1.2.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/res2xlf/config"
	"github.com/minios-linux/res2xlf/i18n"
	"github.com/minios-linux/res2xlf/locale"
	"github.com/minios-linux/res2xlf/merge"
	"github.com/minios-linux/res2xlf/report"
	"github.com/minios-linux/res2xlf/resource"
	"github.com/minios-linux/res2xlf/xliff"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

var logOutput io.Writer = os.Stderr

func logInfo(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(logOutput, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(logOutput, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(logOutput, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(logOutput, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir    string
	configPath string
	reportPath string
	quiet      bool
)

// ArgumentError is a command line error answered with the usage text.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "res2xlf [flags] OutputFolder DefaultLanguage DefaultResourceFile TranslatedResourceFile...",
		Short: "Recycle translated resource files into XLIFF 1.2",
		Long: `res2xlf converts translated resource files (RESX, RESW or RESJSON) into
XLIFF 1.2 files that can be imported with resource recycling enabled, so
translations made before the XLIFF workflow are reused instead of redone.

For every translated file one XLIFF file is written. Its source side holds the
default-language text, its target side the existing translation:

  translated        source text differs from the translation
  needs-review-*    translation equals the source text

The target locale comes from the file name (AppResources.de-DE.resx) or,
failing that, from the parent directory (de-DE/Resources.resw).

Without arguments the job is read from .res2xlf.yaml in --root (or --config).`,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := jobFromArgs(args)
			if err != nil {
				return err
			}
			return runConvert(job, os.Stdout)
		},
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors, warnings and output paths")
	root.Flags().StringVar(&configPath, "config", "", "Project file (default <root>/"+config.ProjectFileName+")")
	root.Flags().StringVar(&reportPath, "report", "", "Write a YAML run report to this path")

	root.AddCommand(
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	resource.Tool.Version = version

	if err := newRootCmd().Execute(); err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			printUsage(os.Stderr, argErr.Msg)
			os.Exit(1)
		}
		logError("%v", err)
		os.Exit(1)
	}
}

// validateArgs accepts either no arguments (project file mode) or at least
// four positional arguments with a supported default file.
func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && projectFilePath() != "" {
		return nil
	}
	if len(args) < 4 {
		return &ArgumentError{Msg: i18n.T("Invalid number of arguments")}
	}
	if _, err := resource.KindFromPath(args[2]); err != nil {
		return &ArgumentError{Msg: i18n.T("Unsupported file extension")}
	}
	return nil
}

func projectFilePath() string {
	if configPath != "" {
		return configPath
	}
	return config.FindProjectFile(rootDir)
}

// jobFromArgs builds the job from positional arguments or the project file.
func jobFromArgs(args []string) (*config.Job, error) {
	var job *config.Job
	if len(args) == 0 {
		path := projectFilePath()
		pf, err := config.LoadProjectFile(path)
		if err != nil {
			return nil, err
		}
		if _, err := resource.KindFromPath(pf.DefaultFile); err != nil {
			return nil, &ArgumentError{Msg: i18n.T("Unsupported file extension")}
		}
		job, err = pf.Resolve()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logInfo(i18n.T("Using project file %s"), path)
	} else {
		job = &config.Job{
			OutputFolder:    args[0],
			DefaultLanguage: args[1],
			DefaultFile:     args[2],
			TranslatedFiles: args[3:],
		}
	}

	if reportPath != "" {
		job.ReportPath = reportPath
	}
	return job, nil
}

func printUsage(w io.Writer, msg string) {
	fmt.Fprintln(w, i18n.T("Usage Error:"))
	fmt.Fprintln(w, msg)
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T("Usage:"))
	fmt.Fprintln(w, "  res2xlf OutputFolder DefaultLanguage DefaultResourceFile TranslatedResourceFile1 [TranslatedResourceFile2 ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T("Where:"))
	fmt.Fprintln(w, "  OutputFolder            = "+i18n.T("The folder to place the resulting XLF files"))
	fmt.Fprintln(w, "  DefaultLanguage         = "+i18n.T("Source language of the DefaultResourceFile (e.g. 'en-US')"))
	fmt.Fprintln(w, "  DefaultResourceFile     = "+i18n.T("Project's default resource file (e.g. 'AppResources.resx')"))
	fmt.Fprintln(w, "  TranslatedResourceFile1 = "+i18n.T("Project's translated resource file (e.g. 'AppResources.de-DE.resx')"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T("RESX example:"))
	fmt.Fprintln(w, "  res2xlf . en-US AppResources.resx AppResources.de-DE.resx AppResources.fr-FR.resx")
	fmt.Fprintln(w, "    -> AppResources.de-DE.xlf, AppResources.fr-FR.xlf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T("RESW example:"))
	fmt.Fprintln(w, "  res2xlf . en-US en-US/Resources.resw de-DE/Resources.resw fr-FR/Resources.resw")
	fmt.Fprintln(w, "    -> Resources.de-DE.xlf, Resources.fr-FR.xlf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T("Import the resulting XLIFF files with resource recycling enabled."))
}

// ---------------------------------------------------------------------------
// convert (the root command's work)
// ---------------------------------------------------------------------------

// runConvert loads the default file once, then merges and writes each
// translated file in order. The first error stops the run.
func runConvert(job *config.Job, out io.Writer) error {
	sourceTag, err := locale.Parse(job.DefaultLanguage)
	if err != nil {
		return err
	}
	kind, err := resource.KindFromPath(job.DefaultFile)
	if err != nil {
		return &ArgumentError{Msg: i18n.T("Unsupported file extension")}
	}

	if err := os.MkdirAll(job.OutputFolder, 0755); err != nil {
		return fmt.Errorf("creating output folder: %w", err)
	}

	docs, err := resource.Load(job.DefaultFile, sourceTag, kind)
	if err != nil {
		return err
	}
	source, err := merge.Single(docs)
	if err != nil {
		return fmt.Errorf("%s: %w", job.DefaultFile, err)
	}
	logInfo(i18n.N("Loaded %d resource from %s (%s)", "Loaded %d resources from %s (%s)", source.Count()),
		source.Count(), job.DefaultFile, sourceTag)

	rep := report.New(job.DefaultFile, sourceTag.String())

	fmt.Fprintln(out)
	fmt.Fprintln(out, i18n.T("Resulting XLF files:"))

	for _, file := range job.TranslatedFiles {
		dest, tag, stats, err := convertFile(source, sourceTag, kind, file, job)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, dest)

		checksum, err := report.HashFile(dest)
		if err != nil {
			return err
		}
		rep.Add(report.Output{
			Locale:      tag.String(),
			Input:       file,
			Output:      dest,
			Checksum:    checksum,
			Matched:     stats.Matched,
			NeedsReview: stats.NeedsReview,
			Translated:  stats.Translated,
			Unmatched:   stats.Unmatched,
			TargetOnly:  stats.TargetOnly,
		})
	}

	if job.ReportPath != "" {
		if err := rep.Save(job.ReportPath); err != nil {
			return err
		}
		logInfo(i18n.T("Report written to %s"), job.ReportPath)
	}
	logSuccess("%s", rep.Summary())
	return nil
}

// convertFile processes one translated file and returns the written path.
func convertFile(source *xliff.Document, sourceTag language.Tag, kind resource.Kind, file string, job *config.Job) (string, language.Tag, merge.Stats, error) {
	var none merge.Stats
	tag, err := locale.Resolve(file)
	if err != nil {
		return "", language.Und, none, err
	}
	if locale.FromDirectory(file) {
		logInfo(i18n.T("%s: locale %s taken from the directory name"), file, tag)
	}

	targets, err := resource.Load(file, sourceTag, kind)
	if err != nil {
		return "", tag, none, err
	}

	result, stats, err := merge.Merge(source, targets, tag)
	if err != nil {
		return "", tag, none, fmt.Errorf("%s: %w", file, err)
	}

	dest := merge.OutputPath(job.OutputFolder, job.DefaultFile, tag)
	if err := resource.Save(result, dest); err != nil {
		return "", tag, none, err
	}

	logSuccess(i18n.T("%s: %d translated, %d needs review"), tag, stats.Translated, stats.NeedsReview)
	if stats.Unmatched > 0 {
		logWarning(i18n.N("%s: %d resource has no translation in %s", "%s: %d resources have no translation in %s", stats.Unmatched),
			tag, stats.Unmatched, file)
	}
	return dest, tag, stats, nil
}

// ---------------------------------------------------------------------------
// status (read-only: per-state counts of XLIFF files)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status FILE.xlf...",
		Short: "Show per-state unit counts of XLIFF files",
		Long: `Show the number of units per target state for each XLIFF file.

Useful to check generated files before importing them. Does not modify any files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(args, os.Stdout)
		},
	}

	return cmd
}

func runStatus(paths []string, w io.Writer) error {
	fmt.Fprintf(w, "%-40s %-8s %-8s %-11s %-13s %-8s\n",
		i18n.T("File"), i18n.T("Locale"), i18n.T("Units"), i18n.T("Translated"), i18n.T("Needs review"), i18n.T("New"))
	fmt.Fprintln(w, strings.Repeat("─", 93))

	for _, path := range paths {
		doc, err := xliff.ParseFile(path)
		if err != nil {
			return err
		}
		lang := ""
		if len(doc.Files) > 0 {
			lang = doc.Files[0].TargetLanguage
		}
		counts := doc.CountStates()
		fmt.Fprintf(w, "%-40s %-8s %-8d %-11d %-13d %-8d\n",
			filepath.Base(path), lang, doc.Count(),
			counts[xliff.StateTranslated], counts[xliff.StateNeedsReviewTranslation], counts[xliff.StateNew])
	}
	return nil
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("res2xlf version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
			fmt.Printf("  messages:  en, %s\n", strings.Join(i18n.Languages(), ", "))
		},
	}

	return cmd
}
