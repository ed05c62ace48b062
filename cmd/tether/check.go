package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tether/internal/diag"
	"tether/internal/diagfmt"
	"tether/internal/driver"
	"tether/internal/source"
	"tether/internal/ui"
	"tether/internal/unbound"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [directory]",
	Short: "Check TypeScript sources for unbound method references",
	Long: `Check walks a directory, parses every *.ts/*.tsx file and reports
method references that are detached from their receiver`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	checkCmd.Flags().Bool("ignore-static", false, "do not flag references to static methods")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("ui", false, "show interactive progress while checking")
}

// runCheck исполняет команду check: собирает опции из флагов и манифеста,
// прогоняет каталог через driver.CheckDir и печатает диагностику.
func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	ignoreStatic, err := cmd.Flags().GetBool("ignore-static")
	if err != nil {
		return fmt.Errorf("failed to get ignore-static flag: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	useUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	// Настройки из tether.toml подхватываются как значения по умолчанию.
	// Явный флаг всегда побеждает манифест.
	if manifest, ok, err := loadProjectManifest(dir); err != nil {
		return err
	} else if ok {
		if !cmd.Flags().Changed("ignore-static") {
			ignoreStatic = manifest.Config.Check.IgnoreStatic
		}
		if !cmd.Flags().Changed("jobs") && manifest.Config.Check.Jobs > 0 {
			jobs = manifest.Config.Check.Jobs
		}
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.Config.Check.MaxDiagnostics > 0 {
			maxDiagnostics = manifest.Config.Check.MaxDiagnostics
		}
	}

	opts := driver.CheckOptions{
		Config:         unbound.Config{IgnoreStatic: ignoreStatic},
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("tether")
		if err == nil {
			opts.Cache = cache
		}
		// Недоступный кэш не роняет прогон, работаем без него.
	}

	var (
		fileSet  *source.FileSet
		results  []driver.CheckResult
		checkErr error
	)
	if useUI && isTerminal(os.Stdout) {
		fileSet, results, checkErr = runCheckWithUI(cmd.Context(), dir, opts)
	} else {
		fileSet, results, checkErr = driver.CheckDir(cmd.Context(), dir, opts)
	}
	if checkErr != nil {
		return fmt.Errorf("check failed: %w", checkErr)
	}

	total := 0
	hasErrors := false
	for _, r := range results {
		total += r.Bag.Len()
		if r.Bag.HasErrors() {
			hasErrors = true
		}
	}

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		}
		for _, r := range results {
			diagfmt.Pretty(os.Stdout, r.Bag, fileSet, prettyOpts)
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "checked %d file(s), %d diagnostic(s)\n", len(results), total)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              maxDiagnostics,
			IncludeNotes:     withNotes,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			output[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Bag, fileSet, jsonOpts)
		}
		if err := writeJSON(os.Stdout, output); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	case "sarif":
		merged := mergeBags(results, maxDiagnostics)
		meta := diagfmt.SarifRunMeta{
			ToolName:       "tether",
			ToolVersion:    "0.1.0",
			InvocationArgs: os.Args,
		}
		if err := diagfmt.Sarif(os.Stdout, merged, fileSet, meta); err != nil {
			return fmt.Errorf("failed to encode sarif: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if hasErrors || total > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func mergeBags(results []driver.CheckResult, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	return merged
}

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckResult
	err     error
}

// runCheckWithUI запускает проверку на фоне и рисует прогресс bubbletea-моделью.
func runCheckWithUI(ctx context.Context, dir string, opts driver.CheckOptions) (*source.FileSet, []driver.CheckResult, error) {
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fs, results, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
