package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lookstack-labs/lookfmt/internal/cli/output"
	"github.com/lookstack-labs/lookfmt/pkg/format"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Check  bool // Report files that need formatting without writing
	Stdout bool // Write the formatted result to stdout instead of the file
	Watch  bool // Keep running and reformat files as they change
}

// fmtResult is the outcome of formatting one file.
type fmtResult struct {
	Path     string   `json:"path"`
	Changed  bool     `json:"changed"`
	Degraded bool     `json:"degraded,omitempty"`
	Problems []string `json:"problems,omitempty"`
	Err      error    `json:"-"`
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [path...]",
		Short: "Format LookML files",
		Long: `Rewrite LookML files in canonical form.

Formatting normalizes property spacing, re-cases SQL keywords, re-indents
SQL bodies, and optionally groups and sorts view fields. Templating tags
({% %}, {{ }}) and substitutions (${ }) are preserved byte for byte.
Malformed files are formatted best-effort and reported, never skipped.`,
		Example: `  # Format every LookML file under the current directory
  lookfmt fmt

  # Check formatting without writing (exit code 1 when dirty)
  lookfmt fmt --check ./views

  # Print the result of one file to stdout
  lookfmt fmt --stdout orders.view.lkml

  # Keep watching and reformat on change
  lookfmt fmt --watch ./views`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Check, "check", false, "List files that need formatting; do not write")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Write formatted output to stdout (single file only)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch for changes and reformat")

	return cmd
}

func runFmt(cmd *cobra.Command, opts *FmtOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	fmtOpts := cmdCtx.Cfg.FormatOptions()

	files, err := collectLookMLFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Println("no LookML files found")
		return nil
	}

	if opts.Stdout {
		if len(files) != 1 {
			return fmt.Errorf("--stdout requires exactly one file, got %d", len(files))
		}
		data, err := os.ReadFile(files[0])
		if err != nil {
			return err
		}
		res := format.Format(string(data), fmtOpts)
		_, _ = fmt.Fprint(r.Writer(), res.Output)
		return nil
	}

	results := formatFiles(cmd, files, fmtOpts, opts.Check)
	dirty, err := renderFmtResults(r, results, opts.Check)
	if err != nil {
		return err
	}

	if opts.Watch {
		return watchAndFormat(cmd, cmdCtx, files, fmtOpts)
	}
	if opts.Check && dirty > 0 {
		return fmt.Errorf("%d file(s) need formatting", dirty)
	}
	return nil
}

// formatFiles formats the files in parallel, writing changes back unless
// checkOnly is set.
func formatFiles(cmd *cobra.Command, files []string, fmtOpts format.Options, checkOnly bool) []fmtResult {
	results := make([]fmtResult, len(files))

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		g.Go(func() error {
			results[i] = formatFile(path, fmtOpts, checkOnly)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func formatFile(path string, fmtOpts format.Options, checkOnly bool) fmtResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmtResult{Path: path, Err: err}
	}

	res := format.Format(string(data), fmtOpts)
	out := fmtResult{Path: path, Changed: res.Changed, Degraded: res.Degraded}
	for _, a := range res.Anomalies {
		out.Problems = append(out.Problems, a.Error())
	}

	if res.Changed && !checkOnly {
		mode := os.FileMode(0644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(path, []byte(res.Output), mode); err != nil {
			out.Err = err
		}
	}
	return out
}

// renderFmtResults reports the per-file outcomes and returns the number of
// files that were (or would be) rewritten.
func renderFmtResults(r *output.Renderer, results []fmtResult, checkOnly bool) (int, error) {
	if r.EffectiveMode() == output.ModeJSON {
		dirty := 0
		for _, res := range results {
			if res.Changed {
				dirty++
			}
		}
		return dirty, r.JSON(results)
	}

	dirty := 0
	var firstErr error
	for _, res := range results {
		if res.Err != nil {
			r.Error(res.Path + ": " + res.Err.Error())
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		if res.Degraded {
			for _, p := range res.Problems {
				r.Warning(res.Path + ": " + p)
			}
		}
		if res.Changed {
			dirty++
			if checkOnly {
				r.Println(res.Path)
			} else {
				r.Success(res.Path)
			}
		}
	}
	if !checkOnly {
		r.Printf("%d file(s) formatted, %d unchanged\n", dirty, len(results)-dirty)
	}
	return dirty, firstErr
}

// watchAndFormat blocks, reformatting LookML files as they change under the
// directories containing the initial file set.
func watchAndFormat(cmd *cobra.Command, cmdCtx *CommandContext, files []string, fmtOpts format.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	r := cmdCtx.Renderer
	logger := cmdCtx.Logger
	r.Println("watching for changes...")

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isLookMLFile(event.Name) {
				continue
			}
			res := formatFile(event.Name, fmtOpts, false)
			switch {
			case res.Err != nil:
				r.Error(event.Name + ": " + res.Err.Error())
			case res.Changed:
				r.Success(event.Name)
			default:
				logger.Debug("already formatted", "path", event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
