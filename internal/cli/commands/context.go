package commands

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lookstack-labs/lookfmt/internal/cli/config"
	"github.com/lookstack-labs/lookfmt/internal/cli/output"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's environment.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), rendererMode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// rendererMode maps the configured output format to a renderer mode.
func rendererMode(format string) output.Mode {
	if format == "" || format == "auto" {
		return output.ModeAuto
	}
	return output.Mode(format)
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables with defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		IndentWidth:  config.DefaultIndentWidth,
		UseSpaces:    true,
		Verbose:      os.Getenv("LOOKFMT_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("LOOKFMT_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// lookmlExtensions are the file extensions treated as LookML sources.
var lookmlExtensions = map[string]bool{
	".lkml":   true,
	".lookml": true,
}

// isLookMLFile reports whether the path has a LookML extension.
func isLookMLFile(path string) bool {
	return lookmlExtensions[strings.ToLower(filepath.Ext(path))]
}

// collectLookMLFiles expands the given paths to the sorted list of LookML
// files beneath them. A path naming a file directly is taken as-is, whatever
// its extension. Defaults to the current directory when no paths are given.
func collectLookMLFiles(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Skip hidden directories like .git.
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isLookMLFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
