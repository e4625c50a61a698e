package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lookstack-labs/lookfmt/internal/cli/config"
	"github.com/lookstack-labs/lookfmt/internal/cli/output"
	"github.com/lookstack-labs/lookfmt/pkg/lint"
	_ "github.com/lookstack-labs/lookfmt/pkg/lint/rules" // register built-in rules
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs to disable
	Rules    []string // Run only specific rules
	Severity string   // Minimum severity: error, warning, info, hint
}

// fileViolations pairs a file with its findings.
type fileViolations struct {
	Path       string
	Violations []lint.Violation
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Run lint rules on LookML files",
		Long: `Analyze LookML files for modeling issues.

Runs the registered rules against every file and reports violations.
Rules can be configured in lookfmt.yaml. Files that fail to parse are
analyzed best-effort from whatever structure could be recovered.`,
		Example: `  # Lint everything under the current directory
  lookfmt lint

  # Lint one directory
  lookfmt lint ./views

  # Output as JSON
  lookfmt lint --format json

  # Disable specific rules
  lookfmt lint --disable F1,E1

  # Only report errors
  lookfmt lint --severity error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	files, err := collectLookMLFiles(args)
	if err != nil {
		return err
	}

	analyzer := lint.NewAnalyzer(buildLintConfig(cmdCtx.Cfg, opts))

	var results []fileViolations
	total := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		violations := analyzer.AnalyzeText(string(data))
		violations = filterBySeverity(violations, opts.Severity)
		if len(violations) == 0 {
			continue
		}
		sort.SliceStable(violations, func(i, j int) bool {
			return violations[i].Pos.Line < violations[j].Pos.Line
		})
		results = append(results, fileViolations{Path: path, Violations: violations})
		total += len(violations)
	}

	if err := renderLintResults(r, results, len(files)); err != nil {
		return err
	}
	if total > 0 {
		return fmt.Errorf("%d lint issue(s) found", total)
	}
	return nil
}

// buildLintConfig layers CLI flags over the project configuration.
func buildLintConfig(cfg *config.Config, opts *LintOptions) *lint.Config {
	lintCfg := cfg.LintRuleConfig()
	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}
	for _, id := range opts.Rules {
		lintCfg.Enable(strings.TrimSpace(id))
	}
	return lintCfg
}

// filterBySeverity drops violations below the minimum severity. Severity
// values order from error (most important) to hint, so the comparison keeps
// anything at or above the threshold.
func filterBySeverity(violations []lint.Violation, minSeverity string) []lint.Violation {
	threshold, ok := lint.ParseSeverity(minSeverity)
	if !ok || threshold == lint.SeverityHint {
		return violations
	}
	var out []lint.Violation
	for _, v := range violations {
		if v.Severity <= threshold {
			out = append(out, v)
		}
	}
	return out
}

func renderLintResults(r *output.Renderer, results []fileViolations, filesAnalyzed int) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(lintJSON(results, filesAnalyzed))
	case output.ModeMarkdown:
		return renderLintMarkdown(r, results)
	default:
		return renderLintText(r, results)
	}
}

func lintJSON(results []fileViolations, filesAnalyzed int) output.LintOutput {
	out := output.LintOutput{
		Summary: output.LintSummary{FilesAnalyzed: filesAnalyzed},
		Files:   []output.LintFileResult{},
	}
	for _, fr := range results {
		fileResult := output.LintFileResult{Path: fr.Path, Diagnostics: []output.LintDiagnostic{}}
		for _, v := range fr.Violations {
			out.Summary.TotalIssues++
			switch v.Severity {
			case lint.SeverityError:
				out.Summary.Errors++
			case lint.SeverityWarning:
				out.Summary.Warnings++
			case lint.SeverityInfo:
				out.Summary.Info++
			case lint.SeverityHint:
				out.Summary.Hints++
			}
			fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
				RuleID:   v.RuleID,
				Severity: v.Severity.String(),
				Message:  v.Message,
				Line:     v.Pos.Line,
				Column:   v.Pos.Column,
			})
		}
		out.Files = append(out.Files, fileResult)
	}
	return out
}

func renderLintText(r *output.Renderer, results []fileViolations) error {
	if len(results) == 0 {
		r.Success("no lint issues found")
		return nil
	}
	styles := r.Styles()
	for _, fr := range results {
		r.Println(styles.FilePath.Render(fr.Path))
		for _, v := range fr.Violations {
			sev := styles.SeverityStyle(v.Severity.String()).Render(v.Severity.String())
			r.Printf("  %d:%d  %s  %s  %s\n", v.Pos.Line, v.Pos.Column, sev, v.RuleID, v.Message)
		}
		r.Println()
	}
	return nil
}

func renderLintMarkdown(r *output.Renderer, results []fileViolations) error {
	if len(results) == 0 {
		r.Println("No lint issues found.")
		return nil
	}
	for _, fr := range results {
		r.Println(output.FormatHeader(2, fr.Path))
		for _, v := range fr.Violations {
			r.Printf("- `%d:%d` **%s** %s: %s\n", v.Pos.Line, v.Pos.Column, v.Severity, v.RuleID, v.Message)
		}
		r.Println()
	}
	return nil
}
