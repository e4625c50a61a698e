package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lookstack-labs/lookfmt/internal/cli/output"
	"github.com/lookstack-labs/lookfmt/pkg/lint"
	_ "github.com/lookstack-labs/lookfmt/pkg/lint/rules" // register built-in rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Use --verbose to see full documentation including examples and fix
guidance, or name a rule to see only its documentation.`,
		Example: `  # List all rules
  lookfmt rules

  # Show details for a specific rule
  lookfmt rules K1

  # List rules in the references group
  lookfmt rules --group references

  # Output as JSON
  lookfmt rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	var rules []lint.RuleInfo
	for _, def := range lint.All() {
		if opts.Group != "" && def.Group != opts.Group {
			continue
		}
		rules = append(rules, def.Info())
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if rules == nil {
			rules = []lint.RuleInfo{}
		}
		return r.JSON(rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

func listRulesText(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Group", "Severity", "Description"})
	for _, rule := range rules {
		t.AppendRow(table.Row{rule.ID, rule.Name, rule.Group, rule.Severity.String(), rule.Description})
	}
	t.Render()

	if verbose {
		for _, rule := range rules {
			r.Println()
			renderRuleDoc(r, rule)
		}
	}
	return nil
}

func listRulesMarkdown(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	r.Println(output.FormatHeader(1, "Lint Rules"))
	r.Println()
	for _, rule := range rules {
		r.Printf("- **%s** %s (%s, %s): %s\n", rule.ID, rule.Name, rule.Group, rule.Severity, rule.Description)
	}
	if verbose {
		for _, rule := range rules {
			r.Println()
			renderRuleDoc(r, rule)
		}
	}
	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	def, ok := lint.ByID(ruleID)
	if !ok {
		return fmt.Errorf("unknown rule: %s", ruleID)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(def.Info())
	}
	renderRuleDoc(r, def.Info())
	return nil
}

func renderRuleDoc(r *output.Renderer, rule lint.RuleInfo) {
	r.Println(output.FormatHeader(2, rule.ID+": "+rule.Name))
	r.Println()
	r.Println(rule.Description)
	r.Println()
	r.Println(output.FormatKeyValue("Group", rule.Group))
	r.Println(output.FormatKeyValue("Default severity", rule.Severity.String()))
	if rule.Rationale != "" {
		r.Println()
		r.Println(rule.Rationale)
	}
	if rule.BadExample != "" {
		r.Println()
		r.Println(output.FormatHeader(3, "Bad"))
		r.Println("```lookml")
		r.Println(rule.BadExample)
		r.Println("```")
	}
	if rule.GoodExample != "" {
		r.Println()
		r.Println(output.FormatHeader(3, "Good"))
		r.Println("```lookml")
		r.Println(rule.GoodExample)
		r.Println("```")
	}
	if rule.Fix != "" {
		r.Println()
		r.Println(output.FormatKeyValue("Fix", rule.Fix))
	}
}
