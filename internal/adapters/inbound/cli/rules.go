package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookguard/hookguard/internal/adapters/outbound/tui"
	"github.com/hookguard/hookguard/internal/application"
	"github.com/hookguard/hookguard/internal/domain/rules"
)

func newRulesCmd() *cobra.Command {
	var (
		ruleSet    string
		path       string
		jsonOutput bool
		listSets   bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules of a rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listSets {
				for _, n := range rules.Names() {
					rs, _ := rules.Lookup(n)
					fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", rs.Name, rs.Description)
				}
				return nil
			}

			svc := newCheckService(newLogger(cmd))
			cfg, rs, err := svc.Rules(path, application.CheckOptions{RuleSet: ruleSet})
			if err != nil {
				return err
			}
			infos := rules.Describe(rs)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}
			set, _ := rules.Lookup(cfg.RuleSet)
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRuleList(set.Name, set.Description, infos))
			return nil
		},
	}

	cmd.Flags().StringVar(&ruleSet, "rules", "", "Rule set to list")
	cmd.Flags().StringVar(&path, "path", ".", "Project path holding .hookguard.yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&listSets, "sets", false, "List the available rule sets instead")

	return cmd
}
