package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hookguard/hookguard/internal/adapters/outbound/config"
	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/rules"
)

func newInitCmd() *cobra.Command {
	var (
		ruleSet string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .hookguard.yaml configuration file",
		Long:  "Create a .hookguard.yaml with the defaults of a rule set.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if _, ok := rules.Lookup(ruleSet); !ok {
				return fmt.Errorf("unknown rule set %q (valid: %v)", ruleSet, rules.Names())
			}

			cfg := domain.DefaultConfig()
			cfg.RuleSet = ruleSet
			data, err := config.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}
			content := "# hookguard configuration. See `hookguard rules --sets` for rule sets.\n" + string(data)

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", config.FileName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (rule set: %s)\n", dest, ruleSet)
			return nil
		},
	}

	cmd.Flags().StringVar(&ruleSet, "rules", domain.DefaultRuleSet, "Rule set to configure")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")

	return cmd
}
