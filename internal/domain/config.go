package domain

import (
	"fmt"
	"time"
)

const (
	DefaultRuleSet        = "husky-pre-commit"
	DefaultTimeout        = 5 * time.Second
	DefaultMaxLines       = 50
	DefaultBlockTolerance = 1
)

// DefaultDialects are the interpreters used for parse-only validation.
var DefaultDialects = []string{"sh", "bash"}

// ProjectConfig holds project-level configuration loaded from .hookguard.yaml.
type ProjectConfig struct {
	RuleSet      string        `yaml:"rule_set"      json:"rule_set,omitempty"`
	FailOn       Severity      `yaml:"fail_on"       json:"fail_on,omitempty"`
	Timeout      time.Duration `yaml:"timeout"       json:"timeout,omitempty"`
	Dialects     []string      `yaml:"dialects"      json:"dialects,omitempty"`
	Root         string        `yaml:"root"          json:"root,omitempty"`
	Disable      []string      `yaml:"disable"       json:"disable,omitempty"`
	Thresholds   Thresholds    `yaml:"thresholds"    json:"thresholds"`
	Shebangs     []string      `yaml:"shebangs"      json:"shebangs,omitempty"`
	DenyCommands []string      `yaml:"deny_commands" json:"deny_commands,omitempty"`
	PathPrefixes []string      `yaml:"path_prefixes" json:"path_prefixes,omitempty"`
	CustomRules  []CustomRule  `yaml:"custom_rules"  json:"custom_rules,omitempty"`
}

// Thresholds are the structural limits a script must stay within.
type Thresholds struct {
	MaxLines       int `yaml:"max_lines"       json:"max_lines"`
	BlockTolerance int `yaml:"block_tolerance" json:"block_tolerance"`
	MaxLoops       int `yaml:"max_loops"       json:"max_loops"`
}

// CustomRule declares an extra substring or pattern rule in configuration.
type CustomRule struct {
	Kind     string   `yaml:"kind"     json:"kind"`
	ID       string   `yaml:"id"       json:"id"`
	Text     string   `yaml:"text"     json:"text"`
	Message  string   `yaml:"message"  json:"message"`
	Severity Severity `yaml:"severity" json:"severity,omitempty"`
}

// Custom rule kinds, in their normalized snake_case form.
const (
	KindRequiredSubstring  = "required_substring"
	KindForbiddenSubstring = "forbidden_substring"
	KindRequiredPattern    = "required_pattern"
	KindForbiddenPattern   = "forbidden_pattern"
)

var validKinds = []string{
	KindRequiredSubstring, KindForbiddenSubstring,
	KindRequiredPattern, KindForbiddenPattern,
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		RuleSet:  DefaultRuleSet,
		FailOn:   SeverityError,
		Timeout:  DefaultTimeout,
		Dialects: append([]string(nil), DefaultDialects...),
		Root:     ".",
		Thresholds: Thresholds{
			MaxLines:       DefaultMaxLines,
			BlockTolerance: DefaultBlockTolerance,
		},
	}
}

// IsDisabled reports whether the rule id is switched off.
func (c ProjectConfig) IsDisabled(id string) bool {
	for _, d := range c.Disable {
		if d == id {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.FailOn != "" {
		if _, err := ParseSeverity(string(c.FailOn)); err != nil {
			return fmt.Errorf("fail_on: %w", err)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	for _, d := range c.Dialects {
		if d == "" {
			return fmt.Errorf("dialects must not contain empty names")
		}
	}
	if c.Thresholds.MaxLines < 0 || c.Thresholds.BlockTolerance < 0 || c.Thresholds.MaxLoops < 0 {
		return fmt.Errorf("thresholds must not be negative")
	}

	seen := make(map[string]bool)
	for i, r := range c.CustomRules {
		if r.ID == "" {
			return fmt.Errorf("custom_rules[%d]: id is required", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("custom_rules[%d]: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = true
		if r.Text == "" {
			return fmt.Errorf("custom rule %s: text is required", r.ID)
		}
		if !isValidKind(r.Kind) {
			return fmt.Errorf("custom rule %s: unknown kind %q (valid: %v)", r.ID, r.Kind, validKinds)
		}
		if r.Severity != "" {
			if _, err := ParseSeverity(string(r.Severity)); err != nil {
				return fmt.Errorf("custom rule %s: %w", r.ID, err)
			}
		}
	}
	return nil
}

func isValidKind(k string) bool {
	for _, v := range validKinds {
		if k == v {
			return true
		}
	}
	return false
}
