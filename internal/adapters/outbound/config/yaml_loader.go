package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/rules"
)

// FileName is the project configuration file looked up in the project root.
const FileName = ".hookguard.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .hookguard.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .hookguard.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}
	return Parse(data)
}

// Parse decodes configuration on top of the defaults, so omitted keys keep
// their default values.
func Parse(data []byte) (domain.ProjectConfig, error) {
	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	for i := range cfg.CustomRules {
		cfg.CustomRules[i].Kind = rules.NormalizeKind(cfg.CustomRules[i].Kind)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	if _, ok := rules.Lookup(cfg.RuleSet); !ok {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: unknown rule_set %q (valid: %v)", FileName, cfg.RuleSet, rules.Names())
	}
	return cfg, nil
}

// Marshal renders a config as YAML, used by "hookguard init".
func Marshal(cfg domain.ProjectConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
