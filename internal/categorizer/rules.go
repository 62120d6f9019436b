package categorizer

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ledger/internal/core"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule assigns Category to any description containing one of Keywords.
type Rule struct {
	Category core.Category `yaml:"category"`
	Keywords []string      `yaml:"keywords"`
}

// Rules are evaluated in order, first match wins.
type Rules []Rule

type rulesFile struct {
	Rules Rules `yaml:"rules"`
}

// DefaultRules returns the built-in keyword table.
func DefaultRules() Rules {
	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rules.yaml: %v", err))
	}
	return rules
}

// LoadRules reads a keyword table from a YAML file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes and validates a YAML keyword table. Keywords are
// lowercased and trimmed; category names are matched case-insensitively.
func ParseRules(data []byte) (Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, errors.New("no rules defined")
	}

	out := make(Rules, 0, len(f.Rules))
	for i, r := range f.Rules {
		cat, ok := core.ParseCategory(string(r.Category))
		if !ok {
			return nil, fmt.Errorf("rule %d: unknown category %q", i, r.Category)
		}
		if cat == core.Other {
			return nil, fmt.Errorf("rule %d: %s is the fallback and cannot have keywords", i, core.Other)
		}
		var keywords []string
		for _, k := range r.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, cat)
		}
		out = append(out, Rule{Category: cat, Keywords: keywords})
	}
	return out, nil
}
