package resources

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/wbrown/steno_lexer/types"
)

var ErrUnknownChild = errors.New("unknown child rule")

// RuleEntry is one rule as written in rules.json.
type RuleEntry struct {
	Keys        string   `json:"keys"`
	Letters     string   `json:"letters"`
	Flags       []string `json:"flags,omitempty"`
	Description string   `json:"desc,omitempty"`
	Children    []string `json:"children,omitempty"`
}

// ParseRules
// Reads a rules.json document: an object from rule name to RuleEntry. Keys
// are RTFCRE. Children name other rules of the same document.
func ParseRules(data []byte) (map[string]*types.Rule, error) {
	entries := make(map[string]RuleEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("cannot unmarshal `%s`: %w", RulesFile, err)
	}
	rules := make(map[string]*types.Rule, len(entries))
	for name, entry := range entries {
		var keys types.Keys
		if entry.Keys != "" {
			parsed, err := types.ParseRTFCRE(entry.Keys)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", name, err)
			}
			keys = parsed
		}
		var flags types.RuleFlag
		for _, flagName := range entry.Flags {
			flag, err := types.ParseRuleFlag(flagName)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", name, err)
			}
			flags |= flag
		}
		rules[name] = &types.Rule{
			Name:        name,
			Keys:        keys,
			Letters:     entry.Letters,
			Flags:       flags,
			Description: entry.Description,
		}
	}
	for name, entry := range entries {
		if len(entry.Children) == 0 {
			continue
		}
		children := make([]*types.Rule, 0, len(entry.Children))
		for _, childName := range entry.Children {
			child, ok := rules[childName]
			if !ok {
				return nil, fmt.Errorf("rule %q: %w %q", name,
					ErrUnknownChild, childName)
			}
			children = append(children, child)
		}
		rules[name].Children = children
	}
	return rules, nil
}

// ParseTranslations
// Reads a Plover style dictionary from RTFCRE chords to words. Chords are
// normalized through the default layout; chords that do not fit it are
// left out and returned in sorted order.
func ParseTranslations(data []byte) (map[string]string, []string, error) {
	raw := make(map[string]string)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("cannot unmarshal `%s`: %w",
			TranslationsFile, err)
	}
	translations := make(map[string]string, len(raw))
	skipped := make([]string, 0)
	for chord, word := range raw {
		normal, err := types.DefaultLayout.NormalizeRTFCRE(chord)
		if err != nil {
			skipped = append(skipped, chord)
			continue
		}
		translations[normal] = word
	}
	sort.Strings(skipped)
	return translations, skipped, nil
}

// Rules parses the resolved rules.json.
func (rsrcs *Resources) Rules() (map[string]*types.Rule, error) {
	entry, ok := (*rsrcs)[RulesFile]
	if !ok || entry.Data == nil {
		return nil, fmt.Errorf("`%s` not resolved", RulesFile)
	}
	return ParseRules(*entry.Data)
}

// Translations
// Parses the resolved translations.json. A rule set without one has an
// empty dictionary.
func (rsrcs *Resources) Translations() (map[string]string, []string,
	error) {
	entry, ok := (*rsrcs)[TranslationsFile]
	if !ok || entry.Data == nil {
		return map[string]string{}, nil, nil
	}
	return ParseTranslations(*entry.Data)
}
