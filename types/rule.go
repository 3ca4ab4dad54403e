package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFlag = errors.New("unknown rule flag")

type RuleFlag uint8

// Enumeration of rule flags that decide how the matcher indexes a rule.
const (
	RULE_SPECIAL RuleFlag = 1 << iota
	RULE_STROKE
	RULE_WORD
	RULE_SEPARATOR
)

var ruleFlagNames = []struct {
	flag RuleFlag
	name string
}{
	{RULE_SPECIAL, "SPECIAL"},
	{RULE_STROKE, "STROKE"},
	{RULE_WORD, "WORD"},
	{RULE_SEPARATOR, "SEPARATOR"},
}

// ParseRuleFlag
// Returns the flag for a name such as "STROKE". Names are case-insensitive.
func ParseRuleFlag(name string) (RuleFlag, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, f := range ruleFlagNames {
		if f.name == upper {
			return f.flag, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
}

func (flags RuleFlag) Has(flag RuleFlag) bool {
	return flags&flag != 0
}

func (flags RuleFlag) String() string {
	names := make([]string, 0, 2)
	for _, f := range ruleFlagNames {
		if flags.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}

// RuleClass is the single authoritative classification of a rule.
type RuleClass uint8

const (
	ClassGeneral RuleClass = iota
	ClassSpecial
	ClassStroke
	ClassWord
	ClassSeparator
)

func (class RuleClass) String() string {
	switch class {
	case ClassGeneral:
		return "general"
	case ClassSpecial:
		return "special"
	case ClassStroke:
		return "stroke"
	case ClassWord:
		return "word"
	case ClassSeparator:
		return "separator"
	}
	return fmt.Sprintf("RuleClass(%d)", uint8(class))
}

// Rule maps a key pattern to output letters.
type Rule struct {
	Name        string
	Keys        Keys
	Letters     string
	Flags       RuleFlag
	Description string
	Children    []*Rule // Sub-rules of a compound rule, in order.
}

// Class
// Classifies the rule by flag precedence: SEPARATOR, then SPECIAL, STROKE
// and WORD. A rule with none of these is a general rule.
func (rule *Rule) Class() RuleClass {
	switch {
	case rule.Flags.Has(RULE_SEPARATOR):
		return ClassSeparator
	case rule.Flags.Has(RULE_SPECIAL):
		return ClassSpecial
	case rule.Flags.Has(RULE_STROKE):
		return ClassStroke
	case rule.Flags.Has(RULE_WORD):
		return ClassWord
	default:
		return ClassGeneral
	}
}

func (rule *Rule) IsSeparator() bool {
	return rule != nil && rule.Class() == ClassSeparator
}

func (rule *Rule) String() string {
	if rule == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s → %q)", rule.Name, rule.Keys.Rtfcre(),
		rule.Letters)
}

var separatorRule = &Rule{
	Name:        "/",
	Keys:        Keys{Separator},
	Flags:       RULE_SEPARATOR,
	Description: "stroke separator",
}

// SeparatorRule returns the rule standing for a stroke boundary. It is
// never part of a loaded rule set.
func SeparatorRule() *Rule {
	return separatorRule
}
