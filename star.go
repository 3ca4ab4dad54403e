package steno_lexer

import (
	"strings"

	"github.com/wbrown/steno_lexer/types"
)

// StarClass is the guessed meaning of a star key standing alone in its
// stroke.
type StarClass uint8

const (
	StarUnknown StarClass = iota
	StarAbbreviation
	StarProper
	StarAffix
	StarConflict
)

func (class StarClass) String() string {
	switch class {
	case StarAbbreviation:
		return "abbreviation"
	case StarProper:
		return "proper"
	case StarAffix:
		return "affix"
	case StarConflict:
		return "conflict"
	}
	return "unknown"
}

// StarNames holds the special rule reference name for each star class.
type StarNames struct {
	Abbreviation string `yaml:"abbreviation"`
	Proper       string `yaml:"proper"`
	Affix        string `yaml:"affix"`
	Conflict     string `yaml:"conflict"`
	Unknown      string `yaml:"unknown"`
}

func DefaultStarNames() StarNames {
	return StarNames{
		Abbreviation: "*:abbr",
		Proper:       "*:proper",
		Affix:        "*:affix",
		Conflict:     "*:conflict",
		Unknown:      "*:unknown",
	}
}

// Name returns the reference name for class.
func (names StarNames) Name(class StarClass) string {
	switch class {
	case StarAbbreviation:
		return names.Abbreviation
	case StarProper:
		return names.Proper
	case StarAffix:
		return names.Affix
	case StarConflict:
		return names.Conflict
	}
	return names.Unknown
}

// ClassifyStar
// Guesses why a lone star key was pressed from the whole translation and
// the rules matched so far. An abbreviation (a period anywhere) wins over a
// proper noun (any upper case). A stroke boundary still ahead, or one
// already consumed, but not both, marks an affix stroke. A translations
// entry for the same chord without the star marks a conflict.
func ClassifyStar(keys, allKeys types.Keys, allLetters string,
	rulemap []*types.Rule, translations map[string]string) StarClass {
	if strings.Contains(allLetters, ".") {
		return StarAbbreviation
	}
	if allLetters != strings.ToLower(allLetters) {
		return StarProper
	}
	ahead := keys.HasSeparator()
	behind := false
	for _, rule := range rulemap {
		if rule.Keys.HasSeparator() {
			behind = true
			break
		}
	}
	if ahead != behind {
		return StarAffix
	}
	if translations != nil {
		if _, ok := translations[allKeys.Without(types.Star).Rtfcre()]; ok {
			return StarConflict
		}
	}
	return StarUnknown
}
