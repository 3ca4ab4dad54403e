package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleClassPrecedence(t *testing.T) {
	tests := []struct {
		flags RuleFlag
		want  RuleClass
	}{
		{0, ClassGeneral},
		{RULE_WORD, ClassWord},
		{RULE_STROKE, ClassStroke},
		{RULE_STROKE | RULE_WORD, ClassStroke},
		{RULE_SPECIAL | RULE_STROKE | RULE_WORD, ClassSpecial},
		{RULE_SEPARATOR | RULE_SPECIAL, ClassSeparator},
	}
	for _, test := range tests {
		rule := &Rule{Flags: test.flags}
		assert.Equal(t, test.want, rule.Class(), test.flags.String())
	}
}

func TestParseRuleFlag(t *testing.T) {
	flag, err := ParseRuleFlag("stroke")
	require.NoError(t, err)
	assert.Equal(t, RULE_STROKE, flag)
	flag, err = ParseRuleFlag(" WORD ")
	require.NoError(t, err)
	assert.Equal(t, RULE_WORD, flag)
	_, err = ParseRuleFlag("INVERSION")
	assert.True(t, errors.Is(err, ErrUnknownFlag))
}

func TestRuleFlagString(t *testing.T) {
	assert.Equal(t, "SPECIAL|WORD", (RULE_SPECIAL | RULE_WORD).String())
	assert.Equal(t, "", RuleFlag(0).String())
	assert.Equal(t, "word", ClassWord.String())
}

func TestSeparatorRule(t *testing.T) {
	sep := SeparatorRule()
	assert.True(t, sep.IsSeparator())
	assert.Equal(t, "", sep.Letters)
	assert.Equal(t, ClassSeparator, sep.Class())
	// Recognised by class, not identity.
	clone := *sep
	assert.True(t, clone.IsSeparator())
	assert.False(t, (&Rule{Keys: Keys{Separator}}).IsSeparator())
	var nilRule *Rule
	assert.False(t, nilRule.IsSeparator())
}

func TestRuleString(t *testing.T) {
	rule := &Rule{Name: "-D.ed", Keys: KeysFromString("d"), Letters: "ed"}
	assert.Equal(t, `-D.ed(-D → "ed")`, rule.String())
}
