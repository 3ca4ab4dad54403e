package steno_lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wbrown/steno_lexer/types"
)

func treeRule(name, skeys, letters string) *types.Rule {
	return &types.Rule{
		Name:    name,
		Keys:    types.KeysFromString(skeys),
		Letters: letters,
	}
}

func ruleNames(rules []*types.Rule) []string {
	names := make([]string, len(rules))
	for i, rule := range rules {
		names[i] = rule.Name
	}
	return names
}

func buildTree(rules ...*types.Rule) *KeyTree {
	tree := NewKeyTree()
	for _, rule := range rules {
		tree.AddEntry(rule.Keys, rule.Letters, rule)
	}
	return tree
}

func TestKeyTree_Empty(t *testing.T) {
	tree := NewKeyTree()
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.PrefixMatch(types.KeysFromString("Kat"), "cat"))
	assert.True(t, tree.IsUnordered(types.Star))
	assert.False(t, tree.IsUnordered(types.Key('K')))
}

func TestKeyTree_LongestKeysFirst(t *testing.T) {
	tree := buildTree(
		treeRule("T", "T", "t"),
		treeRule("TH", "TH", "th"),
		treeRule("THE", "THE", "the"),
	)
	assert.Equal(t, 3, tree.Len())
	matches := tree.PrefixMatch(types.KeysFromString("THEt"), "then")
	assert.Equal(t, []string{"THE", "TH", "T"}, ruleNames(matches))
}

func TestKeyTree_LettersMustPrefix(t *testing.T) {
	tree := buildTree(
		treeRule("K-.k", "K", "k"),
		treeRule("K-.c", "K", "c"),
		treeRule("KA", "KA", "ka"),
	)
	matches := tree.PrefixMatch(types.KeysFromString("KAt"), "cat")
	assert.Equal(t, []string{"K-.c"}, ruleNames(matches))
	assert.Empty(t, tree.PrefixMatch(types.KeysFromString("KAt"), "mat"))
}

func TestKeyTree_LongerLettersThenInsertion(t *testing.T) {
	tree := buildTree(
		treeRule("-F.s", "f", "s"),
		treeRule("-F.st", "f", "st"),
		treeRule("-F.s2", "f", "s"),
		treeRule("-FT", "ft", "st"),
	)
	matches := tree.PrefixMatch(types.KeysFromString("ft"), "sting")
	assert.Equal(t, []string{"-FT", "-F.st", "-F.s", "-F.s2"},
		ruleNames(matches))
}

func TestKeyTree_SkipsUnorderedKeys(t *testing.T) {
	tree := buildTree(
		treeRule("PH", "PH", "m"),
		treeRule("EU", "EU", "i"),
		treeRule("-BG.ck", "bg", "ck"),
		treeRule("A*", "A*", "ah"),
	)
	// A star in the middle of the query is passed over.
	matches := tree.PrefixMatch(types.KeysFromString("*EUbg"), "ick")
	assert.Equal(t, []string{"EU"}, ruleNames(matches))
	matches = tree.PrefixMatch(types.KeysFromString("*bg"), "ck")
	assert.Equal(t, []string{"-BG.ck"}, ruleNames(matches))
	// A literal star path is still matched literally.
	matches = tree.PrefixMatch(types.KeysFromString("A*"), "aha")
	assert.Equal(t, []string{"A*"}, ruleNames(matches))
	// Only unordered keys may be passed over.
	assert.Empty(t, tree.PrefixMatch(types.KeysFromString("XPH"), "m"))
}

func TestKeyTree_NoDuplicates(t *testing.T) {
	tree := buildTree(treeRule("*", "*", ""))
	matches := tree.PrefixMatch(types.KeysFromString("**"), "")
	assert.Equal(t, []string{"*"}, ruleNames(matches))
}

func TestKeyTree_Soundness(t *testing.T) {
	rules := []*types.Rule{
		treeRule("S", "S", "s"),
		treeRule("ST", "ST", "st"),
		treeRule("STA", "STA", "sta"),
		treeRule("T", "T", "t"),
		treeRule("A", "A", "a"),
		treeRule("-T", "t", "t"),
	}
	tree := buildTree(rules...)
	for _, query := range []struct{ keys, letters string }{
		{"STAt", "stat"},
		{"S*TA", "stab"},
		{"At", "at"},
		{"Tt", "tot"},
	} {
		keys := types.KeysFromString(query.keys)
		for _, rule := range tree.PrefixMatch(keys, query.letters) {
			_, ok := keys.TrimPrefix(rule.Keys, tree.IsUnordered)
			assert.True(t, ok, "%s keys %s", rule.Name, query.keys)
			assert.True(t, strings.HasPrefix(query.letters, rule.Letters),
				"%s letters %s", rule.Name, query.letters)
		}
	}
}

func TestKeyTree_WideNodes(t *testing.T) {
	tree := NewKeyTree()
	skeys := "STKPWHRAO*EUfrpblgtsdz"
	for _, k := range skeys {
		tree.AddEntry(types.Keys{types.Key(k)}, "", treeRule(string(k),
			string(k), ""))
	}
	assert.Nil(t, tree.root.childsArr)
	for _, k := range skeys {
		matches := tree.PrefixMatch(types.Keys{types.Key(k)}, "")
		assert.Contains(t, ruleNames(matches), string(k))
	}
}

func TestKeyNode_String(t *testing.T) {
	tree := buildTree(
		treeRule("T", "T", "t"),
		treeRule("TH", "TH", "th"),
		treeRule("S", "S", "s"),
	)
	s := tree.String()
	assert.Contains(t, s, "S[S]")
	assert.Contains(t, s, "T[T]")
	assert.Contains(t, s, "H[TH]")
	assert.Contains(t, s, "└─")
}
