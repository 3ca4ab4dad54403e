package steno_lexer

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"
	"github.com/wbrown/steno_lexer/types"
	"go.uber.org/zap"
)

const MATCH_LRU_SZ = 16384

var (
	ErrNilRule       = errors.New("nil rule")
	ErrSeparatorFlag = errors.New("loaded rule carries the SEPARATOR flag")
	ErrEmptyKeys     = errors.New("rule has no keys")
)

// ruleIndex is one immutable generation of lookup structures. A rule
// reload builds a new one and swaps it in.
type ruleIndex struct {
	special map[string]*types.Rule // By reference name.
	stroke  map[string]*types.Rule // By the keys of a single stroke.
	word    map[string]*types.Rule // By exact letters.
	tree    *KeyTree
	cache   *lru.ARCCache
}

// RuleMatcher proposes the rules that may explain the next part of a
// translation.
type RuleMatcher struct {
	index        atomic.Pointer[ruleIndex]
	translations atomic.Pointer[map[string]string]
	starNames    StarNames
	cacheSz      int
	logger       *zap.Logger
	LruHits      atomic.Int64
	LruMisses    atomic.Int64
}

type MatcherOption func(*RuleMatcher)

func WithLogger(logger *zap.Logger) MatcherOption {
	return func(m *RuleMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithCacheSize sets the number of prefix tree results kept per rule set.
// Zero disables the cache.
func WithCacheSize(size int) MatcherOption {
	return func(m *RuleMatcher) {
		m.cacheSz = size
	}
}

func WithStarNames(names StarNames) MatcherOption {
	return func(m *RuleMatcher) {
		m.starNames = names
	}
}

// NewRuleMatcher
// Returns a matcher with no rules. Until SetRules succeeds, Match yields
// nothing.
func NewRuleMatcher(opts ...MatcherOption) *RuleMatcher {
	m := &RuleMatcher{
		starNames: DefaultStarNames(),
		cacheSz:   MATCH_LRU_SZ,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func strokeKey(keys types.Keys) string {
	return keys.FirstStroke().TrimSeparator().String()
}

// SetRules
// Validates and classifies every rule by flag precedence, then replaces
// the current lookup structures in one step. On error the previous rule
// set stays in place.
func (m *RuleMatcher) SetRules(rules map[string]*types.Rule) error {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	index := &ruleIndex{
		special: make(map[string]*types.Rule),
		stroke:  make(map[string]*types.Rule),
		word:    make(map[string]*types.Rule),
		tree:    NewKeyTree(types.Star),
	}
	for _, name := range names {
		rule := rules[name]
		if rule == nil {
			return fmt.Errorf("rule %q: %w", name, ErrNilRule)
		}
		switch rule.Class() {
		case types.ClassSeparator:
			return fmt.Errorf("rule %q: %w", name, ErrSeparatorFlag)
		case types.ClassSpecial:
			index.special[name] = rule
		case types.ClassStroke:
			if rule.Keys.IsEmpty() {
				return fmt.Errorf("rule %q: %w", name, ErrEmptyKeys)
			}
			index.stroke[strokeKey(rule.Keys)] = rule
		case types.ClassWord:
			index.word[rule.Letters] = rule
		case types.ClassGeneral:
			if rule.Keys.IsEmpty() {
				return fmt.Errorf("rule %q: %w", name, ErrEmptyKeys)
			}
			index.tree.AddEntry(rule.Keys, rule.Letters, rule)
		}
	}
	if m.cacheSz > 0 {
		cache, err := lru.NewARC(m.cacheSz)
		if err != nil {
			return fmt.Errorf("creating match cache: %w", err)
		}
		index.cache = cache
	}
	m.index.Store(index)
	m.logger.Info("rules loaded",
		zap.Int("special", len(index.special)),
		zap.Int("stroke", len(index.stroke)),
		zap.Int("word", len(index.word)),
		zap.Int("prefix", index.tree.Len()))
	return nil
}

// SetTranslations
// Stores the full chord to word dictionary used to detect star conflicts.
// Chords are normalized to canonical RTFCRE; chords that do not parse are
// left out.
func (m *RuleMatcher) SetTranslations(translations map[string]string) {
	normalized := make(map[string]string, len(translations))
	skipped := 0
	for chord, word := range translations {
		normal, err := types.DefaultLayout.NormalizeRTFCRE(chord)
		if err != nil {
			m.logger.Debug("skipping translation", zap.String("chord", chord),
				zap.Error(err))
			skipped++
			continue
		}
		normalized[normal] = word
	}
	if skipped > 0 {
		m.logger.Warn("skipped translations outside the layout",
			zap.Int("count", skipped))
	}
	m.translations.Store(&normalized)
}

func (m *RuleMatcher) loadTranslations() map[string]string {
	if ptr := m.translations.Load(); ptr != nil {
		return *ptr
	}
	return nil
}

// Ready reports whether a rule set has been loaded.
func (m *RuleMatcher) Ready() bool {
	return m.index.Load() != nil
}

// Tree returns the prefix tree of the current rule set, or nil.
func (m *RuleMatcher) Tree() *KeyTree {
	if index := m.index.Load(); index != nil {
		return index.tree
	}
	return nil
}

// Rule returns a special rule by reference name.
func (m *RuleMatcher) Rule(name string) (*types.Rule, bool) {
	index := m.index.Load()
	if index == nil {
		return nil, false
	}
	rule, ok := index.special[name]
	return rule, ok
}

// IsUnordered reports whether k can be passed over by the prefix tree.
func (m *RuleMatcher) IsUnordered(k types.Key) bool {
	if tree := m.Tree(); tree != nil {
		return tree.IsUnordered(k)
	}
	return k == types.Star
}

func (m *RuleMatcher) prefixMatch(index *ruleIndex, keys types.Keys,
	letters string) []*types.Rule {
	if index.cache == nil {
		return index.tree.PrefixMatch(keys, letters)
	}
	cacheKey := keys.String() + "\x00" + letters
	if lookup, ok := index.cache.Get(cacheKey); ok {
		m.LruHits.Add(1)
		return lookup.([]*types.Rule)
	}
	m.LruMisses.Add(1)
	rules := index.tree.PrefixMatch(keys, letters)
	index.cache.Add(cacheKey, rules)
	return rules
}

func atStrokeBoundary(rulemap []*types.Rule) bool {
	return len(rulemap) == 0 || rulemap[len(rulemap)-1].IsSeparator()
}

func startsWithSpace(letters string) bool {
	r, size := utf8.DecodeRuneInString(letters)
	return size > 0 && unicode.IsSpace(r)
}

func firstWord(letters string) string {
	letters = strings.TrimLeftFunc(letters, unicode.IsSpace)
	if end := strings.IndexFunc(letters, unicode.IsSpace); end >= 0 {
		return letters[:end]
	}
	return letters
}

// Match
// Yields every rule that could explain the front of keys and letters, in
// priority order. keys and letters are the unmatched remainders, allKeys
// and allLetters the whole translation, rulemap the rules accepted so far.
//
// A separator at the front yields only the separator rule. A star alone in
// its stroke yields only the special rule for its guessed meaning, when the
// rule set has one. Otherwise prefix tree matches come first, then a whole
// stroke rule (only at a stroke boundary), then a whole word rule (only at
// a word boundary).
func (m *RuleMatcher) Match(keys types.Keys, letters string,
	allKeys types.Keys, allLetters string,
	rulemap []*types.Rule) iter.Seq[*types.Rule] {
	return func(yield func(*types.Rule) bool) {
		index := m.index.Load()
		if index == nil {
			return
		}
		if !keys.IsEmpty() {
			if keys.HasSeparatorAt(0) {
				yield(types.SeparatorRule())
				return
			}
			if keys.First() == types.Star &&
				(keys.Len() == 1 || keys.HasSeparatorAt(1)) {
				class := ClassifyStar(keys, allKeys, allLetters, rulemap,
					m.loadTranslations())
				name := m.starNames.Name(class)
				if rule, ok := index.special[name]; ok {
					yield(rule)
					return
				}
				m.logger.Debug("no special rule for star",
					zap.String("name", name),
					zap.Stringer("class", class))
			}
		}
		for _, rule := range m.prefixMatch(index, keys, letters) {
			if !yield(rule) {
				return
			}
		}
		if atStrokeBoundary(rulemap) {
			rule, ok := index.stroke[strokeKey(keys)]
			if ok && strings.Contains(letters, rule.Letters) {
				if !yield(rule) {
					return
				}
			}
		}
		if len(rulemap) == 0 || startsWithSpace(letters) {
			if word := firstWord(letters); word != "" {
				rule, ok := index.word[word]
				if ok && keys.StartsWith(rule.Keys) {
					yield(rule)
				}
			}
		}
	}
}

// MatchAll collects Match into a slice.
func (m *RuleMatcher) MatchAll(keys types.Keys, letters string,
	allKeys types.Keys, allLetters string,
	rulemap []*types.Rule) []*types.Rule {
	return slices.Collect(m.Match(keys, letters, allKeys, allLetters, rulemap))
}
