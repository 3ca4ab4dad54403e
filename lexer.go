package steno_lexer

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/wbrown/steno_lexer/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const LEXER_MAX_STEPS = 10000

// Analysis is the best rule breakdown found for one translation.
type Analysis struct {
	Keys           types.Keys
	Letters        string
	Rules          []*types.Rule
	UnmatchedKeys  types.Keys
	MatchedLetters int
}

// Complete reports whether every key was explained by a rule.
func (a *Analysis) Complete() bool {
	return len(a.UnmatchedKeys) == 0
}

// better ranks by letters matched, then fewest unmatched keys, then fewest
// rules.
func (a *Analysis) better(than *Analysis) bool {
	if than == nil {
		return true
	}
	if a.MatchedLetters != than.MatchedLetters {
		return a.MatchedLetters > than.MatchedLetters
	}
	if len(a.UnmatchedKeys) != len(than.UnmatchedKeys) {
		return len(a.UnmatchedKeys) < len(than.UnmatchedKeys)
	}
	return len(a.Rules) < len(than.Rules)
}

// Lexer searches for the rule breakdown of whole translations by calling
// the matcher once per step.
type Lexer struct {
	matcher  *RuleMatcher
	maxSteps int
	threads  int
	logger   *zap.Logger
}

type LexerOption func(*Lexer)

// WithMaxSteps bounds the number of search states visited per query.
func WithMaxSteps(steps int) LexerOption {
	return func(lexer *Lexer) {
		if steps > 0 {
			lexer.maxSteps = steps
		}
	}
}

func WithThreads(threads int) LexerOption {
	return func(lexer *Lexer) {
		if threads > 0 {
			lexer.threads = threads
		}
	}
}

func WithLexerLogger(logger *zap.Logger) LexerOption {
	return func(lexer *Lexer) {
		if logger != nil {
			lexer.logger = logger
		}
	}
}

func NewLexer(matcher *RuleMatcher, opts ...LexerOption) *Lexer {
	lexer := &Lexer{
		matcher:  matcher,
		maxSteps: LEXER_MAX_STEPS,
		threads:  runtime.NumCPU(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(lexer)
	}
	return lexer
}

type search struct {
	lexer      *Lexer
	allKeys    types.Keys
	allLetters string
	steps      int
	best       *Analysis
}

// advanceKeys removes the keys consumed by rule from the front of keys.
func (s *search) advanceKeys(keys types.Keys, rule *types.Rule) (types.Keys,
	bool) {
	switch rule.Class() {
	case types.ClassSeparator:
		return keys[1:], true
	case types.ClassSpecial:
		if keys.First() == types.Star {
			return keys[1:], true
		}
	}
	return keys.TrimPrefix(rule.Keys, s.lexer.matcher.IsUnordered)
}

// advanceLetters removes the letters consumed by rule and returns how many
// were matched.
func advanceLetters(letters string, rule *types.Rule) (string, int) {
	switch rule.Class() {
	case types.ClassSeparator, types.ClassSpecial:
		return letters, 0
	case types.ClassStroke:
		idx := strings.Index(letters, rule.Letters)
		if idx < 0 {
			return letters, 0
		}
		return letters[idx+len(rule.Letters):], len(rule.Letters)
	case types.ClassWord:
		trimmed := strings.TrimLeftFunc(letters, unicode.IsSpace)
		word := firstWord(trimmed)
		return trimmed[len(word):], len(word)
	default:
		return strings.TrimPrefix(letters, rule.Letters), len(rule.Letters)
	}
}

func (s *search) visit(keys types.Keys, letters string, rules []*types.Rule,
	matched int) {
	if s.steps >= s.lexer.maxSteps {
		return
	}
	s.steps++
	current := &Analysis{
		Keys:           s.allKeys,
		Letters:        s.allLetters,
		Rules:          rules,
		UnmatchedKeys:  keys,
		MatchedLetters: matched,
	}
	if current.better(s.best) {
		s.best = current
	}
	if keys.IsEmpty() {
		return
	}
	advanced := false
	for rule := range s.lexer.matcher.Match(keys, letters, s.allKeys,
		s.allLetters, rules) {
		nextKeys, ok := s.advanceKeys(keys, rule)
		if !ok {
			continue
		}
		nextLetters, n := advanceLetters(letters, rule)
		next := make([]*types.Rule, len(rules), len(rules)+1)
		copy(next, rules)
		advanced = true
		s.visit(nextKeys, nextLetters, append(next, rule), matched+n)
	}
	if advanced {
		return
	}
	// Nothing explains the front, so pass over a letter or a key.
	if _, size := utf8.DecodeRuneInString(letters); size > 0 {
		s.visit(keys, letters[size:], rules, matched)
	}
	s.visit(keys[1:], letters, rules, matched)
}

// Query
// Finds the best breakdown of keys into rules producing letters. Letters
// are matched case-insensitively; the original case is kept for star
// classification.
func (lexer *Lexer) Query(keys types.Keys, letters string) *Analysis {
	s := &search{
		lexer:      lexer,
		allKeys:    keys,
		allLetters: letters,
	}
	s.visit(keys, strings.ToLower(letters), nil, 0)
	if s.steps >= lexer.maxSteps {
		lexer.logger.Debug("search budget exhausted",
			zap.String("keys", keys.Rtfcre()),
			zap.String("letters", letters))
	}
	return s.best
}

// Analyze parses an RTFCRE chord and breaks it down against word.
func (lexer *Lexer) Analyze(rtfcre string, word string) (*Analysis, error) {
	keys, err := types.ParseRTFCRE(rtfcre)
	if err != nil {
		return nil, err
	}
	return lexer.Query(keys, word), nil
}

// AnalyzeAll
// Analyzes every entry of a translations dictionary concurrently. Entries
// whose chord does not parse are logged and left out.
func (lexer *Lexer) AnalyzeAll(ctx context.Context,
	translations map[string]string) (map[string]*Analysis, error) {
	chords := make([]string, 0, len(translations))
	for chord := range translations {
		chords = append(chords, chord)
	}
	sort.Strings(chords)

	results := make(map[string]*Analysis, len(chords))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lexer.threads)
	for _, chord := range chords {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			analysis, err := lexer.Analyze(chord, translations[chord])
			if err != nil {
				lexer.logger.Warn("skipping translation",
					zap.String("chord", chord), zap.Error(err))
				return nil
			}
			mu.Lock()
			results[chord] = analysis
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
