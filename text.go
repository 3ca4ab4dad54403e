package steno_lexer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/wbrown/steno_lexer/types"
	"go.uber.org/zap"
)

// ReverseTranslations
// Inverts a chord to word dictionary. When several chords write the same
// word, the one with the fewest keys wins, then the alphabetically first.
func ReverseTranslations(translations map[string]string) map[string]string {
	chords := make([]string, 0, len(translations))
	for chord := range translations {
		chords = append(chords, chord)
	}
	sort.Strings(chords)
	reverse := make(map[string]string, len(translations))
	for _, chord := range chords {
		word := translations[chord]
		if prior, ok := reverse[word]; ok && len(prior) <= len(chord) {
			continue
		}
		reverse[word] = chord
	}
	return reverse
}

func isWord(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// AnalyzeText
// Splits free text into word tokens and analyzes each word that has an
// entry in translations. Words are looked up as written, then lower case.
func (lexer *Lexer) AnalyzeText(text string,
	translations map[string]string) ([]*Analysis, error) {
	doc, err := prose.NewDocument(
		text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, err
	}
	reverse := ReverseTranslations(translations)
	analyses := make([]*Analysis, 0, len(doc.Tokens()))
	for _, token := range doc.Tokens() {
		word := token.Text
		if !isWord(word) {
			continue
		}
		chord, ok := reverse[word]
		if !ok {
			chord, ok = reverse[strings.ToLower(word)]
		}
		if !ok {
			lexer.logger.Debug("no translation for word",
				zap.String("word", word))
			continue
		}
		keys, parseErr := types.ParseRTFCRE(chord)
		if parseErr != nil {
			lexer.logger.Warn("bad chord in translations",
				zap.String("chord", chord), zap.Error(parseErr))
			continue
		}
		analyses = append(analyses, lexer.Query(keys, word))
	}
	return analyses, nil
}
