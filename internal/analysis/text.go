package analysis

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/analyticore/analysis-service/pkg/models"
)

// MaxKeywords is the number of keywords returned for a text.
const MaxKeywords = 5

// minKeywordRunes is the shortest token length (in runes) that can be a keyword.
const minKeywordRunes = 3

// ErrInvalidEncoding is returned for text that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("text is not valid UTF-8")

// Lexicons and stop words are read-only after package init.
var (
	positiveLexicon = []string{"bueno", "excelente", "fantastico"}
	negativeLexicon = []string{"malo", "pesimo", "horrible"}

	stopWords = map[string]struct{}{
		"el": {}, "la": {}, "los": {}, "las": {},
		"un": {}, "una": {}, "unos": {}, "unas": {},
		"de": {}, "y": {}, "a": {}, "en": {}, "para": {},
		"es": {}, "con": {}, "que": {}, "por": {},
	}
)

// TextAnalyzer runs Analyze. The zero value is ready to use.
type TextAnalyzer struct{}

func (TextAnalyzer) Analyze(text string) (models.AnalysisResult, error) {
	return Analyze(text)
}

// Analyze classifies the sentiment of text and extracts its most frequent keywords.
// The result is deterministic for a given input.
func Analyze(text string) (models.AnalysisResult, error) {
	if !utf8.ValidString(text) {
		return models.AnalysisResult{}, ErrInvalidEncoding
	}

	tokens := Tokenize(text)
	return models.AnalysisResult{
		Sentiment: ClassifySentiment(tokens),
		Keywords:  ExtractKeywords(tokens, MaxKeywords),
	}, nil
}

// Tokenize lowercases text and splits it on runs of ASCII whitespace and . , ? ! ; :
// Never returns empty tokens. Unicode spaces such as U+00A0 stay inside tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isSeparator)
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r',
		'.', ',', '?', '!', ';', ':':
		return true
	}
	return false
}

// ClassifySentiment compares the number of tokens containing a positive lexicon
// entry against those containing a negative one. Ties are NEUTRAL.
func ClassifySentiment(tokens []string) models.Sentiment {
	var positive, negative int
	for _, tok := range tokens {
		if containsAny(tok, positiveLexicon) {
			positive++
		}
		if containsAny(tok, negativeLexicon) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// containsAny matches by substring: "buenote" counts toward "bueno".
func containsAny(tok string, lexicon []string) bool {
	for _, w := range lexicon {
		if strings.Contains(tok, w) {
			return true
		}
	}
	return false
}

// ExtractKeywords returns up to limit distinct tokens ordered by frequency DESC,
// then by first occurrence. Stop words and tokens shorter than three runes are skipped.
// Returns an empty slice (never nil) when nothing qualifies.
func ExtractKeywords(tokens []string, limit int) []string {
	type keywordState struct {
		word       string
		count      int
		firstIndex int
	}

	groups := make(map[string]*keywordState)
	for i, tok := range tokens {
		if !isKeywordCandidate(tok) {
			continue
		}
		ks, exists := groups[tok]
		if !exists {
			ks = &keywordState{word: tok, firstIndex: i}
			groups[tok] = ks
		}
		ks.count++
	}

	ranked := make([]*keywordState, 0, len(groups))
	for _, ks := range groups {
		ranked = append(ranked, ks)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].firstIndex < ranked[j].firstIndex
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	keywords := make([]string, 0, len(ranked))
	for _, ks := range ranked {
		keywords = append(keywords, ks.word)
	}
	return keywords
}

func isKeywordCandidate(tok string) bool {
	if _, stop := stopWords[tok]; stop {
		return false
	}
	return utf8.RuneCountInString(tok) >= minKeywordRunes
}
