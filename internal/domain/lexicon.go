package domain

import "strings"

// Lexicon is a configurable list of lowercase terms matched by substring
// against question text. The sensitive-topic list, the opinion-intent markers,
// and the product brand tokens are all lexicons so that the override logic and
// the classifier prompt stay tunable without code changes.
type Lexicon []string

// NewLexicon lowercases and trims the given terms, dropping empties.
func NewLexicon(terms []string) Lexicon {
	var lex Lexicon
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lex = append(lex, t)
		}
	}
	return lex
}

// Matches reports whether any lexicon term occurs in the text
// (case-insensitive substring match).
func (l Lexicon) Matches(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range l {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether the given single token equals a lexicon term
// (case-insensitive).
func (l Lexicon) ContainsWord(word string) bool {
	lowered := strings.ToLower(word)
	for _, term := range l {
		if lowered == term {
			return true
		}
	}
	return false
}
