package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicon_Matches(t *testing.T) {
	lex := NewLexicon([]string{"review", "what do", "YouTuber"})

	assert.True(t, lex.Matches("What do reviewers think of it?"))
	assert.True(t, lex.Matches("any youtuber coverage"))
	assert.False(t, lex.Matches("What is the battery capacity?"))
}

func TestLexicon_NormalizesTerms(t *testing.T) {
	lex := NewLexicon([]string{"  Opinion ", "", "FEEL"})

	assert.Len(t, lex, 2)
	assert.True(t, lex.Matches("how does it feel to drive"))
	assert.True(t, lex.ContainsWord("opinion"))
	assert.False(t, lex.ContainsWord("opinions"))
}
