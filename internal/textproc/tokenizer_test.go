package textproc

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

func TestTokenize_RemovesPunctuationDigitsAndShortTokens(t *testing.T) {
	req := require.New(t)

	raw := `The 71st session, held in 2016, reaffirmed our commitment!
	See https://un.org/documents/123 for details. Peace-keeping is a UN duty;
	so is disarmament [12].`

	tokens := Tokenize(raw)
	req.NotEmpty(tokens)

	for _, token := range tokens {
		req.GreaterOrEqual(len(token), 3, "token %q too short", token)
		for _, r := range token {
			req.True(unicode.IsLower(r), "token %q contains non-letter rune %q", token, r)
		}
		req.NotContains(token, "http")
	}
}

func TestTokenize_RemovesStopwords(t *testing.T) {
	req := require.New(t)

	tokens := Tokenize("the and with should would against between government")
	for _, token := range tokens {
		req.False(stopWords[token], "stopword %q survived", token)
	}
	// The only content word should survive, stemmed.
	req.Len(tokens, 1)
	req.Equal("govern", tokens[0])
}

func TestTokenize_StemsTokens(t *testing.T) {
	req := require.New(t)

	tokens := Tokenize("nations negotiations negotiating negotiated")
	req.NotEmpty(tokens)
	req.Equal("nation", tokens[0])
	for _, token := range tokens[1:] {
		req.Equal("negoti", token)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	req := require.New(t)

	req.Empty(Tokenize(""))
	req.Empty(Tokenize("   \n\t  "))
	req.Empty(Tokenize("123 456-789 !!! ??"))
}

func TestTokenize_Deterministic(t *testing.T) {
	req := require.New(t)

	raw := "The General Assembly reaffirms the sovereign equality of all its Members."
	first := Tokenize(raw)
	for i := 0; i < 10; i++ {
		req.Equal(first, Tokenize(raw))
	}
}

func TestTokenize_DropsNoiseFragments(t *testing.T) {
	req := require.New(t)

	tokens := Tokenize("aaaa bcdfg xyz resolution")
	// No vowel-free or rune-repeating fragments survive.
	req.Equal([]string{"resolut"}, tokens)
}

func TestNormalize_StripsURLsBeforeLowercasing(t *testing.T) {
	req := require.New(t)

	clean := normalize("HTTPS://EXAMPLE.ORG/REPORT and diplomacy")
	req.False(strings.Contains(clean, "example"))
	req.Contains(clean, "diplomacy")
}
