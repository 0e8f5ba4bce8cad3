package textproc

import (
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/reiver/go-porterstemmer"
	"golang.org/x/text/unicode/norm"
)

// Normalization rule order is fixed: URL and digit-fragment removal runs on
// the raw text, then lowercasing, then the residual non-letter strip. Changing
// the order changes the token stream, so keep these in sequence.
var (
	urlPattern      = regexp.MustCompile(`(?i)https?://[^\s"]+`)
	digitFragment   = regexp.MustCompile(`[\d\-_\.]{2,}`)
	bracketFragment = regexp.MustCompile(`\[\d+[a-zA-Z]*]`)
	anyDigit        = regexp.MustCompile(`\d`)
	nonLetter       = regexp.MustCompile(`[^a-z\s]`)
	multiSpace      = regexp.MustCompile(`\s+`)
	vowel           = regexp.MustCompile(`[aeiou]`)
)

func removeInvalidUTF8(s string) string {
	valid := make([]rune, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size == 1 {
				continue
			}
		}
		valid = append(valid, r)
	}
	return string(valid)
}

func normalize(text string) string {
	text = removeInvalidUTF8(text)

	text = urlPattern.ReplaceAllString(text, " ")
	text = bracketFragment.ReplaceAllString(text, " ")
	text = digitFragment.ReplaceAllString(text, " ")
	text = anyDigit.ReplaceAllString(text, " ")

	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "-", " ")
	text = strings.ReplaceAll(text, "/", " ")
	text = nonLetter.ReplaceAllString(text, " ")
	text = multiSpace.ReplaceAllString(text, " ")

	return norm.NFC.String(strings.TrimSpace(text))
}

func tokenizeAndFilter(text string) []string {
	tokens := strings.Fields(text)
	var filtered []string

	for _, token := range tokens {
		if len(token) <= 2 || stopWords[token] {
			continue
		}

		if !vowel.MatchString(token) || hasRepeatedChars(token, 3) {
			continue
		}

		filtered = append(filtered, token)
	}
	return filtered
}

func hasRepeatedChars(token string, n int) bool {
	if len(token) < n {
		return false
	}
	count := 1
	prev := rune(token[0])
	for _, c := range token[1:] {
		if c == prev {
			count++
			if count >= n {
				return true
			}
		} else {
			count = 1
			prev = c
		}
	}
	return false
}

func stemTokens(tokens []string) []string {
	var res []string
	for _, token := range tokens {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("WARNING: Recovered from panic while stemming token '%s': %v", token, r)
				}
			}()
			stemmed := porterstemmer.StemString(token)

			if len(stemmed) <= 2 || !vowel.MatchString(stemmed) {
				return
			}
			res = append(res, stemmed)
		}()
	}
	return res
}

// Tokenize converts raw transcript text into the normalized, stopword-free,
// stemmed token stream every downstream stage consumes. Empty input yields an
// empty slice.
func Tokenize(text string) []string {
	clean := normalize(text)
	tokens := tokenizeAndFilter(clean)
	return stemTokens(tokens)
}
