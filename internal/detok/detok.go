// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detok turns the space-separated token stream produced by the
// abstractive summarizer back into readable prose.
//
// The spacing rules follow the Moses-style detokenizer: currency and opening
// brackets bind to the next token, closing punctuation binds to the previous
// token, English contraction fragments are glued, and quotation marks are
// paired by counting occurrences of each quote class within a line.
package detok

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// contractionRe matches a word fused with an English contraction suffix.
	contractionRe = regexp.MustCompile(`^\p{L}+('(ll|ve|re|[dsm])|n't)$`)

	// openingRe matches currency symbols and opening punctuation.
	openingRe = regexp.MustCompile(`^[\p{Sc}(\[{¿¡]+$`)

	// closingRe matches punctuation that takes no space before it.
	closingRe = regexp.MustCompile(`^[,.?!:;\\%}\])]+$`)

	// finalRe matches sentence-final punctuation, optionally followed by
	// closing quotes, brackets or percent signs.
	finalRe = regexp.MustCompile(`^[.!?]['")\]\p{Pf}%]*$`)
)

// joiners are the characters that may join two halves of a contraction.
const joiners = "'-–"

// quoteClass maps every recognised quotation mark to the class whose parity
// decides whether it opens or closes a quotation.
var quoteClass = map[string]byte{
	`'`: '\'',
	`‚`: '\'',
	`‘`: '\'',
	`’`: '\'',
	`"`: '"',
	`„`: '"',
	`“`: '"',
	`”`: '"',
	"`": '`',
}

// lineState is the per-line detokenization state. It is created for each
// line and discarded when the line is done.
type lineState struct {
	text strings.Builder

	// space is the separator owed before the next ordinary token.
	space string

	// quotes counts occurrences of each quote class seen so far.
	quotes map[byte]int

	// capitalize is set at the start of the line and after the first
	// sentence-final token.
	capitalize bool

	// boundary is the text length just after the first sentence-final token,
	// or zero when none has been seen.
	boundary int
}

// Detokenize converts one line of space-separated tokens into prose.
//
// The result is cut at the end of the first sentence-final punctuation mark
// on the line; a line with no sentence-final punctuation yields the empty
// string. Marker tokens must be removed with StripMarkers first.
func Detokenize(line string) string {
	text, boundary := render(line)
	lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	if boundary <= lead {
		return ""
	}
	return text[lead:boundary]
}

// render applies the spacing rules to every token and returns the joined
// text together with the recorded sentence boundary.
func render(line string) (string, int) {
	s := &lineState{
		space:      " ",
		quotes:     make(map[byte]int, 3),
		capitalize: true,
	}

	words := strings.Split(line, " ")
	for pos, word := range words {
		// Runs of spaces produce empty tokens; they carry no text.
		if word == "" {
			continue
		}
		word = s.emit(words, pos, word)
		if s.boundary == 0 && finalRe.MatchString(word) {
			s.capitalize = true
			s.boundary = s.text.Len()
		}
	}
	return s.text.String(), s.boundary
}

// emit appends one token and returns the token as written.
func (s *lineState) emit(words []string, pos int, word string) string {
	switch {
	case openingRe.MatchString(word):
		s.text.WriteString(s.space + word)
		s.space = ""

	case closingRe.MatchString(word):
		s.text.WriteString(word)
		s.space = " "

	case isJoiner(word) && inside(words, pos) &&
		contractionRe.MatchString(words[pos-1]+word+words[pos+1]):
		s.text.WriteString(word)
		s.space = ""

	case isQuote(word):
		s.quote(word)

	case startsWithJoiner(word) && inside(words, pos) &&
		contractionRe.MatchString(words[pos-1]+word):
		s.text.WriteString(word)
		s.space = " "

	case word == "n't":
		s.text.WriteString(word)
		s.space = " "

	default:
		if s.capitalize {
			s.capitalize = false
			word = capitalizeFirst(word)
		}
		if word == "i" {
			word = "I"
		}
		s.text.WriteString(s.space + word)
		s.space = " "
	}
	return word
}

// quote places a quotation mark. A mark right after a word ending in "s" is
// a possessive apostrophe; otherwise even counts open and odd counts close.
func (s *lineState) quote(word string) {
	class := quoteClass[word]

	if strings.HasSuffix(s.text.String(), "s") {
		s.text.WriteString(word)
		s.space = " "
		return
	}

	if s.quotes[class]%2 == 0 {
		s.text.WriteString(s.space + word)
		s.space = ""
	} else {
		s.text.WriteString(word)
		s.space = " "
	}
	s.quotes[class]++
}

func isJoiner(word string) bool {
	r, size := utf8.DecodeRuneInString(word)
	return size == len(word) && strings.ContainsRune(joiners, r)
}

func startsWithJoiner(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return strings.ContainsRune(joiners, r)
}

func isQuote(word string) bool {
	_, ok := quoteClass[word]
	return ok
}

// inside reports whether pos has a token on both sides.
func inside(words []string, pos int) bool {
	return pos > 0 && pos < len(words)-1
}

// capitalizeFirst upper-cases the first letter of word, skipping any leading
// whitespace left behind by section markers.
func capitalizeFirst(word string) string {
	for i, r := range word {
		if unicode.IsSpace(r) {
			continue
		}
		return word[:i] + string(unicode.ToUpper(r)) + word[i+utf8.RuneLen(r):]
	}
	return word
}
