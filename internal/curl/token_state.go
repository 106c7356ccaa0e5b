package curl

import "unicode/utf8"

type lexAction int

const (
	actNone       lexAction = iota // append the current rune
	actEmit                        // append the skipped bytes instead of the current rune
	actFlushBare                   // whitespace outside quotes
	actOpenQuote                   // quote opened, rune dropped
	actCloseQuote                  // quote closed, rune dropped
)

type tokenStep struct {
	action lexAction
	quote  QuoteType
	skip   int // extra bytes consumed after the current rune
}

// TokenState tracks the quoting mode of a left-to-right scan. Single and
// double quote modes are mutually exclusive; neither set is bare mode.
type TokenState struct {
	inSingle bool
	inDouble bool
}

func (s *TokenState) InQuote() bool {
	return s.inSingle || s.inDouble
}

func (s *TokenState) Quote() QuoteType {
	switch {
	case s.inSingle:
		return QuoteSingle
	case s.inDouble:
		return QuoteDouble
	default:
		return QuoteNone
	}
}

func (s *TokenState) advance(input string, i int) tokenStep {
	r, size := utf8.DecodeRuneInString(input[i:])

	switch {
	case s.inSingle:
		if r == '\'' {
			s.inSingle = false
			return tokenStep{action: actCloseQuote, quote: QuoteSingle}
		}
		return tokenStep{}

	case s.inDouble:
		switch r {
		case '"':
			s.inDouble = false
			return tokenStep{action: actCloseQuote, quote: QuoteDouble}
		case '\\':
			if next, ok := peek(input, i+size); ok && (next == '"' || next == '\\') {
				return tokenStep{action: actEmit, skip: 1}
			}
		}
		return tokenStep{}
	}

	switch {
	case isWhitespace(r):
		return tokenStep{action: actFlushBare}
	case r == '\'':
		s.inSingle = true
		return tokenStep{action: actOpenQuote, quote: QuoteSingle}
	case r == '"':
		s.inDouble = true
		return tokenStep{action: actOpenQuote, quote: QuoteDouble}
	case r == '\\':
		if i+size < len(input) {
			_, n := utf8.DecodeRuneInString(input[i+size:])
			return tokenStep{action: actEmit, skip: n}
		}
	}
	return tokenStep{}
}

func peek(input string, at int) (rune, bool) {
	if at >= len(input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(input[at:])
	return r, true
}
