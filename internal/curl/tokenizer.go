package curl

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type QuoteType string

const (
	QuoteNone   QuoteType = ""
	QuoteSingle QuoteType = "'"
	QuoteDouble QuoteType = "\""
)

type Token struct {
	Value     string    `json:"value"`
	Quoted    bool      `json:"quoted"`
	QuoteType QuoteType `json:"quoteType,omitempty"`
}

// span is a token together with the byte range it was read from.
type span struct {
	Token
	start int
	end   int
}

type lexState struct {
	token TokenState
	buf   strings.Builder
	start int
	out   []span
}

// add appends raw input bytes so invalid UTF-8 passes through unchanged.
func (st *lexState) add(raw string, at int) {
	if st.buf.Len() == 0 && !st.token.InQuote() {
		st.start = at
	}
	st.buf.WriteString(raw)
}

// flushBare emits the pending unquoted word, trimmed.
func (st *lexState) flushBare(end int) {
	v := strings.TrimSpace(st.buf.String())
	st.buf.Reset()
	if v == "" {
		return
	}
	st.out = append(st.out, span{Token: Token{Value: v}, start: st.start, end: end})
}

// flushQuoted emits the quoted word verbatim; empty quotes produce nothing.
func (st *lexState) flushQuoted(q QuoteType, end int) {
	v := st.buf.String()
	st.buf.Reset()
	if v == "" {
		return
	}
	st.out = append(st.out, span{
		Token: Token{Value: v, Quoted: true, QuoteType: q},
		start: st.start,
		end:   end,
	})
}

// Tokenize splits a command into shell-like words. Single quotes are fully
// literal; inside double quotes only \" and \\ are unescaped; outside quotes a
// backslash makes the next character literal. A quote always starts a new
// token, and an unterminated quote still yields what was read.
func Tokenize(input string) []Token {
	spans := scan(input)
	if len(spans) == 0 {
		return nil
	}
	out := make([]Token, len(spans))
	for i, s := range spans {
		out[i] = s.Token
	}
	return out
}

func scan(input string) []span {
	st := &lexState{}
	for i := 0; i < len(input); {
		_, size := utf8.DecodeRuneInString(input[i:])
		step := st.token.advance(input, i)

		switch step.action {
		case actFlushBare:
			st.flushBare(i)
		case actOpenQuote:
			st.flushBare(i)
			st.start = i
		case actCloseQuote:
			st.flushQuoted(step.quote, i+size)
		case actEmit:
			st.add(input[i+size:i+size+step.skip], i)
		case actNone:
			st.add(input[i:i+size], i)
		}
		i += size + step.skip
	}

	if st.token.InQuote() {
		st.flushQuoted(st.token.Quote(), len(input))
	} else {
		st.flushBare(len(input))
	}
	return st.out
}

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}
