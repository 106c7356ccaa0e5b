package curl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizeSingleQuotedRoundTrip(t *testing.T) {
	inputs := []string{
		"hello world",
		"a  b\tc",
		`with "double" and \back`,
		"multi\nline body",
	}
	for _, s := range inputs {
		got := Tokenize("'" + s + "'")
		want := []Token{{Value: s, Quoted: true, QuoteType: QuoteSingle}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("tokenize %q mismatch (-want +got):\n%s", s, diff)
		}
	}
}

func TestTokenizeDoubleQuoteEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: `"a\"b"`, want: `a"b`},
		{in: `"c:\\dir"`, want: `c:\dir`},
		{in: `"line\nbreak"`, want: `line\nbreak`},
		{in: `"it's"`, want: `it's`},
	}
	for _, tc := range cases {
		got := Tokenize(tc.in)
		want := []Token{{Value: tc.want, Quoted: true, QuoteType: QuoteDouble}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("tokenize %s mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestTokenizeBareEscapes(t *testing.T) {
	got := Tokenize(`foo\ bar baz \'x`)
	want := []Token{{Value: "foo bar"}, {Value: "baz"}, {Value: "'x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}
}

func TestTokenizeKeepsInvalidUTF8(t *testing.T) {
	got := Tokenize("-d 'a\xffb' \"c\xfed\" e\xf0f \\\xff")
	want := []Token{
		{Value: "-d"},
		{Value: "a\xffb", Quoted: true, QuoteType: QuoteSingle},
		{Value: "c\xfed", Quoted: true, QuoteType: QuoteDouble},
		{Value: "e\xf0f"},
		{Value: "\xff"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}

	res, err := Parse("curl -d 'a\xffb' http://h/")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if body := res.Request.Body; body == nil || body.Text == nil || *body.Text != "a\xffb" {
		t.Fatalf("expected raw body bytes, got %+v", body)
	}
}

func TestTokenizeQuoteStartsNewToken(t *testing.T) {
	got := Tokenize(`-H'X: 1' a'b'c`)
	want := []Token{
		{Value: "-H"},
		{Value: "X: 1", Quoted: true, QuoteType: QuoteSingle},
		{Value: "a"},
		{Value: "b", Quoted: true, QuoteType: QuoteSingle},
		{Value: "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	got := Tokenize(`curl -d "abc def`)
	want := []Token{
		{Value: "curl"},
		{Value: "-d"},
		{Value: "abc def", Quoted: true, QuoteType: QuoteDouble},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}
}

func TestTokenizeDropsEmptyTokens(t *testing.T) {
	got := Tokenize("curl '' \"\"   \t x\n")
	want := []Token{{Value: "curl"}, {Value: "x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}
	if Tokenize("   ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	in := `curl -H "A: \"b\"" 'c d' e\ f`
	first := Tokenize(in)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Tokenize(in)); diff != "" {
			t.Fatalf("tokenize changed between runs:\n%s", diff)
		}
	}
}

func TestScanRecordsOffsets(t *testing.T) {
	in := `echo hi; curl 'x'`
	spans := scan(in)
	if len(spans) != 4 {
		t.Fatalf("expected 4 spans, got %d", len(spans))
	}
	if got := in[spans[2].start:spans[2].end]; got != "curl" {
		t.Fatalf("unexpected curl span %q", got)
	}
	if got := in[spans[3].start:spans[3].end]; got != "'x'" {
		t.Fatalf("unexpected quoted span %q", got)
	}
}
