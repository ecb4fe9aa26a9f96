// Copyright 2024 RunReveal Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []Token
	}{
		{
			name:  "Empty",
			query: "",
			want:  nil,
		},
		{
			name:  "SingleName",
			query: "article",
			want: []Token{
				{Kind: TokenAlphanumeric, Span: Span{Start: 0, End: 7}},
			},
		},
		{
			name:  "Slashes",
			query: "a/b//c",
			want: []Token{
				{Kind: TokenAlphanumeric, Span: Span{Start: 0, End: 1}},
				{Kind: TokenSlash, Span: Span{Start: 1, End: 2}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 2, End: 3}},
				{Kind: TokenDoubleSlash, Span: Span{Start: 3, End: 5}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 5, End: 6}},
			},
		},
		{
			name:  "Stars",
			query: "*/**",
			want: []Token{
				{Kind: TokenStar, Span: Span{Start: 0, End: 1}},
				{Kind: TokenSlash, Span: Span{Start: 1, End: 2}},
				{Kind: TokenDoubleStar, Span: Span{Start: 2, End: 4}},
			},
		},
		{
			name:  "ParentDots",
			query: "..",
			want: []Token{
				{Kind: TokenDoublePoint, Span: Span{Start: 0, End: 2}},
			},
		},
		{
			name:  "RangeDotsSplitNumbers",
			query: "1..2",
			want: []Token{
				{Kind: TokenAlphanumeric, Span: Span{Start: 0, End: 1}},
				{Kind: TokenDoublePoint, Span: Span{Start: 1, End: 3}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 3, End: 4}},
			},
		},
		{
			name:  "FloatStaysOneToken",
			query: "1.2",
			want: []Token{
				{Kind: TokenAlphanumeric, Span: Span{Start: 0, End: 3}},
			},
		},
		{
			name:  "ThreeDotsSplitsTwoThenOne",
			query: "1...2",
			want: []Token{
				{Kind: TokenAlphanumeric, Span: Span{Start: 0, End: 1}},
				{Kind: TokenDoublePoint, Span: Span{Start: 1, End: 3}},
				{Kind: TokenPoint, Span: Span{Start: 3, End: 4}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 4, End: 5}},
			},
		},
		{
			name:  "Entries",
			query: `section["Second"]`,
			want: []Token{
				{Kind: TokenAlphanumeric, Span: Span{Start: 0, End: 7}},
				{Kind: TokenLBracket, Span: Span{Start: 7, End: 8}},
				{Kind: TokenString, Span: Span{Start: 8, End: 16}},
				{Kind: TokenRBracket, Span: Span{Start: 16, End: 17}},
			},
		},
		{
			name:  "NamedEntry",
			query: "[hello=world]",
			want: []Token{
				{Kind: TokenLBracket, Span: Span{Start: 0, End: 1}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 1, End: 6}},
				{Kind: TokenEqual, Span: Span{Start: 6, End: 7}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 7, End: 12}},
				{Kind: TokenRBracket, Span: Span{Start: 12, End: 13}},
			},
		},
		{
			name:  "Range",
			query: "{0..2}",
			want: []Token{
				{Kind: TokenLBrace, Span: Span{Start: 0, End: 1}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 1, End: 2}},
				{Kind: TokenDoublePoint, Span: Span{Start: 2, End: 4}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 4, End: 5}},
				{Kind: TokenRBrace, Span: Span{Start: 5, End: 6}},
			},
		},
		{
			name:  "UnterminatedString",
			query: `"hello`,
			want: []Token{
				{Kind: TokenString, Span: Span{Start: 0, End: 6}},
			},
		},
		{
			name:  "EscapedQuoteInsideString",
			query: `"a\"b"`,
			want: []Token{
				{Kind: TokenString, Span: Span{Start: 0, End: 6}},
			},
		},
		{
			name:  "PipeAndUnknownByte",
			query: "a|b#c",
			want: []Token{
				{Kind: TokenAlphanumeric, Span: Span{Start: 0, End: 1}},
				{Kind: TokenPipe, Span: Span{Start: 1, End: 2}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 2, End: 3}},
				{Kind: TokenUnknown, Span: Span{Start: 3, End: 4}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 4, End: 5}},
			},
		},
		{
			name:  "WhitespaceSkipped",
			query: " article \t paragraph\n",
			want: []Token{
				{Kind: TokenAlphanumeric, Span: Span{Start: 1, End: 8}},
				{Kind: TokenAlphanumeric, Span: Span{Start: 11, End: 20}},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Scan(test.query)
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Scan(%q) (-want +got):\n%s", test.query, diff)
			}
		})
	}
}

func TestTokenText(t *testing.T) {
	query := `article["Second"]`
	tokens := Scan(query)
	want := []string{"article", "[", `"Second"`, "]"}
	if len(tokens) != len(want) {
		t.Fatalf("Scan(%q) produced %d tokens, want %d", query, len(tokens), len(want))
	}
	for i, tok := range tokens {
		if got := tok.Text(query); got != want[i] {
			t.Errorf("tokens[%d].Text(...) = %q; want %q", i, got, want[i])
		}
	}
}
