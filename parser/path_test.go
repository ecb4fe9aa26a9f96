// Copyright 2024 RunReveal Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func cmpPathOpts() cmp.Option {
	return cmp.Options{
		cmpopts.EquateEmpty(),
		cmp.AllowUnexported(Value{}),
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Path
	}{
		{
			name:  "SingleName",
			query: "article",
			want:  Path{{Kind: Named, Name: "article"}},
		},
		{
			name:  "NestedNames",
			query: "article/section",
			want: Path{
				{Kind: Named, Name: "article"},
				{Kind: Named, Name: "section"},
			},
		},
		{
			name:  "LeadingSlashIsRoot",
			query: "/article",
			want: Path{
				{Kind: Root},
				{Kind: Named, Name: "article"},
			},
		},
		{
			name:  "LeadingDoubleSlashIsAnywhere",
			query: "//article",
			want: Path{
				{Kind: Anywhere},
				{Kind: Named, Name: "article"},
			},
		},
		{
			name:  "AnyWildcard",
			query: "*",
			want:  Path{{Kind: Any}},
		},
		{
			name:  "RecursiveDescent",
			query: "article/**/paragraph",
			want: Path{
				{Kind: Named, Name: "article"},
				{Kind: Anywhere},
				{Kind: Named, Name: "paragraph"},
			},
		},
		{
			name:  "ParentNavigation",
			query: "node_children/node1/..",
			want: Path{
				{Kind: Named, Name: "node_children"},
				{Kind: Named, Name: "node1"},
				{Kind: Parent},
			},
		},
		{
			name:  "QuotedEntryValue",
			query: `section["Second"]`,
			want: Path{
				{Kind: Named, Name: "section", Entries: Entries{PositionalEntry(0, strVal("Second"))}},
			},
		},
		{
			name:  "RangeOnSegment",
			query: "paragraph{0..2}",
			want: Path{
				{Kind: Named, Name: "paragraph", Range: func() *Range { r := BothRange(0, 2); return &r }()},
			},
		},
		{
			name:  "EntriesAndRangeTogether",
			query: "node{1..3}[hello=world]",
			want: Path{
				{
					Kind:    Named,
					Name:    "node",
					Entries: Entries{NamedEntry("hello", strVal("world"))},
					Range:   func() *Range { r := BothRange(1, 3); return &r }(),
				},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(test.query)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", test.query, err)
			}
			if diff := cmp.Diff(test.want, got, cmpPathOpts()); diff != "" {
				t.Errorf("Parse(%q) (-want +got):\n%s", test.query, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"UnterminatedString", `"hello`, ErrMissingEndOfString},
		{"DuplicateEntries", "node1[1][2]", ErrEntriesAlreadyDefined},
		{"DuplicateRange", "node{1}{2}", ErrRangeAlreadyDefined},
		{"DuplicateKind", "**node", ErrNodeAlreadyDefined},
		{"EntriesBeforeKind", "[1]", ErrMissingNode},
		{"NumberAsNodeName", "123/section", ErrNotANode},
		{"MidPathDoubleSlash", "article//section", ErrUnexpectedToken},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.query)
			if !errors.Is(err, test.want) {
				t.Errorf("Parse(%q) error = %v; want %v", test.query, err, test.want)
			}
		})
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	tests := []string{
		"article",
		"article/section",
		"*",
		"**",
		"article/**/paragraph",
		"node_children/node1/..",
	}
	for _, query := range tests {
		t.Run(query, func(t *testing.T) {
			p, err := Parse(query)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", query, err)
			}
			rendered := p.String()
			reparsed, err := Parse(rendered)
			if err != nil {
				t.Fatalf("Parse(%q) (rendered from %q) error: %v", rendered, query, err)
			}
			if diff := cmp.Diff(p, reparsed, cmpPathOpts()); diff != "" {
				t.Errorf("round-trip mismatch for %q via %q (-original +reparsed):\n%s", query, rendered, diff)
			}
		})
	}
}

func TestPathStringRootRoundTrip(t *testing.T) {
	p, err := Parse("/article/section")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	const want = "/article/section"
	got := p.String()
	if got != want {
		t.Fatalf("Path.String() = %q; want %q", got, want)
	}
	reparsed, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", got, err)
	}
	if diff := cmp.Diff(p, reparsed, cmpPathOpts()); diff != "" {
		t.Errorf("round-trip mismatch (-original +reparsed):\n%s", diff)
	}
}
