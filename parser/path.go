// Copyright 2024 RunReveal Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

import "strings"

// SelectorKind discriminates the variants of [Selector.Kind].
type SelectorKind int

// Selector kinds (spec §3 "Selector / path node").
const (
	// Root marks "start at document root". It is only valid as the
	// first segment of a path (produced by a leading '/') and the
	// resolver treats it as a pure no-op: it adds no filtering of its
	// own, since resolution already begins at the document root.
	Root SelectorKind = 1 + iota
	Named
	Any
	Anywhere
	Parent
)

// Selector is one path segment: a node kind plus optional entries and
// range refinements (spec §3 "Selector / path node").
type Selector struct {
	Kind    SelectorKind
	Name    string // valid when Kind == Named
	Entries Entries
	Range   *Range
}

// String renders sel the way it would appear in query source.
func (sel Selector) String() string {
	var sb strings.Builder
	switch sel.Kind {
	case Root:
		// Root renders as nothing of its own; the leading '/' that
		// produced it is emitted by [Path.String] instead.
	case Named:
		sb.WriteString(quoteIfNeeded(sel.Name))
	case Any:
		sb.WriteByte('*')
	case Anywhere:
		sb.WriteString("**")
	case Parent:
		sb.WriteString("..")
	}
	if sel.Entries != nil {
		sb.WriteByte('[')
		sb.WriteString(sel.Entries.String())
		sb.WriteByte(']')
	}
	if sel.Range != nil {
		sb.WriteByte('{')
		sb.WriteString(sel.Range.String())
		sb.WriteByte('}')
	}
	return sb.String()
}

// Path is an ordered list of selectors (spec §3 "Path").
type Path []Selector

// String renders p the way it would appear in query source. A leading
// Root selector contributes only the slash that introduces the next
// segment, since Root itself has no textual form of its own.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	rest := p
	if p[0].Kind == Root {
		sb.WriteByte('/')
		rest = p[1:]
	}
	for i, sel := range rest {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(sel.String())
	}
	return sb.String()
}

// segmentBuilder accumulates the pieces of one path segment and
// enforces the at-most-one invariants from spec §4.5.
type segmentBuilder struct {
	hasKind bool
	sel     Selector
}

func (b *segmentBuilder) setKind(kind SelectorKind, name string) error {
	if b.hasKind {
		return ErrNodeAlreadyDefined
	}
	b.hasKind = true
	b.sel.Kind = kind
	b.sel.Name = name
	return nil
}

func (b *segmentBuilder) setEntries(entries Entries) error {
	if !b.hasKind {
		return ErrMissingNode
	}
	if b.sel.Entries != nil {
		return ErrEntriesAlreadyDefined
	}
	if entries == nil {
		entries = Entries{}
	}
	b.sel.Entries = entries
	return nil
}

func (b *segmentBuilder) setRange(r Range) error {
	if !b.hasKind {
		return ErrMissingNode
	}
	if b.sel.Range != nil {
		return ErrRangeAlreadyDefined
	}
	rr := r
	b.sel.Range = &rr
	return nil
}

// Parse parses query into a [Path] (spec §4.5, §6 "Path::parse").
// Parsing aborts at the first error; no partial Path is ever returned
// (spec §7).
func Parse(query string) (Path, error) {
	tokens := Scan(query)
	c := newCursor(query, tokens)

	var path Path
	var cur segmentBuilder
	segStarted := false

	flush := func() {
		if segStarted {
			path = append(path, cur.sel)
			cur = segmentBuilder{}
			segStarted = false
		}
	}

	for {
		tok, ok := c.next()
		if !ok {
			break
		}

		switch tok.Kind {
		case TokenSlash:
			if len(path) == 0 && !segStarted {
				if err := cur.setKind(Root, ""); err != nil {
					return nil, c.errorAt(tok, err)
				}
				segStarted = true
				flush()
				continue
			}
			flush()

		case TokenDoubleSlash:
			if len(path) != 0 || segStarted {
				return nil, c.errorAt(tok, ErrUnexpectedToken)
			}
			if err := cur.setKind(Anywhere, ""); err != nil {
				return nil, c.errorAt(tok, err)
			}
			segStarted = true
			flush()

		case TokenStar:
			if err := cur.setKind(Any, ""); err != nil {
				return nil, c.errorAt(tok, err)
			}
			segStarted = true

		case TokenDoubleStar:
			if err := cur.setKind(Anywhere, ""); err != nil {
				return nil, c.errorAt(tok, err)
			}
			segStarted = true

		case TokenDoublePoint:
			if err := cur.setKind(Parent, ""); err != nil {
				return nil, c.errorAt(tok, err)
			}
			segStarted = true

		case TokenString:
			name, err := DecodeString(c.text(tok))
			if err != nil {
				return nil, c.errorAt(tok, err)
			}
			if err := cur.setKind(Named, name); err != nil {
				return nil, c.errorAt(tok, err)
			}
			segStarted = true

		case TokenAlphanumeric:
			v, err := DecodeAlphanumeric(c.text(tok))
			if err != nil {
				return nil, c.errorAt(tok, err)
			}
			name, ok := v.StringVal()
			if !ok {
				return nil, c.errorAt(tok, ErrNotANode)
			}
			if err := cur.setKind(Named, name); err != nil {
				return nil, c.errorAt(tok, err)
			}
			segStarted = true

		case TokenLBracket:
			entries, err := parseEntries(c)
			if err != nil {
				return nil, err
			}
			if err := cur.setEntries(entries); err != nil {
				return nil, c.errorAt(tok, err)
			}

		case TokenLBrace:
			r, err := parseRange(c)
			if err != nil {
				return nil, err
			}
			if err := cur.setRange(r); err != nil {
				return nil, c.errorAt(tok, err)
			}

		default:
			return nil, c.errorAt(tok, ErrUnexpectedToken)
		}
	}

	flush()
	return path, nil
}
