// Copyright 2024 RunReveal Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

import "strings"

// cursor walks a token slice with one-token lookback, shared by the
// entries, range, and path parsers.
type cursor struct {
	source string
	tokens []Token
	pos    int
}

func newCursor(source string, tokens []Token) *cursor {
	return &cursor{source: source, tokens: tokens}
}

func (c *cursor) next() (Token, bool) {
	if c.pos >= len(c.tokens) {
		return Token{}, false
	}
	tok := c.tokens[c.pos]
	c.pos++
	return tok, true
}

func (c *cursor) prev() {
	if c.pos > 0 {
		c.pos--
	}
}

func (c *cursor) text(tok Token) string {
	return tok.Text(c.source)
}

func (c *cursor) errorAt(tok Token, err error) error {
	return &ParseError{source: c.source, span: tok.Span, err: err}
}

func (c *cursor) errorAtEnd(err error) error {
	return &ParseError{source: c.source, span: indexSpan(len(c.source)), err: err}
}

// EntryKind discriminates the variants of [EntryConstraint].
type EntryKind int

// Entry kinds.
const (
	EntryPositional EntryKind = 1 + iota
	EntryNamed
)

// EntryConstraint is one constraint inside an `[...]` predicate: either
// a positional constraint against the node's p-th unnamed entry, or a
// named constraint against a property (spec §3 "Entry constraint").
// A nil Value means presence-only (the `_` wildcard).
type EntryConstraint struct {
	Kind     EntryKind
	Position uint64
	Name     string
	Value    *Value
}

// PositionalEntry builds a positional [EntryConstraint].
func PositionalEntry(position uint64, value *Value) EntryConstraint {
	return EntryConstraint{Kind: EntryPositional, Position: position, Value: value}
}

// NamedEntry builds a named [EntryConstraint].
func NamedEntry(name string, value *Value) EntryConstraint {
	return EntryConstraint{Kind: EntryNamed, Name: name, Value: value}
}

// Entries is an ordered list of entry constraints (spec §3 "Entries").
type Entries []EntryConstraint

// String renders e the way it would appear inside `[...]`, matching
// the implicit-position display rule: a positional entry prints bare
// when its position matches where the implicit counter would have put
// it, and `position=value` otherwise.
func (e Entries) String() string {
	var sb strings.Builder
	implicit := uint64(0)
	for i, entry := range e {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch entry.Kind {
		case EntryPositional:
			if entry.Position == implicit {
				sb.WriteString(valueOrWildcard(entry.Value))
				implicit++
			} else {
				sb.WriteString(formatUint(entry.Position))
				sb.WriteByte('=')
				sb.WriteString(valueOrWildcard(entry.Value))
			}
		case EntryNamed:
			sb.WriteString(quotePropName(entry.Name))
			sb.WriteByte('=')
			sb.WriteString(valueOrWildcard(entry.Value))
		}
	}
	return sb.String()
}

func valueOrWildcard(v *Value) string {
	if v == nil {
		return "_"
	}
	return v.String()
}

func quotePropName(name string) string {
	return quoteIfNeeded(name)
}

func formatUint(u uint64) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}

// entriesState tracks the mutable parse state described in spec §4.3:
// the implicit positional counter, the pending identifier (if any
// `=` has been seen), and whether the most recently appended entry is
// still eligible for retroactive `=`-promotion.
type entriesState struct {
	implicit       uint64
	pendingName    *string
	pendingPos     *uint64
	lastPromotable bool
}

func (st *entriesState) hasPending() bool {
	return st.pendingName != nil || st.pendingPos != nil
}

// append builds the constraint for a newly decoded value, consuming
// any pending identifier, and records whether the new entry came from
// the bare implicit counter (and so is itself promotable later).
func (st *entriesState) append(val *Value) EntryConstraint {
	switch {
	case st.pendingName != nil:
		name := *st.pendingName
		st.pendingName = nil
		st.lastPromotable = false
		return NamedEntry(name, val)
	case st.pendingPos != nil:
		pos := *st.pendingPos
		st.pendingPos = nil
		st.lastPromotable = false
		return PositionalEntry(pos, val)
	default:
		pos := st.implicit
		st.implicit++
		st.lastPromotable = true
		return PositionalEntry(pos, val)
	}
}

// promote takes the unnamed-positional entry the caller has just popped
// and stages its value as the pending identifier, per the `=` rule in
// spec §4.3.
func (st *entriesState) promote(last EntryConstraint) error {
	st.implicit--
	st.lastPromotable = false
	if last.Value == nil {
		return ErrUnexpectedEntryIdentifier
	}
	switch last.Value.Kind() {
	case ValueString:
		s, _ := last.Value.StringVal()
		st.pendingName = &s
		return nil
	case ValueInt:
		n, _ := last.Value.IntVal()
		p := uint64(n)
		st.pendingPos = &p
		return nil
	default:
		return ErrUnexpectedEntryIdentifier
	}
}

// parseEntries parses the body of an `[...]` predicate (spec §4.3). The
// opening `[` has already been consumed by the caller; parseEntries
// consumes tokens through and including the closing `]`.
func parseEntries(c *cursor) (Entries, error) {
	var entries Entries
	var st entriesState

	for {
		tok, ok := c.next()
		if !ok {
			return nil, c.errorAtEnd(ErrMissingEntryValue)
		}

		switch tok.Kind {
		case TokenRBracket:
			if st.hasPending() {
				return nil, c.errorAt(tok, ErrMissingEntryValue)
			}
			return entries, nil

		case TokenEqual:
			if st.hasPending() {
				return nil, c.errorAt(tok, ErrDoubleEqual)
			}
			if !st.lastPromotable || len(entries) == 0 {
				return nil, c.errorAt(tok, ErrMissingEntryIdentifier)
			}
			last := entries[len(entries)-1]
			entries = entries[:len(entries)-1]
			if err := st.promote(last); err != nil {
				return nil, c.errorAt(tok, err)
			}

		case TokenAlphanumeric, TokenString:
			val, err := decodeEntryValue(c, tok)
			if err != nil {
				return nil, err
			}
			entries = append(entries, st.append(val))

		default:
			return nil, c.errorAt(tok, ErrUnexpectedToken)
		}
	}
}

// decodeEntryValue decodes tok into a *Value, or nil for the `_`
// wildcard.
func decodeEntryValue(c *cursor, tok Token) (*Value, error) {
	text := c.text(tok)
	if tok.Kind == TokenAlphanumeric && text == "_" {
		return nil, nil
	}
	if tok.Kind == TokenString {
		s, err := DecodeString(text)
		if err != nil {
			return nil, c.errorAt(tok, err)
		}
		v := StringValue(s)
		return &v, nil
	}
	v, err := DecodeAlphanumeric(text)
	if err != nil {
		return nil, c.errorAt(tok, err)
	}
	return &v, nil
}
