// Copyright 2024 RunReveal Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

// RangeKind discriminates the variants of [Range].
type RangeKind int

// Range kinds (spec §3 "Range").
const (
	RangeOne RangeKind = 1 + iota
	RangeFrom
	RangeTo
	RangeBoth
	RangeAll
)

// Range is a slicing operator applied to the ordered candidate set
// produced by a selector (spec §3 "Range", §4.4).
type Range struct {
	Kind RangeKind
	From int64
	To   int64
}

// OneRange builds a `{i}` range.
func OneRange(i int64) Range { return Range{Kind: RangeOne, From: i} }

// FromRange builds a `{i..}` range.
func FromRange(i int64) Range { return Range{Kind: RangeFrom, From: i} }

// ToRange builds a `{..j}` range.
func ToRange(j int64) Range { return Range{Kind: RangeTo, To: j} }

// BothRange builds a `{i..j}` range.
func BothRange(i, j int64) Range { return Range{Kind: RangeBoth, From: i, To: j} }

// AllRange builds a `{..}` range (spec §3: "All").
func AllRange() Range { return Range{Kind: RangeAll} }

// String renders r the way it would appear inside `{...}`.
func (r Range) String() string {
	switch r.Kind {
	case RangeOne:
		return formatInt(r.From)
	case RangeFrom:
		return formatInt(r.From) + ".."
	case RangeTo:
		return ".." + formatInt(r.To)
	case RangeBoth:
		return formatInt(r.From) + ".." + formatInt(r.To)
	case RangeAll:
		return ".."
	default:
		return ""
	}
}

func formatInt(i int64) string {
	if i < 0 {
		return "-" + formatUint(uint64(-i))
	}
	return formatUint(uint64(i))
}

// parseRange parses the body of a `{...}` slice (spec §4.4). The
// opening `{` has already been consumed by the caller; parseRange
// consumes tokens through and including the closing `}`.
func parseRange(c *cursor) (Range, error) {
	var (
		haveFirst  bool
		first      int64
		sawSep     bool
		haveSecond bool
		second     int64
	)

	for {
		tok, ok := c.next()
		if !ok {
			return Range{}, c.errorAtEnd(ErrRangeMissingEnd)
		}

		switch tok.Kind {
		case TokenRBrace:
			return buildRange(haveFirst, first, sawSep, haveSecond, second, c, tok)

		case TokenDoublePoint:
			if sawSep {
				return Range{}, c.errorAt(tok, ErrUnexpectedToken)
			}
			sawSep = true

		case TokenAlphanumeric:
			v, err := DecodeAlphanumeric(c.text(tok))
			if err != nil {
				return Range{}, c.errorAt(tok, ErrRangeExpectingInteger)
			}
			n, ok := v.IntVal()
			if !ok {
				return Range{}, c.errorAt(tok, ErrRangeExpectingInteger)
			}
			if !sawSep {
				if haveFirst {
					return Range{}, c.errorAt(tok, ErrRangeMissingSeparator)
				}
				haveFirst = true
				first = n
			} else {
				if haveSecond {
					return Range{}, c.errorAt(tok, ErrUnexpectedToken)
				}
				haveSecond = true
				second = n
			}

		default:
			return Range{}, c.errorAt(tok, ErrUnexpectedToken)
		}
	}
}

func buildRange(haveFirst bool, first int64, sawSep bool, haveSecond bool, second int64, c *cursor, closing Token) (Range, error) {
	switch {
	case !haveFirst && !sawSep && !haveSecond:
		return Range{}, c.errorAt(closing, ErrRangeEmpty)
	case !haveFirst && sawSep && !haveSecond:
		return AllRange(), nil
	case haveFirst && !sawSep && !haveSecond:
		return OneRange(first), nil
	case haveFirst && sawSep && !haveSecond:
		return FromRange(first), nil
	case !haveFirst && sawSep && haveSecond:
		return ToRange(second), nil
	case haveFirst && sawSep && haveSecond:
		return BothRange(first, second), nil
	case haveFirst && !sawSep && haveSecond:
		return Range{}, c.errorAt(closing, ErrRangeMissingSeparator)
	default:
		return Range{}, c.errorAt(closing, ErrUnexpectedToken)
	}
}
