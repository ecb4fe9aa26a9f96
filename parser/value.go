// Copyright 2024 RunReveal Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strconv"
	"strings"
)

// ValueKind discriminates the variants of [Value].
type ValueKind int

// Value kinds.
const (
	ValueString ValueKind = 1 + iota
	ValueInt
	ValueFloat
	ValueBool
	ValueNull
)

// Value is a scalar literal decoded from query source: a string,
// signed integer, floating-point number, boolean, or null. Equality is
// structural and never coerces across kinds (spec §4.6, §9): an
// integer 1 never equals the float 1.0 or the string "1".
type Value struct {
	kind ValueKind
	str  string
	i    int64
	f    float64
	b    bool
}

// StringValue returns a string-kinded [Value].
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// IntValue returns an integer-kinded [Value].
func IntValue(i int64) Value { return Value{kind: ValueInt, i: i} }

// FloatValue returns a floating-point-kinded [Value].
func FloatValue(f float64) Value { return Value{kind: ValueFloat, f: f} }

// BoolValue returns a boolean-kinded [Value].
func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

// NullValue returns the null [Value].
func NullValue() Value { return Value{kind: ValueNull} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// StringVal returns the decoded string and true if v is string-kinded.
func (v Value) StringVal() (string, bool) { return v.str, v.kind == ValueString }

// IntVal returns the integer and true if v is integer-kinded.
func (v Value) IntVal() (int64, bool) { return v.i, v.kind == ValueInt }

// FloatVal returns the float and true if v is float-kinded.
func (v Value) FloatVal() (float64, bool) { return v.f, v.kind == ValueFloat }

// BoolVal returns the boolean and true if v is boolean-kinded.
func (v Value) BoolVal() (bool, bool) { return v.b, v.kind == ValueBool }

// Equal reports structural, tag-discriminated equality: values of
// different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case ValueString:
		return v.str == other.str
	case ValueInt:
		return v.i == other.i
	case ValueFloat:
		return v.f == other.f
	case ValueBool:
		return v.b == other.b
	case ValueNull:
		return true
	default:
		return false
	}
}

// String renders v the way it would appear in query source, used for
// the round-trip display property (spec §8).
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return quoteIfNeeded(v.str)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueBool:
		if v.b {
			return "true"
		}
		return "false"
	case ValueNull:
		return "null"
	default:
		return ""
	}
}

func quoteIfNeeded(s string) string {
	if s != "" && s != "_" && isPlainIdent(s) {
		if v, err := DecodeAlphanumeric(s); err == nil && v.Kind() == ValueString {
			return s
		}
	}
	return strconv.Quote(s)
}

func isPlainIdent(s string) bool {
	for i, c := range s {
		if i == 0 {
			if !isIdentStart(c) {
				return false
			}
			continue
		}
		if !isIdentCont(c) || c == '.' {
			return false
		}
	}
	return true
}

var keywordValues = map[string]Value{
	"true":  BoolValue(true),
	"false": BoolValue(false),
	"null":  NullValue(),
}

// DecodeAlphanumeric classifies and decodes the text of a
// [TokenAlphanumeric] token (spec §4.2 "Alphanumeric decoder").
//
// An optional leading sign is followed by a numeric prefix (0x/0o/0b
// for integers; a leading digit otherwise) or, failing that, a plain
// string. The keywords true/false/null decode to their respective
// boolean/null values instead of a string.
func DecodeAlphanumeric(text string) (Value, error) {
	if text == "" {
		return Value{}, ErrMalformedNumber
	}
	if v, ok := keywordValues[text]; ok {
		return v, nil
	}

	sign := int64(1)
	rest := text
	switch text[0] {
	case '-':
		sign = -1
		rest = text[1:]
	case '+':
		rest = text[1:]
	}

	switch {
	case strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X"):
		return decodeRadixInt(text, rest[2:], 16, sign)
	case strings.HasPrefix(rest, "0o") || strings.HasPrefix(rest, "0O"):
		return decodeRadixInt(text, rest[2:], 8, sign)
	case strings.HasPrefix(rest, "0b") || strings.HasPrefix(rest, "0B"):
		return decodeRadixInt(text, rest[2:], 2, sign)
	case rest != "" && isDigit(rune(rest[0])):
		dots := strings.Count(rest, ".")
		switch dots {
		case 0:
			n, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return Value{}, ErrMalformedNumber
			}
			return IntValue(sign * n), nil
		case 1:
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return Value{}, ErrMalformedNumber
			}
			return FloatValue(f), nil
		default:
			return Value{}, ErrMalformedNumber
		}
	default:
		return StringValue(text), nil
	}
}

func decodeRadixInt(original, digits string, radix int, sign int64) (Value, error) {
	if digits == "" {
		return Value{}, ErrMalformedNumber
	}
	n, err := strconv.ParseInt(digits, radix, 64)
	if err != nil {
		return Value{}, ErrMalformedNumber
	}
	return IntValue(sign * n), nil
}

// DecodeString decodes the text of a [TokenString] token, which
// includes both delimiting quote characters, into the decoded string
// contents (spec §4.2 "String decoder").
func DecodeString(text string) (string, error) {
	if text == "" {
		return "", ErrEmptyString
	}
	if text[0] != '"' && text[0] != '\'' {
		return "", ErrMissingBeginOfString
	}
	if len(text) < 2 || text[len(text)-1] != text[0] {
		return "", ErrMissingEndOfString
	}
	interior := text[1 : len(text)-1]
	if !strings.ContainsRune(interior, '\\') {
		return interior, nil
	}
	return unescapeString(interior)
}

func unescapeString(interior string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(interior))
	runes := []rune(interior)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '\\' {
			sb.WriteRune(c)
			continue
		}
		i++
		if i >= len(runes) {
			return "", ErrMissingEndOfString
		}
		switch runes[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case 'x':
			b, n, err := readHexDigits(runes, i+1, 2, 2)
			if err != nil {
				return "", err
			}
			if b < 0x01 || b > 0x7F {
				return "", ErrAsciiNotValid
			}
			sb.WriteByte(byte(b))
			i += n
		case 'u':
			if i+1 >= len(runes) || runes[i+1] != '{' {
				return "", ErrExpectedCurlyBracket
			}
			end := i + 2
			for end < len(runes) && runes[end] != '}' {
				end++
			}
			if end >= len(runes) {
				return "", ErrMissingEndOfString
			}
			digits := runes[i+2 : end]
			if len(digits) == 0 {
				return "", ErrNotHexDigit
			}
			if len(digits) > 6 {
				return "", ErrUnicodeMoreThanSixDigits
			}
			cp, _, err := readHexDigits(digits, 0, len(digits), len(digits))
			if err != nil {
				return "", err
			}
			if cp > 0x10FFFF {
				return "", ErrUnicodeOutOfBound
			}
			if !validScalar(cp) {
				return "", ErrUnicodeNotValid
			}
			sb.WriteRune(rune(cp))
			i = end
		default:
			return "", &UnknownEscapeError{Char: runes[i]}
		}
	}
	return sb.String(), nil
}

// readHexDigits reads between min and max hex digits from runes
// starting at start, returning the decoded value and how many runes
// were consumed.
func readHexDigits(runes []rune, start, min, max int) (int64, int, error) {
	var v int64
	n := 0
	for n < max && start+n < len(runes) {
		d, ok := hexDigit(runes[start+n])
		if !ok {
			break
		}
		v = v<<4 + int64(d)
		n++
	}
	if n < min {
		return 0, 0, ErrNotHexDigit
	}
	return v, n, nil
}

func hexDigit(c rune) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

func validScalar(cp int64) bool {
	return cp >= 0 && (cp < 0xD800 || cp > 0xDFFF) && cp <= 0x10FFFF
}
