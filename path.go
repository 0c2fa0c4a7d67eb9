// path.go: the path/query evaluator. A small dotted/bracketed path
// grammar compiled once into a Path and then walked against a value
// tree one segment at a time.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import "fmt"

type pathSegKind uint8

const (
	pathSegKey pathSegKind = iota
	pathSegIndex
	// pathSegLeading holds a bareword path's ambiguous first segment: a
	// leading integer literal is a key against an object and an
	// implicit subscript against an array.
	pathSegLeading
	pathSegKeys
	pathSegValues
	pathSegItems
	pathSegLength
)

type pathSegment struct {
	kind  pathSegKind
	key   Atom
	index int64
}

// Path is a compiled path: up to 32 segments, keys already interned as
// atoms, indices already parsed as int64 — ready to walk against any
// value tree without re-tokenizing.
type Path struct {
	segments []pathSegment
}

// MaxPathSegments bounds a compiled Path's length.
const MaxPathSegments = 32

type pathScanner struct {
	ctx *Context
	buf []byte
	pos int
	end int
}

// ParsePath compiles path into a structural Path without evaluating
// it, for callers that want to reuse a compiled path across many
// values.
func (ctx *Context) ParsePath(path []byte) (Path, error) {
	s := &pathScanner{ctx: ctx, buf: path, end: len(path)}
	var segs []pathSegment
	first := true
	for s.pos < s.end {
		if len(segs) >= MaxPathSegments {
			return Path{}, ErrTooDeep(len(segs) + 1)
		}
		if len(segs) > 0 && segs[len(segs)-1].kind == pathSegLength {
			return Path{}, ErrInvalidValue("@length must be the final path segment")
		}
		var seg pathSegment
		var err error
		switch s.buf[s.pos] {
		case '.':
			s.pos++
			seg, err = s.parseDotSegment()
		case '[':
			s.pos++
			seg, err = s.parseBracketSegment()
		default:
			if !first {
				return Path{}, ErrInvalidChar(s.buf[s.pos], s.pos)
			}
			seg, err = s.parseLeadingSegment()
		}
		if err != nil {
			return Path{}, err
		}
		segs = append(segs, seg)
		first = false
	}
	return Path{segments: segs}, nil
}

func (s *pathScanner) parseDotSegment() (pathSegment, error) {
	if s.pos >= s.end {
		return pathSegment{}, ErrUnexpectedEOF(s.pos)
	}
	b := s.buf[s.pos]
	if b == '@' || b == '$' || b == '#' {
		s.pos++
		return s.parseViewSegment()
	}
	if b == '"' || b == '\'' {
		key, err := s.scanQuotedKey(b)
		if err != nil {
			return pathSegment{}, err
		}
		return pathSegment{kind: pathSegKey, key: key}, nil
	}
	if !isPathKeyByte(b) {
		return pathSegment{}, ErrInvalidChar(b, s.pos)
	}
	start := s.pos
	for s.pos < s.end && isPathKeyByte(s.buf[s.pos]) {
		s.pos++
	}
	return pathSegment{kind: pathSegKey, key: s.ctx.Atomize(s.buf[start:s.pos], true)}, nil
}

// isPathKeyByte is the parser's bareword class minus '.', which
// separates path segments.
func isPathKeyByte(b byte) bool { return b != '.' && isBarewordByte(b) }

func (s *pathScanner) parseViewSegment() (pathSegment, error) {
	start := s.pos
	for s.pos < s.end && isPathKeyByte(s.buf[s.pos]) {
		s.pos++
	}
	switch string(s.buf[start:s.pos]) {
	case "keys":
		return pathSegment{kind: pathSegKeys}, nil
	case "values":
		return pathSegment{kind: pathSegValues}, nil
	case "items":
		return pathSegment{kind: pathSegItems}, nil
	case "length":
		return pathSegment{kind: pathSegLength}, nil
	default:
		return pathSegment{}, ErrInvalidValue(string(s.buf[start:s.pos]))
	}
}

func (s *pathScanner) parseBracketSegment() (pathSegment, error) {
	start := s.pos
	if s.pos < s.end && s.buf[s.pos] == '-' {
		s.pos++
	}
	digitsStart := s.pos
	for s.pos < s.end && s.buf[s.pos] >= '0' && s.buf[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == digitsStart {
		return pathSegment{}, ErrInvalidValue(string(s.buf[start:s.pos]))
	}
	if s.pos >= s.end || s.buf[s.pos] != ']' {
		return pathSegment{}, ErrUnexpectedEOF(s.pos)
	}
	idx, err := parseInt64(s.buf[start:s.pos])
	if err != nil {
		return pathSegment{}, err
	}
	s.pos++ // ']'
	return pathSegment{kind: pathSegIndex, index: idx}, nil
}

// parseLeadingSegment handles a path with no leading '.' or '[': a
// bareword is an implicit key, a leading integer literal is ambiguous
// between a key and an implicit subscript and is resolved against the
// root value's kind at evaluation time.
func (s *pathScanner) parseLeadingSegment() (pathSegment, error) {
	b := s.buf[s.pos]
	if b == '"' || b == '\'' {
		key, err := s.scanQuotedKey(b)
		if err != nil {
			return pathSegment{}, err
		}
		return pathSegment{kind: pathSegKey, key: key}, nil
	}
	if b == '-' || (b >= '0' && b <= '9') {
		start := s.pos
		if b == '-' {
			s.pos++
		}
		for s.pos < s.end && s.buf[s.pos] >= '0' && s.buf[s.pos] <= '9' {
			s.pos++
		}
		if s.pos < s.end && isPathKeyByte(s.buf[s.pos]) {
			// Not purely numeric after all (e.g. "123abc"): plain key.
			for s.pos < s.end && isPathKeyByte(s.buf[s.pos]) {
				s.pos++
			}
			return pathSegment{kind: pathSegKey, key: s.ctx.Atomize(s.buf[start:s.pos], true)}, nil
		}
		text := s.buf[start:s.pos]
		idx, err := parseInt64(text)
		if err != nil {
			return pathSegment{kind: pathSegKey, key: s.ctx.Atomize(text, true)}, nil
		}
		return pathSegment{kind: pathSegLeading, key: s.ctx.Atomize(text, true), index: idx}, nil
	}
	if !isPathKeyByte(b) {
		return pathSegment{}, ErrInvalidChar(b, s.pos)
	}
	start := s.pos
	for s.pos < s.end && isPathKeyByte(s.buf[s.pos]) {
		s.pos++
	}
	return pathSegment{kind: pathSegKey, key: s.ctx.Atomize(s.buf[start:s.pos], true)}, nil
}

func parseInt64(text []byte) (int64, error) {
	neg := false
	i := 0
	if len(text) > 0 && text[0] == '-' {
		neg = true
		i = 1
	}
	if i == len(text) {
		return 0, ErrInvalidValue(string(text))
	}
	var v int64
	for ; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, ErrInvalidValue(string(text))
		}
		v = v*10 + int64(text[i]-'0')
	}
	if neg {
		v = -v
	}
	return v, nil
}

func (s *pathScanner) scanQuotedKey(quote byte) (Atom, error) {
	s.pos++ // opening quote
	start := s.pos
	hasEscape := false
	for {
		if s.pos >= s.end {
			return 0, ErrUnexpectedEOF(s.pos)
		}
		b := s.buf[s.pos]
		if b == '\\' {
			hasEscape = true
			if s.pos+1 >= s.end {
				return 0, ErrUnexpectedEOF(s.pos)
			}
			s.pos += 2
			continue
		}
		if b == quote {
			raw := s.buf[start:s.pos]
			s.pos++
			decoded := raw
			if hasEscape {
				var err error
				if decoded, err = decodeEscapes(raw); err != nil {
					return 0, err
				}
			}
			return s.ctx.Atomize(decoded, true), nil
		}
		s.pos++
	}
}

// Query compiles and evaluates path against v in one step.
func (ctx *Context) Query(v Value, path string) (Value, error) {
	p, err := ctx.ParsePath([]byte(path))
	if err != nil {
		return Value{}, err
	}
	return ctx.EvalPath(v, p)
}

// CheckedQuery wraps Query and fails with InvalidValue if the final
// value's kind isn't want.
func (ctx *Context) CheckedQuery(v Value, path string, want Kind) (Value, error) {
	result, err := ctx.Query(v, path)
	if err != nil {
		return Value{}, err
	}
	if result.Kind() != want {
		return Value{}, ErrInvalidValue(fmt.Sprintf("checked_query: expected %s, got %s", want, result.Kind()))
	}
	return result, nil
}

// EvalPath walks a precompiled Path against v.
func (ctx *Context) EvalPath(v Value, p Path) (Value, error) {
	cur := v
	for _, seg := range p.segments {
		next, err := ctx.evalSegment(cur, seg)
		if err != nil {
			return Value{}, err
		}
		cur = next
	}
	return cur, nil
}

func (ctx *Context) evalSegment(cur Value, seg pathSegment) (Value, error) {
	switch seg.kind {
	case pathSegKey:
		return ctx.ObjectGet(cur, seg.key)
	case pathSegIndex:
		return ctx.GetByIndex(cur, int(seg.index))
	case pathSegLeading:
		if cur.Kind().IsArrayLike() {
			return ctx.GetByIndex(cur, int(seg.index))
		}
		return ctx.ObjectGet(cur, seg.key)
	case pathSegKeys:
		return ctx.Keys(cur)
	case pathSegValues:
		return ctx.Values(cur)
	case pathSegItems:
		return ctx.Items(cur)
	case pathSegLength:
		n := ctx.Len(cur)
		if n < 0 {
			return Value{}, ErrTypeError("length", cur.Kind())
		}
		return Uint(uint64(n)), nil
	default:
		return Value{}, ErrInvalidValue("unknown path segment")
	}
}
