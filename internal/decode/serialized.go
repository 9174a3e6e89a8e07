package decode

import (
	"strconv"
	"strings"
)

// parseSerialized parses the legacy length-prefixed serialized-array text
// format: strings carry an explicit byte length (s:5:"hello";), arrays carry
// an explicit element count (a:2:{...}), scalars are i:/d:/b:/N tokens.
//
// The parser is strict: the whole input must be consumed, declared lengths
// and counts must match exactly, and object or reference tokens fail the
// entire decode. Part-parsing a blob we do not fully understand risks a
// wrong "unused" verdict downstream, so anything unexpected means no result.
//
// Arrays with dense integer keys 0..n-1 become []any; everything else
// becomes map[string]any with stringified keys, matching the shape the
// JSON path produces so the tree walk stays encoding-agnostic.
func parseSerialized(raw string) (any, bool) {
	p := serParser{s: raw}
	v, ok := p.value()
	if !ok || p.pos != len(p.s) {
		return nil, false
	}
	return v, true
}

type serParser struct {
	s   string
	pos int
}

func (p *serParser) value() (any, bool) {
	if p.pos >= len(p.s) {
		return nil, false
	}
	switch p.s[p.pos] {
	case 'N':
		if !p.literal("N;") {
			return nil, false
		}
		return nil, true
	case 'b':
		if !p.literal("b:") {
			return nil, false
		}
		if p.pos >= len(p.s) {
			return nil, false
		}
		c := p.s[p.pos]
		if c != '0' && c != '1' {
			return nil, false
		}
		p.pos++
		if !p.literal(";") {
			return nil, false
		}
		return c == '1', true
	case 'i':
		if !p.literal("i:") {
			return nil, false
		}
		n, ok := p.intUntil(';')
		if !ok {
			return nil, false
		}
		return n, true
	case 'd':
		if !p.literal("d:") {
			return nil, false
		}
		end := strings.IndexByte(p.s[p.pos:], ';')
		if end < 0 {
			return nil, false
		}
		f, err := strconv.ParseFloat(p.s[p.pos:p.pos+end], 64)
		if err != nil {
			return nil, false
		}
		p.pos += end + 1
		return f, true
	case 's':
		return p.stringValue()
	case 'a':
		return p.arrayValue()
	default:
		// 'O' (object), 'C' (custom), 'R'/'r' (reference) and anything
		// unknown: refuse the whole blob.
		return nil, false
	}
}

func (p *serParser) stringValue() (string, bool) {
	if !p.literal("s:") {
		return "", false
	}
	n, ok := p.intUntil(':')
	if !ok || n < 0 {
		return "", false
	}
	if !p.literal(`"`) {
		return "", false
	}
	// Compare against the remaining bytes rather than computing pos+length,
	// which a huge declared length could overflow past the bounds check.
	if n > int64(len(p.s)-p.pos) {
		return "", false
	}
	length := int(n)
	v := p.s[p.pos : p.pos+length]
	p.pos += length
	if !p.literal(`";`) {
		return "", false
	}
	return v, true
}

func (p *serParser) arrayValue() (any, bool) {
	if !p.literal("a:") {
		return nil, false
	}
	count, ok := p.intUntil(':')
	if !ok || count < 0 {
		return nil, false
	}
	if !p.literal("{") {
		return nil, false
	}

	// The declared count is untrusted input; a tiny blob can claim billions
	// of elements. Size the buffers by what the remaining bytes could
	// possibly hold (the smallest key+value pair is several bytes) and let
	// the strict per-element parse reject the lie.
	hint := count
	if max := int64(len(p.s)-p.pos) / 4; hint > max {
		hint = max
	}
	keys := make([]string, 0, hint)
	vals := make([]any, 0, hint)
	listLike := true
	for i := int64(0); i < count; i++ {
		key, intKey, ok := p.key()
		if !ok {
			return nil, false
		}
		if !intKey || key != strconv.FormatInt(i, 10) {
			listLike = false
		}
		v, ok := p.value()
		if !ok {
			return nil, false
		}
		keys = append(keys, key)
		vals = append(vals, v)
	}
	if !p.literal("}") {
		return nil, false
	}

	if listLike {
		return vals, true
	}
	m := make(map[string]any, len(keys))
	for i, k := range keys {
		m[k] = vals[i]
	}
	return m, true
}

// key parses an array key, which the format restricts to integers and
// strings. intKey reports which form was used.
func (p *serParser) key() (key string, intKey, ok bool) {
	if p.pos >= len(p.s) {
		return "", false, false
	}
	switch p.s[p.pos] {
	case 'i':
		if !p.literal("i:") {
			return "", false, false
		}
		n, valid := p.intUntil(';')
		if !valid {
			return "", false, false
		}
		return strconv.FormatInt(n, 10), true, true
	case 's':
		s, valid := p.stringValue()
		return s, false, valid
	default:
		return "", false, false
	}
}

func (p *serParser) literal(lit string) bool {
	if !strings.HasPrefix(p.s[p.pos:], lit) {
		return false
	}
	p.pos += len(lit)
	return true
}

// intUntil parses a base-10 integer terminated by sep, consuming the
// terminator.
func (p *serParser) intUntil(sep byte) (int64, bool) {
	end := strings.IndexByte(p.s[p.pos:], sep)
	if end <= 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(p.s[p.pos:p.pos+end], 10, 64)
	if err != nil {
		return 0, false
	}
	p.pos += end + 1
	return n, true
}
