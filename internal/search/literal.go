package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errNotList = errors.New("not a list literal")

// ParseSkills interprets a skills field shipped either as a native list or as a textual
// list literal such as "['Python', 'SQL']". Anything it cannot read yields an empty slice.
func ParseSkills(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return compactStrings(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := scalarString(item)
			if !ok {
				return []string{}
			}
			out = append(out, s)
		}
		return compactStrings(out)
	case string:
		items, err := parseListLiteral(v)
		if err != nil {
			return []string{}
		}
		return compactStrings(items)
	default:
		return []string{}
	}
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	default:
		return "", false
	}
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseListLiteral accepts a flat list of quoted strings or numbers with an optional
// trailing comma. Nested containers and bare names are rejected.
func parseListLiteral(src string) ([]string, error) {
	p := &literalParser{src: src}
	p.skipSpace()
	if !p.consume('[') {
		return nil, errNotList
	}
	items := []string{}
	p.skipSpace()
	if p.consume(']') {
		return items, p.end()
	}
	for {
		p.skipSpace()
		item, err := p.element()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipSpace()
		if p.consume(']') {
			return items, p.end()
		}
		if !p.consume(',') {
			return nil, p.errorf("expected ',' or ']'")
		}
		p.skipSpace()
		if p.consume(']') {
			return items, p.end()
		}
	}
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("list literal at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *literalParser) consume(c byte) bool {
	if b, ok := p.peek(); ok && b == c {
		p.pos++
		return true
	}
	return false
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) end() error {
	p.skipSpace()
	if p.pos != len(p.src) {
		return p.errorf("trailing data")
	}
	return nil
}

func (p *literalParser) element() (string, error) {
	b, ok := p.peek()
	if !ok {
		return "", p.errorf("unexpected end of input")
	}
	switch {
	case b == '\'' || b == '"':
		return p.quoted(b)
	case b == '-' || b == '+' || b == '.' || (b >= '0' && b <= '9'):
		return p.number()
	default:
		return "", p.errorf("unsupported element %q", b)
	}
}

func (p *literalParser) quoted(quote byte) (string, error) {
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\n':
			return "", p.errorf("newline in string")
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errorf("unterminated escape")
			}
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *literalParser) escape(b *strings.Builder) error {
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'u':
		if p.pos+4 > len(p.src) {
			return p.errorf("short unicode escape")
		}
		code, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
		if err != nil {
			return p.errorf("invalid unicode escape")
		}
		b.WriteRune(rune(code))
		p.pos += 4
	default:
		// unknown escapes are kept verbatim
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (p *literalParser) number() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return "", p.errorf("invalid number %q", text)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
