package legacy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnsupportedSyntax is returned when a script config uses anything beyond
// plain literals: identifiers, calls, require, template substitutions.
var ErrUnsupportedSyntax = errors.New("unsupported syntax")

// SyntaxError locates a literal parse failure.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Unwrap makes every SyntaxError match ErrUnsupportedSyntax.
func (e *SyntaxError) Unwrap() error { return ErrUnsupportedSyntax }

// undefined marks a literal undefined; object keys holding it are dropped.
type undefined struct{}

var exportPrefixes = []string{"module.exports", "export default"}

// ParseLiteral parses the exported value of a script-style config file.
// Only literal expressions are accepted; nothing is executed. Numbers are
// returned as float64, objects as map[string]any and arrays as []any.
func ParseLiteral(src string) (any, error) {
	p := &literalParser{src: strings.TrimPrefix(src, "\uFEFF")}
	p.skipSpace()
	p.skipDirective()
	p.skipExport()

	v, err := p.value()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.peek() == ';' {
		p.pos++
		p.skipSpace()
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %q after exported value", p.rest(12))
	}
	if _, ok := v.(undefined); ok {
		return nil, nil
	}
	return v, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) eof() bool { return p.pos >= len(p.src) }

func (p *literalParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) rest(n int) string {
	end := min(p.pos+n, len(p.src))
	return p.src[p.pos:end]
}

func (p *literalParser) errorf(format string, args ...any) error {
	line, col := 1, 1
	for _, r := range p.src[:min(p.pos, len(p.src))] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

// skipSpace skips whitespace and comments.
func (p *literalParser) skipSpace() {
	for !p.eof() {
		switch {
		case strings.HasPrefix(p.src[p.pos:], "//"):
			end := strings.IndexByte(p.src[p.pos:], '\n')
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 1
		case strings.HasPrefix(p.src[p.pos:], "/*"):
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if !unicode.IsSpace(r) {
				return
			}
			p.pos += size
		}
	}
}

// skipDirective skips a leading 'use strict' directive.
func (p *literalParser) skipDirective() {
	for _, d := range []string{`'use strict'`, `"use strict"`} {
		if strings.HasPrefix(p.src[p.pos:], d) {
			p.pos += len(d)
			p.skipSpace()
			if p.peek() == ';' {
				p.pos++
			}
			p.skipSpace()
			return
		}
	}
}

// skipExport skips "module.exports =" or "export default".
func (p *literalParser) skipExport() {
	for _, prefix := range exportPrefixes {
		if !strings.HasPrefix(p.src[p.pos:], prefix) {
			continue
		}
		p.pos += len(prefix)
		p.skipSpace()
		if prefix == "module.exports" && p.peek() == '=' {
			p.pos++
			p.skipSpace()
		}
		return
	}
}

func (p *literalParser) value() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}

	switch c := p.peek(); {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '\'' || c == '"':
		return p.quoted(c)
	case c == '`':
		return p.template()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(rune(c)):
		word := p.ident()
		switch word {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		case "undefined":
			return undefined{}, nil
		}
		return nil, p.errorf("identifier %q is not a literal", word)
	default:
		return nil, p.errorf("unexpected %q", p.rest(1))
	}
}

func (p *literalParser) object() (map[string]any, error) {
	p.pos++ // {
	out := make(map[string]any)

	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return out, nil
		}

		if strings.HasPrefix(p.src[p.pos:], "...") {
			p.pos += 3
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			spread, ok := v.(map[string]any)
			if !ok {
				return nil, p.errorf("only object literals can be spread into an object")
			}
			for k, sv := range spread {
				out[k] = sv
			}
		} else {
			key, err := p.key()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.peek() != ':' {
				return nil, p.errorf("expected ':' after key %q", key)
			}
			p.pos++

			v, err := p.value()
			if err != nil {
				return nil, err
			}
			if _, ok := v.(undefined); ok {
				delete(out, key)
			} else {
				out[key] = v
			}
		}

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		default:
			return nil, p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *literalParser) key() (string, error) {
	switch c := p.peek(); {
	case c == '\'' || c == '"':
		return p.quoted(c)
	case isDigit(c):
		n, err := p.number()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case isIdentStart(rune(c)):
		return p.ident(), nil
	case c == '[':
		return "", p.errorf("computed keys are not supported")
	}
	return "", p.errorf("expected object key")
}

func (p *literalParser) array() ([]any, error) {
	p.pos++ // [
	out := []any{}

	for {
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			return out, nil
		}

		if strings.HasPrefix(p.src[p.pos:], "...") {
			p.pos += 3
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			spread, ok := v.([]any)
			if !ok {
				return nil, p.errorf("only array literals can be spread into an array")
			}
			out = append(out, spread...)
		} else {
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			if _, ok := v.(undefined); ok {
				v = nil
			}
			out = append(out, v)
		}

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return nil, p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *literalParser) quoted(quote byte) (string, error) {
	p.pos++ // opening quote
	var b strings.Builder

	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		case c == '\n' && quote != '`':
			return "", p.errorf("newline in string")
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *literalParser) template() (string, error) {
	end := p.pos + 1
	for end < len(p.src) && p.src[end] != '`' {
		if p.src[end] == '\\' {
			end++
		} else if strings.HasPrefix(p.src[end:], "${") {
			p.pos = end
			return "", p.errorf("template substitutions are not supported")
		}
		end++
	}
	return p.quoted('`')
}

func (p *literalParser) escape(b *strings.Builder) error {
	p.pos++ // backslash
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++

	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\n':
		// line continuation
	case 'x':
		r, err := p.hex(2)
		if err != nil {
			return err
		}
		b.WriteRune(r)
	case 'u':
		if p.peek() == '{' {
			end := strings.IndexByte(p.src[p.pos:], '}')
			if end < 0 {
				return p.errorf("unterminated unicode escape")
			}
			n, err := strconv.ParseUint(p.src[p.pos+1:p.pos+end], 16, 32)
			if err != nil {
				return p.errorf("invalid unicode escape")
			}
			p.pos += end + 1
			b.WriteRune(rune(n))
			return nil
		}
		r, err := p.hex(4)
		if err != nil {
			return err
		}
		b.WriteRune(r)
	default:
		b.WriteByte(c)
	}
	return nil
}

func (p *literalParser) hex(n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf("short hex escape")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+n], 16, 32)
	if err != nil {
		return 0, p.errorf("invalid hex escape")
	}
	p.pos += n
	return rune(v), nil
}

func (p *literalParser) number() (float64, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}

	if strings.HasPrefix(p.src[p.pos:], "0x") || strings.HasPrefix(p.src[p.pos:], "0X") {
		p.pos += 2
		digits := p.pos
		for !p.eof() && isHexDigit(p.peek()) {
			p.pos++
		}
		n, err := strconv.ParseInt(p.src[digits:p.pos], 16, 64)
		if err != nil {
			return 0, p.errorf("invalid hex number")
		}
		if p.src[start] == '-' {
			n = -n
		}
		return float64(n), nil
	}

	for !p.eof() {
		c := p.peek()
		if isDigit(c) || c == '.' || c == '_' {
			p.pos++
			continue
		}
		if c == 'e' || c == 'E' {
			p.pos++
			if s := p.peek(); s == '-' || s == '+' {
				p.pos++
			}
			continue
		}
		break
	}

	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("invalid number %q", text)
	}
	return n, nil
}

func (p *literalParser) ident() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if p.pos > start && !isIdentPart(r) || p.pos == start && !isIdentStart(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// IsIdentifier reports whether s can be written as an unquoted object key.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isIdentStart(r) || i > 0 && !isIdentPart(r) {
			return false
		}
	}
	return true
}
