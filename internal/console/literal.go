package console

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hbnb-network/hbnb/internal/domain"
)

// LiteralKind identifies the shape of a parsed literal.
type LiteralKind uint8

const (
	LitNull LiteralKind = iota
	LitString
	LitInt
	LitFloat
	LitBool
	LitList
	LitMap
)

// Literal is a value read by ParseLiteral. Mappings keep their keys in
// source order. Tuples are lists with Tuple set.
type Literal struct {
	Kind  LiteralKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Tuple bool
	Items []Literal
	Pairs []LiteralPair
}

// LiteralPair is one key/value entry of a mapping literal.
type LiteralPair struct {
	Key   Literal
	Value Literal
}

// Text renders the literal as a single console token. Strings are bare;
// other kinds are written back in literal notation.
func (l Literal) Text() string {
	if l.Kind == LitString {
		return l.Str
	}
	return l.repr()
}

func (l Literal) repr() string {
	switch l.Kind {
	case LitString:
		return quoteLiteral(l.Str)
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		return domain.FormatFloat(l.Float)
	case LitBool:
		if l.Bool {
			return "True"
		}
		return "False"
	case LitList:
		parts := make([]string, len(l.Items))
		for i, item := range l.Items {
			parts[i] = item.repr()
		}
		if !l.Tuple {
			return "[" + strings.Join(parts, ", ") + "]"
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case LitMap:
		parts := make([]string, len(l.Pairs))
		for i, p := range l.Pairs {
			parts[i] = p.Key.repr() + ": " + p.Value.repr()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "None"
	}
}

// quoteLiteral writes s as a string literal, single-quoted unless s holds a
// single quote and no double quote.
func quoteLiteral(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\' || r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func (l Literal) scalar() bool {
	return l.Kind != LitList && l.Kind != LitMap
}

// maxLiteralDepth bounds nesting so hostile input cannot exhaust the stack.
const maxLiteralDepth = 32

// ParseLiteral reads a single literal: mappings, lists, tuples, quoted
// strings, numbers and the constants true/false/null (also accepted as
// True/False/None). Nothing is ever evaluated; any other input is
// domain.ErrLiteralSyntax.
func ParseLiteral(src string) (Literal, error) {
	p := &literalParser{src: src}
	p.skipSpace()
	lit, err := p.value(0)
	if err != nil {
		return Literal{}, err
	}
	p.skipSpace()
	if !p.done() {
		return Literal{}, p.fail("unexpected trailing input")
	}
	return lit, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) done() bool { return p.pos >= len(p.src) }

func (p *literalParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) skipSpace() {
	for !p.done() && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *literalParser) fail(msg string) error {
	return fmt.Errorf("%w: %s at offset %d", domain.ErrLiteralSyntax, msg, p.pos)
}

func (p *literalParser) value(depth int) (Literal, error) {
	if depth > maxLiteralDepth {
		return Literal{}, p.fail("nesting too deep")
	}
	switch c := p.peek(); {
	case c == '{':
		return p.mapping(depth)
	case c == '[':
		p.pos++
		items, err := p.sequence(']', depth)
		return Literal{Kind: LitList, Items: items}, err
	case c == '(':
		return p.tuple(depth)
	case c == '\'' || c == '"':
		s, err := p.str()
		return Literal{Kind: LitString, Str: s}, err
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isIdentStart(c):
		return p.constant()
	case c == 0:
		return Literal{}, p.fail("unexpected end of input")
	default:
		return Literal{}, p.fail(fmt.Sprintf("unexpected %q", c))
	}
}

func (p *literalParser) mapping(depth int) (Literal, error) {
	p.pos++ // {
	lit := Literal{Kind: LitMap}
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return lit, nil
		}
		key, err := p.value(depth + 1)
		if err != nil {
			return Literal{}, err
		}
		if !key.scalar() {
			return Literal{}, p.fail("mapping key must be a scalar")
		}
		p.skipSpace()
		if p.peek() != ':' {
			return Literal{}, p.fail("expected ':'")
		}
		p.pos++
		p.skipSpace()
		val, err := p.value(depth + 1)
		if err != nil {
			return Literal{}, err
		}
		lit.put(key, val)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return lit, nil
		default:
			return Literal{}, p.fail("expected ',' or '}'")
		}
	}
}

// put keeps the first position of a repeated key and its last value.
func (l *Literal) put(key, val Literal) {
	for i := range l.Pairs {
		if l.Pairs[i].Key.Kind == key.Kind && l.Pairs[i].Key.repr() == key.repr() {
			l.Pairs[i].Value = val
			return
		}
	}
	l.Pairs = append(l.Pairs, LiteralPair{Key: key, Value: val})
}

func (p *literalParser) sequence(closer byte, depth int) ([]Literal, error) {
	items := []Literal{}
	for {
		p.skipSpace()
		if p.peek() == closer {
			p.pos++
			return items, nil
		}
		item, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return items, nil
		default:
			return nil, p.fail(fmt.Sprintf("expected ',' or %q", closer))
		}
	}
}

// tuple handles "()" and "(a, ...)" as lists, and "(a)" as plain grouping.
func (p *literalParser) tuple(depth int) (Literal, error) {
	p.pos++ // (
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return Literal{Kind: LitList, Tuple: true, Items: []Literal{}}, nil
	}
	first, err := p.value(depth + 1)
	if err != nil {
		return Literal{}, err
	}
	p.skipSpace()
	switch p.peek() {
	case ')':
		p.pos++
		return first, nil
	case ',':
		p.pos++
		rest, err := p.sequence(')', depth)
		if err != nil {
			return Literal{}, err
		}
		return Literal{Kind: LitList, Tuple: true, Items: append([]Literal{first}, rest...)}, nil
	default:
		return Literal{}, p.fail("expected ',' or ')'")
	}
}

func (p *literalParser) str() (string, error) {
	q := p.src[p.pos]
	p.pos++
	var b strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		switch {
		case c == q:
			p.pos++
			return b.String(), nil
		case c == '\n':
			return "", p.fail("newline in string")
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
	return "", p.fail("unterminated string")
}

func (p *literalParser) escape(b *strings.Builder) error {
	p.pos++ // backslash
	if p.done() {
		return p.fail("unterminated string")
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
	case '0':
		b.WriteByte(0)
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'x', 'u':
		width := 2
		if c == 'u' {
			width = 4
		}
		if p.pos+width > len(p.src) {
			return p.fail("truncated escape")
		}
		n, err := strconv.ParseUint(p.src[p.pos:p.pos+width], 16, 32)
		if err != nil {
			return p.fail("invalid escape")
		}
		p.pos += width
		b.WriteRune(rune(n))
	default:
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (p *literalParser) number() (Literal, error) {
	start := p.pos
	neg := false
	for p.peek() == '-' || p.peek() == '+' {
		if p.peek() == '-' {
			neg = !neg
		}
		p.pos++
		p.skipSpace()
	}
	digitsAt := p.pos
	for !p.done() {
		c := p.src[p.pos]
		isExpSign := (c == '+' || c == '-') && p.pos > digitsAt &&
			(p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E')
		if (c >= '0' && c <= '9') || c == '.' || c == '_' || c == 'e' || c == 'E' || isExpSign {
			p.pos++
			continue
		}
		break
	}
	text := strings.ReplaceAll(p.src[digitsAt:p.pos], "_", "")
	if text == "" || text == "." {
		p.pos = start
		return Literal{}, p.fail("invalid number")
	}
	if neg {
		text = "-" + text
	}

	if !strings.ContainsAny(text, ".eE") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Literal{Kind: LitInt, Int: n}, nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.pos = start
		return Literal{}, p.fail("invalid number")
	}
	return Literal{Kind: LitFloat, Float: f}, nil
}

func (p *literalParser) constant() (Literal, error) {
	start := p.pos
	for !p.done() && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "true", "True":
		return Literal{Kind: LitBool, Bool: true}, nil
	case "false", "False":
		return Literal{Kind: LitBool, Bool: false}, nil
	case "null", "None":
		return Literal{Kind: LitNull}, nil
	default:
		p.pos = start
		return Literal{}, p.fail(fmt.Sprintf("name %q is not a literal", word))
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
