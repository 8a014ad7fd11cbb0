package manifest

import (
	"strings"
	"unicode"

	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/poet"
)

// ParseType parses a type expression as written in manifests:
//
//	string | null                 union
//	A & B                         intersection
//	User[]                        array
//	[string, number]              tuple
//	'active'                      string literal
//	User@./user                   named import (see poet.SymbolFrom)
//	Map<string, User@./user>      type arguments
//	(a: string, b?: T) => void    function
//	{ readonly id: string }       object literal
//
// Names listed in typeVars resolve to type variables instead of symbols.
func ParseType(expr string, typeVars ...string) (poet.TypeName, error) {
	p := &typeParser{src: expr, vars: typeVars}
	t, err := p.union()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src  string
	pos  int
	vars []string
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(
		errors.NewInvalidManifestf(format, args...),
		"type %q at offset %d", p.src, p.pos,
	)
}

func (p *typeParser) eof() bool { return p.pos >= len(p.src) }

func (p *typeParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// accept consumes tok if it comes next.
func (p *typeParser) accept(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) expect(tok string) error {
	if !p.accept(tok) {
		return p.errorf("expected %q", tok)
	}
	return nil
}

func (p *typeParser) union() (poet.TypeName, error) {
	// A leading bar is allowed for multi-line unions: | 'a' | 'b'
	p.accept("|")
	first, err := p.intersection()
	if err != nil {
		return nil, err
	}
	members := []poet.TypeName{first}
	for p.peek() == '|' {
		p.pos++
		t, err := p.intersection()
		if err != nil {
			return nil, err
		}
		members = append(members, t)
	}
	if len(members) == 1 {
		return first, nil
	}
	return poet.Union(members...), nil
}

func (p *typeParser) intersection() (poet.TypeName, error) {
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}
	members := []poet.TypeName{first}
	for p.peek() == '&' {
		p.pos++
		t, err := p.postfix()
		if err != nil {
			return nil, err
		}
		members = append(members, t)
	}
	if len(members) == 1 {
		return first, nil
	}
	return poet.Intersection(members...), nil
}

func (p *typeParser) postfix() (poet.TypeName, error) {
	t, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.accept("[]") {
		t = poet.ArrayOf(t)
	}
	return t, nil
}

func (p *typeParser) primary() (poet.TypeName, error) {
	switch c := p.peek(); {
	case c == 0:
		return nil, p.errorf("missing type")
	case c == '(':
		if p.looksLikeFunction() {
			return p.function()
		}
		p.pos++
		t, err := p.union()
		if err != nil {
			return nil, err
		}
		return t, p.expect(")")
	case c == '[':
		return p.tuple()
	case c == '{':
		return p.object()
	case c == '\'' || c == '"':
		s, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return poet.StringLiteral(s), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return poet.TypeNamed(p.number()), nil
	default:
		return p.reference()
	}
}

// looksLikeFunction decides whether the '(' at pos opens a parameter list.
func (p *typeParser) looksLikeFunction() bool {
	q := &typeParser{src: p.src, pos: p.pos + 1}
	if q.accept(")") {
		return q.accept("=>")
	}
	if q.accept("...") {
		return true
	}
	if q.identifier() == "" {
		return false
	}
	c := q.peek()
	return c == ':' || c == '?'
}

func (p *typeParser) function() (poet.TypeName, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var params []poet.Param
	for !p.accept(")") {
		if len(params) > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
		var param poet.Param
		param.Rest = p.accept("...")
		if param.Name = p.identifier(); param.Name == "" {
			return nil, p.errorf("expected parameter name")
		}
		param.Optional = p.accept("?")
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		t, err := p.union()
		if err != nil {
			return nil, err
		}
		param.Type = t
		params = append(params, param)
	}
	if err := p.expect("=>"); err != nil {
		return nil, err
	}
	ret, err := p.union()
	if err != nil {
		return nil, err
	}
	return poet.Lambda(ret, params...), nil
}

func (p *typeParser) tuple() (poet.TypeName, error) {
	if err := p.expect("["); err != nil {
		return nil, err
	}
	var members []poet.TypeName
	for !p.accept("]") {
		if len(members) > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
		t, err := p.union()
		if err != nil {
			return nil, err
		}
		members = append(members, t)
	}
	return poet.Tuple(members...), nil
}

func (p *typeParser) object() (poet.TypeName, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	var members []poet.ObjectMember
	for !p.accept("}") {
		var m poet.ObjectMember
		name := p.identifier()
		if name == "readonly" && p.peek() != ':' && p.peek() != '?' {
			m.Readonly = true
			name = p.identifier()
		}
		if name == "" {
			return nil, p.errorf("expected member name")
		}
		m.Name = name
		m.Optional = p.accept("?")
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		t, err := p.union()
		if err != nil {
			return nil, err
		}
		m.Type = t
		members = append(members, m)
		if !p.accept(";") && !p.accept(",") && p.peek() != '}' {
			return nil, p.errorf("expected ';' or '}' after member %s", name)
		}
	}
	return poet.ObjectOf(members...), nil
}

// reference parses a symbol with optional type arguments.
func (p *typeParser) reference() (poet.TypeName, error) {
	p.skipSpace()
	start := p.pos
	p.accept("*")
	name := p.qualifiedName()
	if name == "" {
		return nil, p.errorf("expected a type name")
	}

	// Sources run until a delimiter; '@' may begin a scoped package.
	if !p.eof() && (p.src[p.pos] == '@' || p.src[p.pos] == '=') {
		p.pos++
		if p.source() == "" {
			return nil, p.errorf("missing module after %q", name)
		}
	}
	spec := p.src[start:p.pos]

	var raw poet.TypeName
	if len(p.vars) > 0 && spec == name && containsString(p.vars, name) {
		raw = poet.TypeVar(name)
	} else {
		raw = poet.TypeFor(poet.SymbolFrom(spec))
	}

	if !p.accept("<") {
		return raw, nil
	}
	var args []poet.TypeName
	for !p.accept(">") {
		if len(args) > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
		t, err := p.union()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	if len(args) == 0 {
		return nil, p.errorf("empty type arguments for %s", name)
	}
	return poet.Parameterized(raw, args...), nil
}

func (p *typeParser) identifier() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		r := rune(p.src[p.pos])
		if r == '_' || r == '$' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) qualifiedName() string {
	start := p.pos
	if p.identifier() == "" {
		return ""
	}
	for !p.eof() && p.src[p.pos] == '.' {
		p.pos++
		if p.identifier() == "" {
			p.pos--
			break
		}
	}
	return p.src[start:p.pos]
}

func (p *typeParser) source() string {
	start := p.pos
	for !p.eof() && !strings.ContainsRune(" \t\n|&<>,()[]{};", rune(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) number() string {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	for !p.eof() && (p.src[p.pos] == '.' || (p.src[p.pos] >= '0' && p.src[p.pos] <= '9')) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) quoted() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var sb strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		p.pos++
		switch {
		case c == '\\' && !p.eof():
			sb.WriteByte(p.src[p.pos])
			p.pos++
		case c == quote:
			return sb.String(), nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", p.errorf("unterminated string literal")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
