package expr

import "fmt"

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, unexpected(t, "expected "+kind.String())
	}
	return t, nil
}

func unexpected(t token, want string) error {
	got := t.kind.String()
	if t.kind == tokName || t.kind == tokNumber {
		got = fmt.Sprintf("%s %q", got, t.text)
	}
	return &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s, %s", got, want), Err: ErrSyntax}
}

// parse builds the tree for the whole token stream.
func parse(src string) (node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression", Err: ErrEmpty}
	}
	p := &parser{toks: toks}
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, unexpected(t, "expected operator or end of input")
	}
	return n, nil
}

func (p *parser) sum() (node, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.product()
		if err != nil {
			return nil, err
		}
		left = binary{op: t.text[0], l: left, r: right}
	}
}

func (p *parser) product() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokStar && t.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binary{op: t.text[0], l: left, r: right}
	}
}

func (p *parser) unary() (node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return neg{x: x}, nil
	case tokPlus:
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return binary{op: '^', l: base, r: exp}, nil
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return num{v: t.num}, nil
	case tokLParen:
		n, err := p.sum()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return n, nil
	case tokName:
		if p.peek().kind == tokLParen {
			return p.call(t)
		}
		if variables[t.text] {
			return variable{name: t.text}, nil
		}
		if v, ok := constants[t.text]; ok {
			return constant{name: t.text, v: v}, nil
		}
		if _, ok := lookupFunction(t.text); ok {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("function %q used without arguments", t.text), Err: ErrArity}
		}
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unknown identifier %q", t.text), Err: ErrUnknownIdentifier}
	}
	return nil, unexpected(t, "expected number, name or '('")
}

func (p *parser) call(name token) (node, error) {
	fn, ok := lookupFunction(name.text)
	if !ok {
		_, isConst := constants[name.text]
		if variables[name.text] || isConst {
			return nil, &SyntaxError{Pos: name.pos, Msg: fmt.Sprintf("%q is not a function", name.text), Err: ErrArity}
		}
		return nil, &SyntaxError{Pos: name.pos, Msg: fmt.Sprintf("unknown function %q", name.text), Err: ErrUnknownIdentifier}
	}
	p.next() // (
	var args []node
	if p.peek().kind != tokRParen {
		for {
			a, err := p.sum()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if len(args) < fn.minArgs || len(args) > fn.maxArgs {
		want := fmt.Sprint(fn.minArgs)
		if fn.maxArgs != fn.minArgs {
			want = fmt.Sprintf("%d or %d", fn.minArgs, fn.maxArgs)
		}
		return nil, &SyntaxError{
			Pos: name.pos,
			Msg: fmt.Sprintf("%s takes %s argument(s), got %d", fn.name, want, len(args)),
			Err: ErrArity,
		}
	}
	return call{fn: fn, args: args}, nil
}
