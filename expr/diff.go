package expr

// diff returns the derivative of n with respect to the free variable name
// ("x" or "y"). The derived names r and theta are differentiated through
// their definitions.
func diff(n node, name string) node {
	switch n := n.(type) {
	case num, constant:
		return num{v: 0}
	case variable:
		return diffVariable(n, name)
	case neg:
		return mkNeg(diff(n.x, name))
	case binary:
		return diffBinary(n, name)
	case call:
		return diffCall(n, name)
	}
	panic("expr: unhandled node in diff")
}

func diffVariable(v variable, name string) node {
	x, y, r := variable{name: "x"}, variable{name: "y"}, variable{name: "r"}
	switch v.name {
	case "r":
		// dr/dx = x/r, dr/dy = y/r
		if name == "x" {
			return mkDiv(x, r)
		}
		return mkDiv(y, r)
	case "theta":
		// dθ/dx = -y/r², dθ/dy = x/r²
		if name == "x" {
			return mkNeg(mkDiv(y, mkPow(r, num{v: 2})))
		}
		return mkDiv(x, mkPow(r, num{v: 2}))
	case name:
		return num{v: 1}
	}
	return num{v: 0}
}

func diffBinary(b binary, name string) node {
	da, db := diff(b.l, name), diff(b.r, name)
	switch b.op {
	case '+':
		return mkAdd(da, db)
	case '-':
		return mkSub(da, db)
	case '*':
		return mkAdd(mkMul(da, b.r), mkMul(b.l, db))
	case '/':
		return mkDiv(mkSub(mkMul(da, b.r), mkMul(b.l, db)), mkPow(b.r, num{v: 2}))
	}
	// power
	if isNum(db, 0) {
		// d(a^n) = n a^(n-1) a'
		return mkMul(mkMul(b.r, mkPow(b.l, mkSub(b.r, num{v: 1}))), da)
	}
	// d(a^b) = a^b (b' ln a + b a'/a)
	return mkMul(mkPow(b.l, b.r), mkAdd(
		mkMul(db, mkCall("log", b.l)),
		mkDiv(mkMul(b.r, da), b.l),
	))
}

func diffCall(c call, name string) node {
	if c.fn.name == "atan2" {
		p, q := c.args[0], c.args[1]
		dp, dq := diff(p, name), diff(q, name)
		return mkDiv(
			mkSub(mkMul(q, dp), mkMul(p, dq)),
			mkAdd(mkPow(p, num{v: 2}), mkPow(q, num{v: 2})),
		)
	}
	if c.fn.name == "log" && len(c.args) == 2 {
		return diff(mkDiv(mkCall("log", c.args[0]), mkCall("log", c.args[1])), name)
	}

	a := c.args[0]
	da := diff(a, name)
	if isNum(da, 0) {
		return num{v: 0}
	}
	two := num{v: 2}
	var outer node
	switch c.fn.name {
	case "sin":
		outer = mkCall("cos", a)
	case "cos":
		outer = mkNeg(mkCall("sin", a))
	case "tan":
		outer = mkDiv(num{v: 1}, mkPow(mkCall("cos", a), two))
	case "asin":
		outer = mkDiv(num{v: 1}, mkCall("sqrt", mkSub(num{v: 1}, mkPow(a, two))))
	case "acos":
		outer = mkNeg(mkDiv(num{v: 1}, mkCall("sqrt", mkSub(num{v: 1}, mkPow(a, two)))))
	case "atan":
		outer = mkDiv(num{v: 1}, mkAdd(num{v: 1}, mkPow(a, two)))
	case "sinh":
		outer = mkCall("cosh", a)
	case "cosh":
		outer = mkCall("sinh", a)
	case "tanh":
		outer = mkDiv(num{v: 1}, mkPow(mkCall("cosh", a), two))
	case "exp":
		outer = mkCall("exp", a)
	case "log":
		outer = mkDiv(num{v: 1}, a)
	case "log10":
		outer = mkDiv(num{v: 1}, mkMul(a, mkCall("log", num{v: 10})))
	case "sqrt":
		outer = mkDiv(num{v: 1}, mkMul(two, mkCall("sqrt", a)))
	case "abs":
		outer = mkCall("sign", a)
	default:
		// floor, ceiling and sign are piecewise constant
		return num{v: 0}
	}
	return mkMul(outer, da)
}
