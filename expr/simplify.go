package expr

import "math"

// The mk* constructors fold constants and drop neutral elements so that
// derivatives stay readable.

func numValue(n node) (float64, bool) {
	m, ok := n.(num)
	return m.v, ok
}

func isNum(n node, v float64) bool {
	m, ok := n.(num)
	return ok && m.v == v
}

func mkAdd(a, b node) node {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case aok && bok:
		return num{v: av + bv}
	case aok && av == 0:
		return b
	case bok && bv == 0:
		return a
	}
	if n, ok := b.(neg); ok {
		return mkSub(a, n.x)
	}
	return binary{op: '+', l: a, r: b}
}

func mkSub(a, b node) node {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case aok && bok:
		return num{v: av - bv}
	case bok && bv == 0:
		return a
	case aok && av == 0:
		return mkNeg(b)
	}
	if n, ok := b.(neg); ok {
		return mkAdd(a, n.x)
	}
	return binary{op: '-', l: a, r: b}
}

func mkMul(a, b node) node {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case aok && bok:
		return num{v: av * bv}
	case (aok && av == 0) || (bok && bv == 0):
		return num{v: 0}
	case aok && av == 1:
		return b
	case bok && bv == 1:
		return a
	case aok && av == -1:
		return mkNeg(b)
	case bok && bv == -1:
		return mkNeg(a)
	}
	na, aneg := a.(neg)
	nb, bneg := b.(neg)
	switch {
	case aneg && bneg:
		return mkMul(na.x, nb.x)
	case aneg:
		return mkNeg(mkMul(na.x, b))
	case bneg:
		return mkNeg(mkMul(a, nb.x))
	}
	if bok {
		// keep numeric coefficients in front
		return binary{op: '*', l: b, r: a}
	}
	return binary{op: '*', l: a, r: b}
}

func mkDiv(a, b node) node {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case aok && bok && bv != 0:
		return num{v: av / bv}
	case aok && av == 0:
		return num{v: 0}
	case bok && bv == 1:
		return a
	}
	if n, ok := a.(neg); ok {
		return mkNeg(mkDiv(n.x, b))
	}
	return binary{op: '/', l: a, r: b}
}

func mkNeg(a node) node {
	switch n := a.(type) {
	case num:
		return num{v: -n.v}
	case neg:
		return n.x
	}
	return neg{x: a}
}

func mkPow(a, b node) node {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case aok && bok:
		return num{v: math.Pow(av, bv)}
	case bok && bv == 0:
		return num{v: 1}
	case bok && bv == 1:
		return a
	case aok && av == 1:
		return num{v: 1}
	}
	return binary{op: '^', l: a, r: b}
}

func mkCall(name string, args ...node) node {
	return call{fn: functions[name], args: args}
}
