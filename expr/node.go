package expr

import (
	"math"
	"strconv"
	"strings"
)

// Printing precedence, lowest first.
const (
	precSum   = 1
	precProd  = 2
	precUnary = 3
	precPow   = 4
	precAtom  = 5
)

// node is an expression tree vertex.
type node interface {
	prec() int
	write(sb *strings.Builder)
}

type num struct{ v float64 }

type constant struct {
	name string
	v    float64
}

// variable is x, y or one of the derived polar names r and theta.
type variable struct{ name string }

type neg struct{ x node }

// binary holds +, -, *, / and ^ (power).
type binary struct {
	op   byte
	l, r node
}

type call struct {
	fn   *function
	args []node
}

func (num) prec() int      { return precAtom }
func (constant) prec() int { return precAtom }
func (variable) prec() int { return precAtom }
func (neg) prec() int      { return precUnary }
func (call) prec() int     { return precAtom }

func (b binary) prec() int {
	switch b.op {
	case '+', '-':
		return precSum
	case '*', '/':
		return precProd
	default:
		return precPow
	}
}

func (n num) write(sb *strings.Builder) {
	if n.v < 0 {
		sb.WriteByte('(')
		sb.WriteString(formatNum(n.v))
		sb.WriteByte(')')
		return
	}
	sb.WriteString(formatNum(n.v))
}

func (c constant) write(sb *strings.Builder) { sb.WriteString(c.name) }
func (v variable) write(sb *strings.Builder) { sb.WriteString(v.name) }

func (n neg) write(sb *strings.Builder) {
	sb.WriteByte('-')
	writeOperand(sb, n.x, n.x.prec() < precUnary)
}

func (b binary) write(sb *strings.Builder) {
	p := b.prec()
	switch b.op {
	case '^':
		writeOperand(sb, b.l, b.l.prec() <= precPow)
		sb.WriteString("**")
		writeOperand(sb, b.r, b.r.prec() < precUnary)
	default:
		writeOperand(sb, b.l, b.l.prec() < p)
		if p == precSum {
			sb.WriteString(" " + string(b.op) + " ")
		} else {
			sb.WriteByte(b.op)
		}
		// a - (b + c) and a / (b * c) need grouping; a + (b - c) does not.
		strict := b.op == '-' || b.op == '/'
		writeOperand(sb, b.r, b.r.prec() < p || (strict && b.r.prec() == p))
	}
}

func (c call) write(sb *strings.Builder) {
	sb.WriteString(c.fn.name)
	sb.WriteByte('(')
	for i, a := range c.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		a.write(sb)
	}
	sb.WriteByte(')')
}

func writeOperand(sb *strings.Builder, n node, paren bool) {
	if paren {
		sb.WriteByte('(')
	}
	n.write(sb)
	if paren {
		sb.WriteByte(')')
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func toString(n node) string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

// function describes a callable name accepted by the parser.
type function struct {
	name    string
	minArgs int
	maxArgs int
	f1      func(float64) float64
	f2      func(a, b float64) float64
}

func (f *function) apply(args []float64) float64 {
	if len(args) == 2 {
		return f.f2(args[0], args[1])
	}
	return f.f1(args[0])
}

var functions = map[string]*function{}

// aliases map accepted spellings to canonical function names.
var aliases = map[string]string{
	"ln":      "log",
	"Abs":     "abs",
	"ceil":    "ceiling",
	"arcsin":  "asin",
	"arccos":  "acos",
	"arctan":  "atan",
	"arctan2": "atan2",
}

func init() {
	one := func(name string, f func(float64) float64) {
		functions[name] = &function{name: name, minArgs: 1, maxArgs: 1, f1: f}
	}
	one("sin", math.Sin)
	one("cos", math.Cos)
	one("tan", math.Tan)
	one("asin", math.Asin)
	one("acos", math.Acos)
	one("atan", math.Atan)
	one("sinh", math.Sinh)
	one("cosh", math.Cosh)
	one("tanh", math.Tanh)
	one("exp", math.Exp)
	one("log10", math.Log10)
	one("sqrt", math.Sqrt)
	one("abs", math.Abs)
	one("floor", math.Floor)
	one("ceiling", math.Ceil)
	one("sign", sign)

	functions["log"] = &function{
		name: "log", minArgs: 1, maxArgs: 2, f1: math.Log,
		f2: func(a, base float64) float64 { return math.Log(a) / math.Log(base) },
	}
	functions["atan2"] = &function{name: "atan2", minArgs: 2, maxArgs: 2, f2: math.Atan2}
}

func lookupFunction(name string) (*function, bool) {
	if canon, ok := aliases[name]; ok {
		name = canon
	}
	f, ok := functions[name]
	return f, ok
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	case v == 0:
		return 0
	}
	return math.NaN()
}

var constants = map[string]float64{
	"pi": math.Pi,
	"E":  math.E,
}

var variables = map[string]bool{
	"x":     true,
	"y":     true,
	"r":     true,
	"theta": true,
}
