package expr

import "strings"

var latexFuncs = map[string]string{
	"sin":   `\sin`,
	"cos":   `\cos`,
	"tan":   `\tan`,
	"asin":  `\arcsin`,
	"acos":  `\arccos`,
	"atan":  `\arctan`,
	"sinh":  `\sinh`,
	"cosh":  `\cosh`,
	"tanh":  `\tanh`,
	"log":   `\ln`,
	"log10": `\log_{10}`,
	"sign":  `\operatorname{sign}`,
	"atan2": `\operatorname{atan2}`,
}

func latex(n node) string {
	var sb strings.Builder
	writeLaTeX(&sb, n)
	return sb.String()
}

func writeLaTeX(sb *strings.Builder, n node) {
	switch n := n.(type) {
	case num:
		if n.v < 0 {
			sb.WriteString(`\left(` + formatNum(n.v) + `\right)`)
			return
		}
		sb.WriteString(formatNum(n.v))
	case constant:
		if n.name == "pi" {
			sb.WriteString(`\pi`)
		} else {
			sb.WriteString("e")
		}
	case variable:
		if n.name == "theta" {
			sb.WriteString(`\theta`)
		} else {
			sb.WriteString(n.name)
		}
	case neg:
		sb.WriteByte('-')
		latexOperand(sb, n.x, n.x.prec() < precUnary)
	case binary:
		writeLaTeXBinary(sb, n)
	case call:
		writeLaTeXCall(sb, n)
	}
}

func writeLaTeXBinary(sb *strings.Builder, b binary) {
	p := b.prec()
	switch b.op {
	case '/':
		sb.WriteString(`\frac{`)
		writeLaTeX(sb, b.l)
		sb.WriteString("}{")
		writeLaTeX(sb, b.r)
		sb.WriteString("}")
	case '^':
		latexOperand(sb, b.l, b.l.prec() <= precPow)
		sb.WriteString("^{")
		writeLaTeX(sb, b.r)
		sb.WriteString("}")
	case '*':
		latexOperand(sb, b.l, b.l.prec() < p)
		sb.WriteString(` \cdot `)
		latexOperand(sb, b.r, b.r.prec() < p)
	default:
		latexOperand(sb, b.l, false)
		sb.WriteString(" " + string(b.op) + " ")
		latexOperand(sb, b.r, b.op == '-' && b.r.prec() == precSum)
	}
}

func writeLaTeXCall(sb *strings.Builder, c call) {
	arg := func(i int) { writeLaTeX(sb, c.args[i]) }
	switch c.fn.name {
	case "sqrt":
		sb.WriteString(`\sqrt{`)
		arg(0)
		sb.WriteString("}")
	case "abs":
		sb.WriteString(`\left|`)
		arg(0)
		sb.WriteString(`\right|`)
	case "exp":
		sb.WriteString("e^{")
		arg(0)
		sb.WriteString("}")
	case "floor":
		sb.WriteString(`\left\lfloor `)
		arg(0)
		sb.WriteString(` \right\rfloor`)
	case "ceiling":
		sb.WriteString(`\left\lceil `)
		arg(0)
		sb.WriteString(` \right\rceil`)
	case "log":
		if len(c.args) == 2 {
			sb.WriteString(`\log_{`)
			arg(1)
			sb.WriteString(`}\left(`)
			arg(0)
			sb.WriteString(`\right)`)
			return
		}
		fallthrough
	default:
		sb.WriteString(latexFuncs[c.fn.name])
		sb.WriteString(`\left(`)
		for i := range c.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			arg(i)
		}
		sb.WriteString(`\right)`)
	}
}

func latexOperand(sb *strings.Builder, n node, paren bool) {
	if paren {
		sb.WriteString(`\left(`)
	}
	writeLaTeX(sb, n)
	if paren {
		sb.WriteString(`\right)`)
	}
}
