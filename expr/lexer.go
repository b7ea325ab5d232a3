package expr

import (
	"strconv"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokName
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow // ** or ^
	tokLParen
	tokRParen
	tokComma
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokName:
		return "name"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokPow:
		return "'**'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	pos  int
	text string
	num  float64
}

// tokenize splits src into tokens. The returned slice always ends with
// a tokEOF token.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			start := i
			i = scanNumber(src, i)
			v, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Msg: "malformed number " + strconv.Quote(src[start:i]), Err: ErrSyntax}
			}
			toks = append(toks, token{kind: tokNumber, pos: start, text: src[start:i], num: v})
		case isNameStart(c):
			start := i
			for i < len(src) && isNamePart(src[i]) {
				i++
			}
			toks = append(toks, token{kind: tokName, pos: start, text: src[start:i]})
		default:
			kind, width := operator(src[i:])
			if width == 0 {
				r, _ := utf8.DecodeRuneInString(src[i:])
				return nil, &SyntaxError{Pos: i, Msg: "unexpected character " + strconv.QuoteRune(r), Err: ErrSyntax}
			}
			toks = append(toks, token{kind: kind, pos: i, text: src[i : i+width]})
			i += width
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

func operator(s string) (tokenKind, int) {
	switch s[0] {
	case '+':
		return tokPlus, 1
	case '-':
		return tokMinus, 1
	case '*':
		if len(s) > 1 && s[1] == '*' {
			return tokPow, 2
		}
		return tokStar, 1
	case '/':
		return tokSlash, 1
	case '^':
		return tokPow, 1
	case '(':
		return tokLParen, 1
	case ')':
		return tokRParen, 1
	case ',':
		return tokComma, 1
	}
	return tokEOF, 0
}

// scanNumber returns the end offset of the number literal starting at i.
func scanNumber(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool     { return '0' <= c && c <= '9' }
func isNameStart(c byte) bool { return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }
func isNamePart(c byte) bool  { return isNameStart(c) || isDigit(c) }
