// Package expr parses user-typed stream-function expressions into an
// expression tree and compiles them into vectorized kernels.
//
// # Grammar
//
// Expressions use conventional infix notation with Python-style operator
// precedence:
//
//	expr    := term (("+" | "-") term)*
//	term    := unary (("*" | "/") unary)*
//	unary   := ("+" | "-") unary | power
//	power   := primary (("**" | "^") unary)?
//	primary := NUMBER | NAME | NAME "(" expr ("," expr)* ")" | "(" expr ")"
//
// The power operator is right associative and binds tighter than a leading
// minus, so -x**2 is -(x**2).
//
// # Names
//
// The free variables are x and y (case-sensitive). Two derived names are
// also accepted: r, the distance from the origin, and theta, the polar
// angle atan2(y, x). Constants are pi and E. Any other identifier is
// rejected at parse time.
//
// # Evaluation
//
// [Expr.Func] returns a [Func] that evaluates the expression element-wise
// over whole coordinate slices. Evaluation never checks that the result is
// finite; NaN and Inf propagate to the caller.
//
// # Example
//
//	e, err := expr.Parse("x**2 - y**2")
//	if err != nil {
//	    return err // errors.Is(err, expr.ErrSyntax) etc.
//	}
//	psi, err := e.Func()(xs, ys)
package expr
