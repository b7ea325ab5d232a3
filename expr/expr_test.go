package expr

import (
	"errors"
	"math"
	"testing"
)

func TestParseEvaluate(t *testing.T) {
	tests := []struct {
		src  string
		x, y float64
		want float64
	}{
		{"x*y", 2, 3, 6},
		{"x**2 - y**2", 3, 1, 8},
		{"x^2 - y^2", 3, 1, 8},
		{"-x**2", 3, 0, -9},
		{"(-x)**2", 3, 0, 9},
		{"2**3**2", 0, 0, 512},
		{"2**-1", 0, 0, 0.5},
		{"1 - 2 - 3", 0, 0, -4},
		{"8 / 4 / 2", 0, 0, 1},
		{"+x", 5, 0, 5},
		{"--x", 5, 0, 5},
		{"sin(x)*cos(y)", math.Pi / 2, 0, 1},
		{"log(sqrt(x**2 + y**2))", 3, 4, math.Log(5)},
		{"ln(E)", 0, 0, 1},
		{"log(8, 2)", 0, 0, 3},
		{"atan2(y, x)", -1, 0, math.Pi},
		{"r", 3, 4, 5},
		{"r*sin(theta)", 3, 4, 4},
		{"2*pi", 0, 0, 2 * math.Pi},
		{"1.5e2 + .5", 0, 0, 150.5},
		{"Abs(x) + ceil(y)", -2, 0.2, 3},
		{"sign(x)", -7, 0, -1},
		{"sqrt(x**2 + y**2)*y/sqrt(x**2 + y**2)", 1, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.src, err)
			}
			if got := e.Eval(tt.x, tt.y); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Eval(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
			out, err := e.Func()([]float64{tt.x}, []float64{tt.y})
			if err != nil {
				t.Fatalf("Func error: %v", err)
			}
			if math.Abs(out[0]-tt.want) > 1e-12 {
				t.Errorf("Func()(%v, %v) = %v, want %v", tt.x, tt.y, out[0], tt.want)
			}
		})
	}
}

func TestParseFailure(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"x +* y", ErrSyntax},
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"x y", ErrSyntax},
		{"((x)", ErrSyntax},
		{"x)", ErrSyntax},
		{"x +", ErrSyntax},
		{"x $ y", ErrSyntax},
		{"2x", ErrSyntax},
		{"z", ErrUnknownIdentifier},
		{"X*y", ErrUnknownIdentifier},
		{"foo(x)", ErrUnknownIdentifier},
		{"sin", ErrArity},
		{"sin()", ErrArity},
		{"sin(x, y)", ErrArity},
		{"atan2(x)", ErrArity},
		{"x(y)", ErrArity},
		{"ψ", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.src, e)
			}
			if e != nil {
				t.Errorf("Parse(%q) returned non-nil Expr on failure", tt.src)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.src, err, tt.want)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("Parse(%q) error %T is not *SyntaxError", tt.src, err)
			}
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("x +* y")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SyntaxError", err)
	}
	if se.Pos != 3 {
		t.Errorf("Pos = %d, want 3", se.Pos)
	}
}

func TestFuncVectorized(t *testing.T) {
	e := MustParse("x*y + 1")
	x := []float64{0, 1, 2, 3}
	y := []float64{4, 5, 6, 7}
	got, err := e.Func()(x, y)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 6, 13, 22}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if x[1] != 1 || y[1] != 5 {
		t.Error("inputs were modified")
	}
}

func TestFuncDoesNotAliasInput(t *testing.T) {
	x := []float64{1, 2}
	out, err := MustParse("x").Func()(x, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	out[0] = 99
	if x[0] != 1 {
		t.Error("result aliases the x slice")
	}
}

func TestFuncConstant(t *testing.T) {
	out, err := MustParse("2*pi").Func()(make([]float64, 3), make([]float64, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i, v := range out {
		if v != 2*math.Pi {
			t.Errorf("out[%d] = %v, want 2π", i, v)
		}
	}
}

func TestFuncLengthMismatch(t *testing.T) {
	_, err := MustParse("x+y").Func()([]float64{1, 2}, []float64{1})
	if !errors.Is(err, ErrLength) {
		t.Errorf("error = %v, want ErrLength", err)
	}
}

func TestFuncNonFinitePropagates(t *testing.T) {
	out, err := MustParse("log(x)").Func()([]float64{0, -1}, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(out[0], -1) {
		t.Errorf("log(0) = %v, want -Inf", out[0])
	}
	if !math.IsNaN(out[1]) {
		t.Errorf("log(-1) = %v, want NaN", out[1])
	}
}

func TestString(t *testing.T) {
	tests := []struct{ src, want string }{
		{"x*y", "x*y"},
		{"x**2 - y**2", "x**2 - y**2"},
		{"x^2", "x**2"},
		{"(x + y)*2", "(x + y)*2"},
		{"x - (y - 1)", "x - (y - 1)"},
		{"x / (y * 2)", "x/(y*2)"},
		{"-(x + y)", "-(x + y)"},
		{"(-x)**2", "(-x)**2"},
		{"sin(x)*cos(y)", "sin(x)*cos(y)"},
		{"ln(x)", "log(x)"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.src).String(); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestVars(t *testing.T) {
	got := MustParse("x*r + sin(theta)").Vars()
	want := []string{"r", "theta", "x"}
	if len(got) != len(want) {
		t.Fatalf("Vars() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vars()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
