// core/uncert/uncert.go
// Scalar values carrying a symmetric 1σ uncertainty, with first-order
// propagation under the usual independence assumption:
//
//	a±b:  s = √(sa² + sb²)
//	a·b:  s = √((bn·sa)² + (an·sb)²)
//	a/b:  s = √((sa/bn)² + (an·sb/bn²)²)
//
// A Value whose nominal or deviation is NaN is the "no solution" sentinel;
// every operation propagates it.
//
// This package has no app/output deps; flux and sweep import it cleanly.
package uncert

import "math"

// Value is a nominal quantity N with symmetric deviation S (always >= 0,
// or NaN for the sentinel).
type Value struct {
	N float64
	S float64
}

// New builds a Value, normalizing the deviation sign.
func New(n, s float64) Value { return Value{N: n, S: math.Abs(s)} }

// Exact wraps a float64 with zero uncertainty.
func Exact(n float64) Value { return Value{N: n} }

// NaN returns the no-solution sentinel.
func NaN() Value { return Value{N: math.NaN(), S: math.NaN()} }

// IsNaN reports whether v is (or contains) the sentinel.
func (v Value) IsNaN() bool { return math.IsNaN(v.N) || math.IsNaN(v.S) }

// Lo returns the lower bound N-S.
func (v Value) Lo() float64 { return v.N - v.S }

// Hi returns the upper bound N+S.
func (v Value) Hi() float64 { return v.N + v.S }

// Abs returns |N| keeping the deviation.
func (v Value) Abs() Value { return Value{N: math.Abs(v.N), S: v.S} }

// AddScalar shifts the nominal by an exact quantity.
func (v Value) AddScalar(k float64) Value { return Value{N: v.N + k, S: v.S} }

// Scale multiplies by an exact quantity.
func (v Value) Scale(k float64) Value { return Value{N: k * v.N, S: math.Abs(k) * v.S} }

// Add returns a+b with deviations combined in quadrature.
func Add(a, b Value) Value {
	return Value{N: a.N + b.N, S: math.Hypot(a.S, b.S)}
}

// Sub returns a-b with deviations combined in quadrature.
func Sub(a, b Value) Value {
	return Value{N: a.N - b.N, S: math.Hypot(a.S, b.S)}
}

// Mul returns a·b.
func Mul(a, b Value) Value {
	return Value{N: a.N * b.N, S: math.Hypot(b.N*a.S, a.N*b.S)}
}

// Div returns a/b. Division by an exact zero yields ±Inf nominals, as with
// plain float64 arithmetic.
func Div(a, b Value) Value {
	return Value{N: a.N / b.N, S: math.Hypot(a.S/b.N, a.N*b.S/(b.N*b.N))}
}
