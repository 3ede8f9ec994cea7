package uncert

import (
	"math"
	"testing"
)

const tol = 1e-12

func close(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestAddSubQuadrature(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		sum  Value
		diff Value
	}{
		{"both uncertain", New(10, 3), New(-4, 4), Value{6, 5}, Value{14, 5}},
		{"one exact", New(2, 0.5), Exact(7), Value{9, 0.5}, Value{-5, 0.5}},
		{"negative deviation normalized", New(1, -2), New(1, 0), Value{2, 2}, Value{0, 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Add(c.a, c.b); !close(got.N, c.sum.N) || !close(got.S, c.sum.S) {
				t.Errorf("Add = %+v, want %+v", got, c.sum)
			}
			if got := Sub(c.a, c.b); !close(got.N, c.diff.N) || !close(got.S, c.diff.S) {
				t.Errorf("Sub = %+v, want %+v", got, c.diff)
			}
		})
	}
}

func TestMulDiv(t *testing.T) {
	a, b := New(3, 0.3), New(2, 0.4)

	m := Mul(a, b)
	if !close(m.N, 6) {
		t.Fatalf("Mul nominal = %g, want 6", m.N)
	}
	// s = hypot(2*0.3, 3*0.4)
	if want := math.Hypot(0.6, 1.2); !close(m.S, want) {
		t.Fatalf("Mul deviation = %g, want %g", m.S, want)
	}

	d := Div(a, b)
	if !close(d.N, 1.5) {
		t.Fatalf("Div nominal = %g, want 1.5", d.N)
	}
	// s = hypot(0.3/2, 3*0.4/4)
	if want := math.Hypot(0.15, 0.3); !close(d.S, want) {
		t.Fatalf("Div deviation = %g, want %g", d.S, want)
	}
}

func TestDivZeroNominalNumerator(t *testing.T) {
	// a relative-error formulation would blow up here; the absolute form must not
	d := Div(New(0, 1), New(2, 0))
	if !close(d.N, 0) || !close(d.S, 0.5) {
		t.Fatalf("Div = %+v, want {0 0.5}", d)
	}
}

func TestScaleAbsShift(t *testing.T) {
	v := New(-5, 2)
	if got := v.Scale(-3); !close(got.N, 15) || !close(got.S, 6) {
		t.Errorf("Scale(-3) = %+v", got)
	}
	if got := v.Abs(); !close(got.N, 5) || !close(got.S, 2) {
		t.Errorf("Abs = %+v", got)
	}
	if got := v.AddScalar(5); !close(got.N, 0) || !close(got.S, 2) {
		t.Errorf("AddScalar = %+v", got)
	}
	if !close(v.Lo(), -7) || !close(v.Hi(), -3) {
		t.Errorf("bounds = [%g, %g]", v.Lo(), v.Hi())
	}
}

func TestNaNSentinelPropagates(t *testing.T) {
	n := NaN()
	if !n.IsNaN() {
		t.Fatal("NaN() not detected by IsNaN")
	}
	for name, got := range map[string]Value{
		"Add":       Add(n, New(1, 1)),
		"Sub":       Sub(New(1, 1), n),
		"Mul":       Mul(n, Exact(2)),
		"Div":       Div(New(1, 1), n),
		"Scale":     n.Scale(2),
		"Abs":       n.Abs(),
		"AddScalar": n.AddScalar(1),
	} {
		if !got.IsNaN() {
			t.Errorf("%s did not propagate the sentinel: %+v", name, got)
		}
	}
	if Exact(1).IsNaN() {
		t.Error("finite value reported as sentinel")
	}
}
