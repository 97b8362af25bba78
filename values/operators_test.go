package values

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticPromotion(t *testing.T) {
	cases := []struct {
		Name     string
		A, B     Value
		Expected Value
		OK       bool
	}{
		{"int+int stays int", Int(2), Int(3), Int(5), true},
		{"int+float promotes", Int(2), Float(0.5), Float(2.5), true},
		{"float+float", Float(1.5), Float(1.5), Float(3), true},
		{"string+string concatenates", String("foo"), String("bar"), String("foobar"), true},
		{"char+char concatenates to string", Char('a'), Char('b'), String("ab"), true},
		{"string+char concatenates", String("foo"), Char('!'), String("foo!"), true},
		{"bool+bool undefined", Bool(true), Bool(false), Null(), false},
		{"string+int concatenates via display form", String("ab"), Int(1), String("ab1"), true},
		{"string+bool concatenates via display form", String("ab1"), Bool(true), String("ab1true"), true},
		{"bool joins int side", Bool(true), Int(2), Int(3), true},
		{"bool joins float side", Bool(false), Float(1.5), Float(1.5), true},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			v, ok := Add(c.A, c.B)
			assert.Equal(t, c.OK, ok)
			assert.Equal(t, c.Expected, v)
		})
	}
}

func TestArithmeticNumericOnly(t *testing.T) {
	v, ok := Multiply(Int(2), Int(3))
	assert.True(t, ok)
	assert.Equal(t, Int(6), v)

	v, ok = Multiply(String("x"), Int(2))
	assert.False(t, ok)
	assert.Equal(t, Null(), v)

	v, ok = Modulo(Int(7), Int(3))
	assert.True(t, ok)
	assert.Equal(t, Int(1), v)
}

func TestDivideByZero(t *testing.T) {
	v, err := Divide(Int(1), Int(0))
	assert.Equal(t, Null(), v)
	assert.ErrorIs(t, err, ErrDivideByZero)

	v, err = Divide(Float(1), Float(0))
	assert.NoError(t, err)
	assert.True(t, math.IsInf(v.Float, 1))

	// a zero divisor inside a Collection broadcast is a per-element Null,
	// not a propagated error
	coll := Collection([]Value{Int(10), Int(0)})
	v, err = Divide(coll, Int(0))
	assert.NoError(t, err)
	assert.Equal(t, Collection([]Value{Null(), Null()}), v)
}

func TestCompareOrdering(t *testing.T) {
	v, ok := CompareGte(Int(3), Int(3))
	assert.True(t, ok)
	assert.Equal(t, Bool(true), v)

	v, ok = CompareGt(Float(1), Float(2))
	assert.True(t, ok)
	assert.Equal(t, Bool(false), v)

	// Bool participates in ordering by coercing the numeric side via "≠ 0"
	v, ok = CompareGt(Bool(true), Bool(true))
	assert.True(t, ok)
	assert.Equal(t, Bool(false), v)

	v, ok = CompareGte(Bool(true), Int(0))
	assert.True(t, ok)
	assert.Equal(t, Bool(true), v)

	// the numeric side collapses to a bool, so true never orders below 5
	v, ok = CompareGte(Bool(true), Int(5))
	assert.True(t, ok)
	assert.Equal(t, Bool(true), v)

	v, ok = CompareGt(Int(5), Bool(false))
	assert.True(t, ok)
	assert.Equal(t, Bool(true), v)

	// String/Char ordering is undefined
	v, ok = CompareGt(String("a"), String("b"))
	assert.False(t, ok)
	assert.Equal(t, Null(), v)
}

func TestCompareEqBroad(t *testing.T) {
	assert.Equal(t, Bool(true), CompareEq(Null(), Null()))
	assert.Equal(t, Bool(true), CompareEq(String("a"), String("a")))
	assert.Equal(t, Bool(true), CompareEq(Bool(true), Bool(true)))
	// String == Int compares against the Int's textual form
	assert.Equal(t, Bool(true), CompareEq(Int(1), String("1")))
	assert.Equal(t, Bool(false), CompareEq(Int(2), String("1")))
	// Bool vs numeric coerces the numeric side to Bool via "≠ 0" — the
	// Bool never widens to 0/1, so any non-zero number equals true
	assert.Equal(t, Bool(true), CompareEq(Bool(true), Int(1)))
	assert.Equal(t, Bool(false), CompareEq(Bool(true), Int(0)))
	assert.Equal(t, Bool(true), CompareEq(Bool(true), Int(5)))
	assert.Equal(t, Bool(true), CompareEq(Float(2.5), Bool(true)))
	assert.Equal(t, Bool(false), CompareEq(Bool(false), Int(5)))
}

func TestCompareNegationInvariants(t *testing.T) {
	pairs := [][2]Value{{Int(1), Int(2)}, {Int(2), Int(1)}, {Float(3), Int(3)}, {Bool(true), Int(0)}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		assert.Equal(t, !CompareEq(a, b).Bool, CompareNeq(a, b).Bool)

		gte, ok := CompareGte(a, b)
		require.True(t, ok)
		lt, ok := CompareLt(a, b)
		require.True(t, ok)
		assert.Equal(t, !gte.Bool, lt.Bool)

		gt, ok := CompareGt(a, b)
		require.True(t, ok)
		lte, ok := CompareLte(a, b)
		require.True(t, ok)
		assert.Equal(t, !gt.Bool, lte.Bool)
	}
}

func TestCollectionBroadcastScalar(t *testing.T) {
	coll := Collection([]Value{Int(1), Int(2), Int(3)})
	got, ok := Add(coll, Int(10))
	assert.True(t, ok)
	assert.Equal(t, Collection([]Value{Int(11), Int(12), Int(13)}), got)

	// undefined per-element pairing substitutes Null, not an error
	mixed := Collection([]Value{Int(1), String("x")})
	got2, ok2 := Multiply(mixed, Int(2))
	assert.True(t, ok2)
	assert.Equal(t, Collection([]Value{Int(2), Null()}), got2)
}

func TestCollectionZipLengthMismatch(t *testing.T) {
	a := Collection([]Value{Int(1), Int(2)})
	b := Collection([]Value{Int(1)})
	v, ok := Add(a, b)
	assert.True(t, ok)
	assert.Equal(t, Null(), v)
	// equality is the documented exception: false, not Null
	assert.Equal(t, Bool(false), CompareEq(a, b))
}

func TestCollectionEqElementwise(t *testing.T) {
	a := Collection([]Value{Int(1), Int(2)})
	b := Collection([]Value{Int(1), Int(2)})
	c := Collection([]Value{Int(1), Int(3)})
	assert.Equal(t, Bool(true), CompareEq(a, b))
	assert.Equal(t, Bool(false), CompareEq(a, c))
}

func TestLogicalCoercionAndBroadcast(t *testing.T) {
	assert.Equal(t, Bool(true), And(Int(1), Bool(true)))
	assert.Equal(t, Bool(false), And(Int(0), Bool(true)))
	assert.Equal(t, Bool(true), Or(Null(), String("x")))

	coll := Collection([]Value{Int(0), Int(1), Int(2)})
	got := And(coll, Bool(true))
	assert.Equal(t, Collection([]Value{Bool(false), Bool(true), Bool(true)}), got)
}

func TestTruthy(t *testing.T) {
	assert.False(t, Null().Truthy())
	assert.False(t, Int(0).Truthy())
	assert.True(t, Int(1).Truthy())
	assert.False(t, String("").Truthy())
	assert.True(t, String("x").Truthy())
	assert.False(t, Collection(nil).Truthy())
}

func TestDisplayFormat(t *testing.T) {
	assert.Equal(t, "3", Int(3).String())
	assert.Equal(t, "3.0", Float(3).String())
	assert.Equal(t, "1.5", Float(1.5).String())
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "[1, 2, 3]", Collection([]Value{Int(1), Int(2), Int(3)}).String())
}

// TestDisplayQuoting covers the print-facing Display rule, which wraps
// String in double quotes and Char in single quotes — distinct from
// String(), which a `+` concatenation or dotted-accessor name build needs
// unquoted (see Add and the Accessor resolution in eval/operation_runner.go).
func TestDisplayQuoting(t *testing.T) {
	assert.Equal(t, `"hi"`, String("hi").Display())
	assert.Equal(t, `'x'`, Char('x').Display())
	assert.Equal(t, "3", Int(3).Display())
	assert.Equal(t, `[1,"a",'b']`, Collection([]Value{Int(1), String("a"), Char('b')}).Display())
}

func TestApplyDispatch(t *testing.T) {
	v, err := Apply("+", Int(2), Int(3))
	assert.NoError(t, err)
	assert.Equal(t, Int(5), v)

	v, err = Apply("==", Int(1), Int(1))
	assert.NoError(t, err)
	assert.Equal(t, Bool(true), v)

	v, err = Apply("?", Int(1), Int(1))
	assert.ErrorContains(t, err, "Cannot apply operation '?' to '1' and '1'.")
	assert.Equal(t, Null(), v)

	_, err = Apply("/", Int(1), Int(0))
	assert.ErrorContains(t, err, "Cannot apply operation '/' to '1' and '0'.")

	v, err = Apply(">", String("a"), String("b"))
	assert.ErrorContains(t, err, "Cannot apply operation '>' to 'a' and 'b'.")
	assert.Equal(t, Null(), v)
}
