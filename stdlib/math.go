/*
File    : drython/stdlib/math.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package stdlib

import (
	"fmt"
	"math"

	"github.com/dryscript/drython/eval"
	"github.com/dryscript/drython/values"
)

// Math is the `math` bundle: abs/min/max/floor/ceil/sqrt/pow plus the
// constant pi.
func Math() eval.Library {
	return eval.Library{
		Functions: map[string]eval.ExternalFunc{
			"abs":   mathAbs,
			"min":   mathMin,
			"max":   mathMax,
			"floor": mathFloor,
			"ceil":  mathCeil,
			"sqrt":  mathSqrt,
			"pow":   mathPow,
		},
		Variables: map[string]values.Value{
			"pi": values.Float(math.Pi),
		},
	}
}

// toFloat reads a numeric Value as a float64, the common coercion every
// math builtin below needs before calling into the standard math package.
func toFloat(v values.Value) (float64, error) {
	switch v.Kind {
	case values.KindInt:
		return float64(v.Int), nil
	case values.KindFloat:
		return v.Float, nil
	default:
		return 0, fmt.Errorf("expected a numeric value, got %s", v.Kind)
	}
}

func requireOne(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return values.Null(), fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	return args[0], nil
}

func mathAbs(args []values.Value) (*values.Value, error) {
	v, err := requireOne(args)
	if err != nil {
		return nil, err
	}
	if v.Kind == values.KindInt {
		n := v.Int
		if n < 0 {
			n = -n
		}
		r := values.Int(n)
		return &r, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	r := values.Float(math.Abs(f))
	return &r, nil
}

// mathMin and mathMax fold over any number of numeric arguments,
// returning whichever input Value held the extreme, unconverted — an Int
// argument list stays Int, per the broadcast/undefined-pairing rules
// values.Apply's callers rely on elsewhere.
func mathMin(args []values.Value) (*values.Value, error) {
	return extremum(args, func(a, b float64) bool { return a < b })
}

func mathMax(args []values.Value) (*values.Value, error) {
	return extremum(args, func(a, b float64) bool { return a > b })
}

func extremum(args []values.Value, better func(a, b float64) bool) (*values.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least 1 argument, got 0")
	}
	best := args[0]
	bestF, err := toFloat(best)
	if err != nil {
		return nil, err
	}
	for _, v := range args[1:] {
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		if better(f, bestF) {
			best, bestF = v, f
		}
	}
	return &best, nil
}

func mathFloor(args []values.Value) (*values.Value, error) {
	v, err := requireOne(args)
	if err != nil {
		return nil, err
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	r := values.Int(int64(math.Floor(f)))
	return &r, nil
}

func mathCeil(args []values.Value) (*values.Value, error) {
	v, err := requireOne(args)
	if err != nil {
		return nil, err
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	r := values.Int(int64(math.Ceil(f)))
	return &r, nil
}

func mathSqrt(args []values.Value) (*values.Value, error) {
	v, err := requireOne(args)
	if err != nil {
		return nil, err
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	r := values.Float(math.Sqrt(f))
	return &r, nil
}

func mathPow(args []values.Value) (*values.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	base, err := toFloat(args[0])
	if err != nil {
		return nil, err
	}
	exp, err := toFloat(args[1])
	if err != nil {
		return nil, err
	}
	result := math.Pow(base, exp)
	if args[0].Kind == values.KindInt && args[1].Kind == values.KindInt && exp >= 0 {
		r := values.Int(int64(result))
		return &r, nil
	}
	r := values.Float(result)
	return &r, nil
}
