/*
File    : drython/eval/runner_test.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dryscript/drython/errs"
	"github.com/dryscript/drython/parser"
	"github.com/dryscript/drython/values"
)

// newRunner parses src and runs setup against it with no libraries, the
// shape every test below shares before asserting on globals or calls.
func newRunner(t *testing.T, src string) (*Runner, *errs.Manager) {
	t.Helper()
	em := errs.NewManager()
	p := parser.Parse(src, em)
	require.False(t, em.HasErrors(), "parse errors: %v", em.Errors())
	r := NewRunner(em)
	err := r.RunSetup(p, nil)
	require.NoError(t, err)
	require.False(t, em.HasErrors(), "runtime errors: %v", em.Errors())
	return r, em
}

// TestGlobalArithmeticReadBack runs a global assignment with
// mixed-precedence arithmetic and reads the result back into a host
// variable via UpdateVariable.
func TestGlobalArithmeticReadBack(t *testing.T) {
	r, _ := newRunner(t, "x = 1 + 2 * 3;")
	var out values.Value
	require.True(t, r.UpdateVariable("x", &out))
	assert.Equal(t, values.Int(7), out)

	assert.False(t, r.UpdateVariable("missing", &out))
}

// TestFunctionArithmeticPromotion calls a two-parameter function whose
// return kind promotes to Float only when an argument is Float.
func TestFunctionArithmeticPromotion(t *testing.T) {
	src := `f(a,b):
return a + b
end`
	r, _ := newRunner(t, src)

	result, err := r.CallFunction("f", []values.Value{values.Int(2), values.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, values.Int(5), result)

	result, err = r.CallFunction("f", []values.Value{values.Float(1.5), values.Int(2)})
	require.NoError(t, err)
	assert.Equal(t, values.Float(3.5), result)
}

// TestLoopWithBreak accumulates a sum in a loop until a break fires on an
// if-guarded condition.
func TestLoopWithBreak(t *testing.T) {
	src := `g(n):
s=0
i=0
loop:
if i>=n:
break
end
s=s+i
i=i+1
end
return s
end`
	r, _ := newRunner(t, src)
	result, err := r.CallFunction("g", []values.Value{values.Int(5)})
	require.NoError(t, err)
	assert.Equal(t, values.Int(10), result)
}

// TestIfElifElseChain selects between three string results by sign.
func TestIfElifElseChain(t *testing.T) {
	src := `h(x):
if x>0:
return "pos"
elif x==0:
return "zero"
else:
return "neg"
end
end`
	r, _ := newRunner(t, src)

	cases := []struct {
		arg      int64
		expected string
	}{
		{1, "pos"},
		{0, "zero"},
		{-1, "neg"},
	}
	for _, c := range cases {
		result, err := r.CallFunction("h", []values.Value{values.Int(c.arg)})
		require.NoError(t, err)
		assert.Equal(t, values.String(c.expected), result)
	}
}

// TestCollectionBroadcast multiplies a collection by a scalar, which
// broadcasts elementwise.
func TestCollectionBroadcast(t *testing.T) {
	r, _ := newRunner(t, "v = [1,2,3]; w = v * 2;")
	w, ok := r.GlobalValue("w")
	require.True(t, ok)
	assert.Equal(t, values.Collection([]values.Value{values.Int(2), values.Int(4), values.Int(6)}), w)
}

// TestStringConcatenationChain chains String + Int + Bool concatenation
// via each operand's textual form.
func TestStringConcatenationChain(t *testing.T) {
	r, _ := newRunner(t, `s = "ab" + 1 + true;`)
	s, ok := r.GlobalValue("s")
	require.True(t, ok)
	assert.Equal(t, values.String("ab1true"), s)
}

// TestContinueSkipsIteration: continue skips the rest of the loop body but
// the loop itself keeps running.
func TestContinueSkipsIteration(t *testing.T) {
	src := `evens(n):
s=0
i=0
loop i<n:
i=i+1
if i%2==1:
continue
end
s=s+i
end
return s
end`
	r, _ := newRunner(t, src)
	result, err := r.CallFunction("evens", []values.Value{values.Int(5)})
	require.NoError(t, err)
	assert.Equal(t, values.Int(6), result) // 2 + 4
}

// TestStatementAfterIfChain verifies statements following an if/elif/else
// chain still execute against the right slots — the chain occupies several
// Internal entries but is dispatched as one unit.
func TestStatementAfterIfChain(t *testing.T) {
	src := `f(x):
r=0
if x>0:
r=1
elif x<0:
r=2
else:
r=3
end
r=r+10
return r
end`
	r, _ := newRunner(t, src)

	cases := []struct {
		arg      int64
		expected int64
	}{
		{5, 11},
		{-5, 12},
		{0, 13},
	}
	for _, c := range cases {
		result, err := r.CallFunction("f", []values.Value{values.Int(c.arg)})
		require.NoError(t, err)
		assert.Equal(t, values.Int(c.expected), result)
	}
}

// TestConditionRequiresBoolTrue: a branch runs only when its condition
// produces the literal Bool(true) — a non-zero Int result falls through to
// the else, with no truthiness coercion.
func TestConditionRequiresBoolTrue(t *testing.T) {
	src := `pick():
if 5:
return "taken"
else:
return "skipped"
end
end`
	r, _ := newRunner(t, src)
	result, err := r.CallFunction("pick", nil)
	require.NoError(t, err)
	assert.Equal(t, values.String("skipped"), result)
}

// TestRunSetupResolvesIncludes: a `use` line pulls a library's functions
// and variables into the Runner before the top-level assignments evaluate.
func TestRunSetupResolvesIncludes(t *testing.T) {
	em := errs.NewManager()
	p := parser.Parse("use fixture\nx = seed + 1;", em)
	require.False(t, em.HasErrors())

	r := NewRunner(em)
	libs := map[string]Library{
		"fixture": {
			Variables: map[string]values.Value{"seed": values.Int(41)},
		},
	}
	require.NoError(t, r.RunSetup(p, libs))

	x, ok := r.GlobalValue("x")
	require.True(t, ok)
	assert.Equal(t, values.Int(42), x)
}

// TestRunSetupRegistersAutoBundle: a bundle named "auto" registers without
// any `use` line in the script.
func TestRunSetupRegistersAutoBundle(t *testing.T) {
	em := errs.NewManager()
	p := parser.Parse("x = base + 1;", em)
	require.False(t, em.HasErrors())

	r := NewRunner(em)
	libs := map[string]Library{
		"auto": {Variables: map[string]values.Value{"base": values.Int(9)}},
	}
	require.NoError(t, r.RunSetup(p, libs))

	x, ok := r.GlobalValue("x")
	require.True(t, ok)
	assert.Equal(t, values.Int(10), x)
}

// TestUnknownLibraryIsRuntimeError: failed library resolution is a runtime
// error queued with the include line.
func TestUnknownLibraryIsRuntimeError(t *testing.T) {
	em := errs.NewManager()
	p := parser.Parse("use nosuchlib", em)
	require.False(t, em.HasErrors())

	r := NewRunner(em)
	err := r.RunSetup(p, nil)
	require.Error(t, err)
	e, ok := em.First()
	require.True(t, ok)
	assert.Equal(t, errs.RuntimeKind, e.Kind)
	assert.Equal(t, 1, e.Line)
}

// TestCallFunctionPrefersExternal: CallFunction resolves externally
// registered callables before script-defined ones.
func TestCallFunctionPrefersExternal(t *testing.T) {
	src := `greet():
return "script"
end`
	em := errs.NewManager()
	p := parser.Parse(src, em)
	require.False(t, em.HasErrors())
	r := NewRunner(em)
	r.RegisterFunction("greet", func(args []values.Value) (*values.Value, error) {
		v := values.String("external")
		return &v, nil
	})
	require.NoError(t, r.RunSetup(p, nil))

	result, err := r.CallFunction("greet", nil)
	require.NoError(t, err)
	assert.Equal(t, values.String("external"), result)
}

// TestBulkRegistrationAndConversion exercises the bulk variable
// registration and the callback-shaped read-back.
func TestBulkRegistrationAndConversion(t *testing.T) {
	em := errs.NewManager()
	p := parser.Parse("z = a + b;", em)
	require.False(t, em.HasErrors())

	r := NewRunner(em).RegisterVariables(map[string]values.Value{
		"a": values.Int(2),
		"b": values.Int(40),
	})
	require.NoError(t, r.RunSetup(p, nil))

	var hostInt int64
	require.True(t, r.UpdateVariableWith("z", func(v values.Value) { hostInt = v.Int }))
	assert.Equal(t, int64(42), hostInt)
	assert.False(t, r.UpdateVariableWith("missing", func(values.Value) { t.Fatal("must not be called") }))
}

// TestNegativeUnknownVariable: reading an undeclared variable is a runtime
// error with the exact user-facing message.
func TestNegativeUnknownVariable(t *testing.T) {
	em := errs.NewManager()
	p := parser.Parse("y = unknown_var;", em)
	require.False(t, em.HasErrors())
	r := NewRunner(em)
	err := r.RunSetup(p, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not find a variable by the name: unknown_var")
}

// TestNegativeTrailingOperatorIsParseError: a trailing operator with
// nothing following it is a parse-time "Unknown expression" error, not a
// runtime one.
func TestNegativeTrailingOperatorIsParseError(t *testing.T) {
	em := errs.NewManager()
	parser.Parse("x = 1 +;", em)
	require.True(t, em.HasErrors())
	first, _ := em.First()
	assert.Equal(t, errs.ParseKind, first.Kind)
	assert.Contains(t, first.Message, "Unknown expression")
}

// TestNegativeReturnOutsideFunction: `return` at top level is a parse error.
func TestNegativeReturnOutsideFunction(t *testing.T) {
	em := errs.NewManager()
	parser.Parse("return 1;", em)
	assert.True(t, em.HasErrors())
}

// TestCallVisibilityGlobalsUpdateAcrossCalls: a global write inside one
// call is visible to a later call.
func TestCallVisibilityGlobalsUpdateAcrossCalls(t *testing.T) {
	src := `counter = 0
bump():
counter = counter + 1
return counter
end`
	r, _ := newRunner(t, src)

	first, err := r.CallFunction("bump", nil)
	require.NoError(t, err)
	assert.Equal(t, values.Int(1), first)

	second, err := r.CallFunction("bump", nil)
	require.NoError(t, err)
	assert.Equal(t, values.Int(2), second)
}

// TestArityMismatchIsRuntimeError: calling with the wrong argument count fails.
func TestArityMismatchIsRuntimeError(t *testing.T) {
	src := `f(a,b):
return a+b
end`
	r, _ := newRunner(t, src)
	_, err := r.CallFunction("f", []values.Value{values.Int(1)})
	assert.Error(t, err)
}

// TestRegisteredExternalFunctionShadowsScriptFunction verifies Runner.Call
// (not CallFunction) prefers a host-registered external function over a
// script-defined one of the same name, per RegisterFunction's doc comment.
func TestRegisteredExternalFunctionShadowsScriptFunction(t *testing.T) {
	src := `greet():
return "script"
end`
	em := errs.NewManager()
	p := parser.Parse(src, em)
	require.False(t, em.HasErrors())
	r := NewRunner(em)
	r.RegisterFunction("greet", func(args []values.Value) (*values.Value, error) {
		v := values.String("external")
		return &v, nil
	})
	require.NoError(t, r.RunSetup(p, nil))

	result, err := r.Call("greet", nil)
	require.NoError(t, err)
	assert.Equal(t, values.String("external"), *result)
}

// TestAccessorFlattenedDottedVariable: a dotted Var.Var access flattens to
// one registered variable name, exercised directly against Runner without
// going through the stdlib package.
func TestAccessorFlattenedDottedVariable(t *testing.T) {
	em := errs.NewManager()
	p := parser.Parse("y = vector3.one;", em)
	require.False(t, em.HasErrors())
	r := NewRunner(em)
	r.RegisterVariable("vector3.one", values.Int(1))
	require.NoError(t, r.RunSetup(p, nil))

	y, ok := r.GlobalValue("y")
	require.True(t, ok)
	assert.Equal(t, values.Int(1), y)
}

// TestParameterShadowsGlobalWithoutLeaking: a parameter sharing a global's
// name shadows it for the call only, and reassigning the parameter inside
// the body must not leak back onto the global once the call returns.
func TestParameterShadowsGlobalWithoutLeaking(t *testing.T) {
	src := `x = 10;
bump(x):
  x = x + 1
  return x
end`
	r, _ := newRunner(t, src)

	result, err := r.CallFunction("bump", []values.Value{values.Int(1)})
	require.NoError(t, err)
	assert.Equal(t, values.Int(2), result)

	global, ok := r.GlobalValue("x")
	require.True(t, ok)
	assert.Equal(t, values.Int(10), global, "the global must be unaffected by the shadowing parameter")
}

// TestRuntimeErrorReachesErrorManager: CallFunction queues a runtime
// failure onto the error manager (not just its returned error), tagged
// with the failing statement's source line.
func TestRuntimeErrorReachesErrorManager(t *testing.T) {
	src := `f():
return missing + 1
end`
	r, em := newRunner(t, src)

	_, err := r.CallFunction("f", nil)
	require.Error(t, err)
	require.True(t, em.HasErrors())

	e, ok := em.First()
	require.True(t, ok)
	assert.Equal(t, errs.RuntimeKind, e.Kind)
	assert.Equal(t, "f", e.Function)
	assert.Equal(t, 2, e.Line)
}
