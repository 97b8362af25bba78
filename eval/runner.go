/*
File    : drython/eval/runner.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dryscript/drython/errs"
	"github.com/dryscript/drython/parser"
	"github.com/dryscript/drython/scope"
	"github.com/dryscript/drython/values"
)

// Runner owns the parsed program's root ExpressionList, the persistent
// global environment, the table of script-defined (internal) functions,
// and the table of host/stdlib external functions a script's `use`
// includes or the embedder's RegisterFunction calls add. The lifecycle is
// register, run setup, then call named entry points — a Runner serves
// repeated CallFunction invocations against the globals setup produced.
type Runner struct {
	em        *errs.Manager
	root      *parser.ExpressionList
	globals   map[string]values.Value
	functions map[string]*parser.ExpressionList
	externals map[string]ExternalFunc
}

// NewRunner returns a Runner with empty globals and function tables,
// recording runtime errors to em.
func NewRunner(em *errs.Manager) *Runner {
	return &Runner{
		em:        em,
		globals:   make(map[string]values.Value),
		functions: make(map[string]*parser.ExpressionList),
		externals: make(map[string]ExternalFunc),
	}
}

// RegisterFunction adds a single host-callable function under name. It
// overrides any script-defined function of the same name, since host
// registrations are expected to happen before setup hoists the script
// body's own definitions. Returns the Runner for chaining.
func (r *Runner) RegisterFunction(name string, fn ExternalFunc) *Runner {
	r.externals[name] = fn
	return r
}

// RegisterVariable seeds a single global variable binding. Returns the
// Runner for chaining.
func (r *Runner) RegisterVariable(name string, v values.Value) *Runner {
	r.globals[name] = v
	return r
}

// RegisterVariables bulk-seeds global variable bindings in one call, for
// hosts registering many globals before a run. Returns the Runner for
// chaining.
func (r *Runner) RegisterVariables(vars map[string]values.Value) *Runner {
	for name, v := range vars {
		r.globals[name] = v
	}
	return r
}

// RegisterLibrary merges a Library's functions and variables into the
// Runner's tables, the resolution half of a script's `use` include.
// Returns the Runner for chaining.
func (r *Runner) RegisterLibrary(lib Library) *Runner {
	for name, fn := range lib.Functions {
		r.externals[name] = fn
	}
	for name, v := range lib.Variables {
		r.globals[name] = v
	}
	return r
}

// UpdateVariable reads the named script global back into out — how a host
// recovers a value the script computed (e.g. a top-level `x = 1 + 2 * 3`
// read back after RunSetup). Reports whether name was bound; out is
// untouched when it was not.
func (r *Runner) UpdateVariable(name string, out *values.Value) bool {
	v, ok := r.globals[name]
	if !ok {
		return false
	}
	*out = v
	return true
}

// UpdateVariableWith reads the named script global and hands it to
// convert, which maps it onto whatever host representation the caller
// wants. Reports whether name was bound; convert is not called when it
// was not.
func (r *Runner) UpdateVariableWith(name string, convert func(values.Value)) bool {
	v, ok := r.globals[name]
	if !ok {
		return false
	}
	convert(v)
	return true
}

// GlobalNames returns every currently bound global's name, in sorted
// order, for host-side introspection (e.g. the REPL's "/scope" command).
func (r *Runner) GlobalNames() []string {
	names := make([]string, 0, len(r.globals))
	for name := range r.globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GlobalValue reads back a single global binding, reporting whether it exists.
func (r *Runner) GlobalValue(name string) (values.Value, bool) {
	v, ok := r.globals[name]
	return v, ok
}

// registerInternal hoists a script-defined function into the Runner's
// function table, keyed by its header name, so a call anywhere in the
// script can resolve it regardless of where in the source it was defined.
func (r *Runner) registerInternal(body *parser.ExpressionList) {
	r.functions[body.ScopeKind] = body
}

// RunSetup resolves the parsed program's library includes against
// libraries (a name -> Library lookup, typically the stdlib bundle table
// plus any host-supplied libraries), then evaluates the root
// ExpressionList once — running its global assignments and hoisting its
// function definitions — committing the resulting bindings as the Runner's
// persistent global environment.
func (r *Runner) RunSetup(p *parser.Parser, libraries map[string]Library) error {
	r.root = p.Root
	// The "auto" bundle registers unconditionally — a script never needs a
	// `use auto` line to reach print.
	if lib, ok := libraries["auto"]; ok {
		r.RegisterLibrary(lib)
	}
	for name, line := range p.Root.Includes {
		lib, ok := libraries[name]
		if !ok {
			// Failed library resolution is a runtime error: the include
			// line itself parsed fine.
			err := fmt.Errorf("unknown library: %s", name)
			r.em.Push(errs.Runtime("", line, err.Error()))
			return err
		}
		r.RegisterLibrary(lib)
	}

	globalScope := scope.CloneFrom(r.globals)
	if _, err := evalList(p.Root, globalScope, r); err != nil {
		r.em.Push(errs.Runtime("", errorLine(err), err.Error()))
		return err
	}
	r.globals = globalScope.Snapshot()
	return nil
}

// Call is the dispatch target every evaluated Call token reaches:
// external (host or stdlib) functions take priority over script-defined
// ones of the same name, since a host registration is expected to
// intentionally shadow a script definition, never the reverse. A nil, nil
// return from an external function means it produced no value;
// resolveCall then leaves the original Call token standing in as the
// result.
func (r *Runner) Call(name string, args []values.Value) (*values.Value, error) {
	if fn, ok := r.externals[name]; ok {
		return fn(args)
	}
	if body, ok := r.functions[name]; ok {
		v, err := r.callInternal(body, args)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	return nil, fmt.Errorf("Could not find a function by the name: %s", name)
}

// CallFunction is the embedder-facing entry point for invoking a named
// script or host function: it resolves externally-registered callables
// first, and only failing that searches for a script-defined function of
// that name. An external callable producing no value yields Null here,
// since there is no enclosing expression for a Call token to stand in for.
//
// A runtime failure short-circuits the call and is queued onto the
// Runner's ErrorManager, tagged with name and the source line recorded at
// the statement that actually failed (the innermost lineError — see
// eval/errors.go — survives being re-wrapped by every enclosing scope/loop
// it unwinds through), rather than surfacing only as the returned error.
func (r *Runner) CallFunction(name string, args []values.Value) (values.Value, error) {
	if fn, ok := r.externals[name]; ok {
		result, err := fn(args)
		if err != nil {
			r.em.Push(errs.Runtime(name, 0, err.Error()))
			return values.Null(), err
		}
		if result == nil {
			return values.Null(), nil
		}
		return *result, nil
	}
	body, ok := r.functions[name]
	if !ok {
		err := fmt.Errorf("Could not find a function by the name: %s", name)
		r.em.Push(errs.Runtime(name, 0, err.Error()))
		return values.Null(), err
	}
	v, err := r.callInternal(body, args)
	if err != nil {
		r.em.Push(errs.Runtime(name, errorLine(err), err.Error()))
		return values.Null(), err
	}
	return v, nil
}

// HasFunction reports whether a script-defined function by that name was
// registered during RunSetup, letting a host decide whether to call an
// optional entry point like `main` without treating its absence as an
// error.
func (r *Runner) HasFunction(name string) bool {
	_, ok := r.functions[name]
	return ok
}

// callInternal implements the call semantics: clone the current
// global environment, overlay the call's parameter bindings as locals
// (shadowing any identically named global for the call's duration),
// evaluate the body, then commit the post-call scope's bindings back onto
// the Runner's globals — but only for names already present in globals;
// the call's own locals (including its parameters) are discarded, and a
// global reassigned both inside and outside of nested blocks follows
// last-writer-wins against the final flat scope snapshot.
func (r *Runner) callInternal(body *parser.ExpressionList, args []values.Value) (values.Value, error) {
	params, err := body.Params()
	if err != nil {
		return values.Null(), err
	}
	if len(params) != len(args) {
		return values.Null(), fmt.Errorf("function '%s' expects %d argument(s), got %d", body.ScopeKind, len(params), len(args))
	}

	callScope := scope.CloneFrom(r.globals)
	for i, p := range params {
		callScope.SetLocal(strings.TrimSpace(p), args[i])
	}

	sig, err := evalList(body, callScope, r)
	if err != nil {
		return values.Null(), err
	}

	snapshot := callScope.Snapshot()
	for name := range r.globals {
		if callScope.IsLocal(name) {
			// A call parameter (or any other local this call introduced)
			// that happens to share a name with a global shadows it for the
			// call's duration only — it must not leak back out.
			continue
		}
		if v, ok := snapshot[name]; ok {
			r.globals[name] = v
		}
	}

	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return values.Null(), nil
}
