/*
File    : drython/scope/scope.go
Author  : Drython Contributors
Contact : dryscript/drython
*/

// Package scope implements the per-call variable environment: a flat
// name->Value map, not a parent-chain lexical scope, since Drython has no
// closures. A call frame starts as a clone of the interpreter's globals,
// overlays its parameter bindings, and tracks which names it introduced so
// they can be torn down on exit.
package scope

import "github.com/dryscript/drython/values"

// Scope holds one call frame's variables: the cloned globals plus the
// parameter bindings and any names subsequently assigned. It also tracks
// which names were introduced as locals in this frame (as opposed to
// globals shadowed in place), so scope-exit teardown can remove exactly
// those bindings.
type Scope struct {
	vars   map[string]values.Value
	locals map[string]bool
}

// New creates an empty Scope.
func New() *Scope {
	return &Scope{vars: make(map[string]values.Value), locals: make(map[string]bool)}
}

// CloneFrom builds a new Scope seeded with a copy of globals' bindings.
// None of the copied names are tracked as locals: they are the global
// frame's own bindings, not ones this call introduced.
func CloneFrom(globals map[string]values.Value) *Scope {
	s := New()
	for k, v := range globals {
		s.vars[k] = v
	}
	return s
}

// Get looks up a variable by name. Drython has no parent-scope chain: a
// Scope is already the fully merged global+local frame for the current call.
func (s *Scope) Get(name string) (values.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set assigns name to v. If name is not already bound in this Scope, it is
// recorded as a local introduced by this frame and removed on scope exit;
// an existing binding (global or local) is overwritten in place without
// changing its local/global status.
func (s *Scope) Set(name string, v values.Value) {
	if _, existed := s.vars[name]; !existed {
		s.locals[name] = true
	}
	s.vars[name] = v
}

// SetLocal forcibly binds name as a local of this frame even if a clone of
// the global env already carries that key — used to overlay a function
// call's parameters, which must shadow an identically named global for the
// call's duration and never be committed back.
func (s *Scope) SetLocal(name string, v values.Value) {
	s.vars[name] = v
	s.locals[name] = true
}

// SetGlobal seeds a binding without marking it local, so it is treated as
// part of the global env rather than a name this frame introduced.
// Runner.RunSetup and Runner.RegisterVariable do not go through it: they
// write the Runner's global map directly.
func (s *Scope) SetGlobal(name string, v values.Value) {
	s.vars[name] = v
}

// EnterBlock returns a child Scope sharing this Scope's bindings directly
// (no clone) — Drython's if/elif/else/loop bodies are not separate call
// frames, only nested blocks of the same frame. Locals introduced inside a
// nested block are tracked against that block's own local set and torn
// down when it exits, exactly like a top-level call frame would.
func (s *Scope) EnterBlock() *Scope {
	return &Scope{vars: s.vars, locals: make(map[string]bool)}
}

// ExitBlock removes every local this frame (or a block nested inside it via
// EnterBlock, which shares the same vars map) introduced.
func (s *Scope) ExitBlock() {
	for name := range s.locals {
		delete(s.vars, name)
	}
}

// Snapshot copies out the current var bindings — used to commit a
// completed call's surviving globals back onto the interpreter's persistent
// global map, last-writer-wins for names present in globals.
func (s *Scope) Snapshot() map[string]values.Value {
	out := make(map[string]values.Value, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// IsLocal reports whether name was introduced as a local of this top-level
// frame — either a freshly assigned name or a call parameter bound via
// SetLocal. A parameter whose name collides with an existing global is
// local for the call's duration and must never be committed back onto the
// interpreter's globals, even though it physically shares a slot with that
// global's own entry in vars.
func (s *Scope) IsLocal(name string) bool {
	return s.locals[name]
}
