/*
File    : drython/parser/parser.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package parser

import (
	"github.com/dryscript/drython/errs"
	"github.com/dryscript/drython/lexer"
)

// ScriptType is a reserved tag for a future first-line script-type sniff;
// today every Parser carries ScriptTypeNone. It exists so the Script-type
// error kind has a concrete home.
type ScriptType int

const (
	ScriptTypeNone ScriptType = iota
)

// Parser holds one parsed program: its root ExpressionList plus the
// reserved ScriptType tag. A Parser is built once from source text and is
// immutable thereafter, unlike eval.Runner, which mutates as a host
// registers variables and functions and executes calls.
type Parser struct {
	Root       *ExpressionList
	ScriptType ScriptType
}

// Parse is the host-facing parse entry point: it normalizes source with
// lexer.Normalize, then builds the nested ExpressionList tree with
// ParseBlock. Both stages push to em rather than returning a Go error
// outright — parsing continues past an offending line, and the host drains
// em after the call to see what happened.
func Parse(source string, em *errs.Manager) *Parser {
	lines := lexer.Normalize(source, em)
	root := ParseBlock(lines, em)
	return &Parser{Root: root, ScriptType: ScriptTypeNone}
}
