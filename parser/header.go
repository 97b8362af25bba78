/*
File    : drython/parser/header.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package parser

import (
	"fmt"
	"strings"

	"github.com/dryscript/drython/lexer"
)

// ParseHeader extracts (kind, payload) from a scope opener line already
// known (via its lexer.Kind) to start a loop, an if/elif/else, or a
// function scope.
//
// Returns:
//   - kind: "if", "elif", "else", "loop", or the function's name.
//   - payload: the condition source for if/elif/loop (possibly empty),
//     or the comma-joined parameter list for a function header.
func ParseHeader(kind lexer.Kind, header string) (string, string, error) {
	if !strings.HasSuffix(header, ":") {
		return "", "", fmt.Errorf("malformed scope header (missing trailing ':'): %q", header)
	}
	body := strings.TrimSuffix(header, ":")

	switch kind {
	case lexer.KindLoop:
		return "loop", strings.TrimPrefix(body, "loop"), nil
	case lexer.KindIf:
		return "if", strings.TrimPrefix(body, "if"), nil
	case lexer.KindElif:
		switch {
		case strings.HasPrefix(body, "elseif"):
			return "elif", strings.TrimPrefix(body, "elseif"), nil
		default:
			return "elif", strings.TrimPrefix(body, "elif"), nil
		}
	case lexer.KindElse:
		return "else", strings.TrimPrefix(body, "else"), nil
	case lexer.KindFunction:
		open := strings.IndexRune(body, '(')
		if open < 0 || !strings.HasSuffix(body, ")") {
			return "", "", fmt.Errorf("malformed function header: %q", header)
		}
		name := body[:open]
		if name == "" {
			return "", "", fmt.Errorf("malformed function header (missing name): %q", header)
		}
		params := body[open+1 : len(body)-1]
		return name, params, nil
	default:
		return "", "", fmt.Errorf("not a scope header: %q", header)
	}
}
