/*
File    : drython/lexer/classifier.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package lexer

import (
	"fmt"
	"strings"
)

// Kind is the expression classification the lexer assigns to a logical line.
type Kind int

const (
	// KindNone is an empty line (a blank-line placeholder) or a line whose
	// content didn't match any other kind (e.g. a bare trailing statement).
	KindNone Kind = iota
	KindComment
	KindAssignment
	KindFunction
	KindCall
	KindReturn
	KindIf
	KindElif
	KindElse
	KindLoop
	KindBreak
	KindContinue
	KindLibrary
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindComment:
		return "Comment"
	case KindAssignment:
		return "Assignment"
	case KindFunction:
		return "Function"
	case KindCall:
		return "Call"
	case KindReturn:
		return "Return"
	case KindIf:
		return "If"
	case KindElif:
		return "Elif"
	case KindElse:
		return "Else"
	case KindLoop:
		return "Loop"
	case KindBreak:
		return "Break"
	case KindContinue:
		return "Continue"
	case KindLibrary:
		return "Library"
	case KindEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// exactKeywords maps a fully-accumulated buffer to the Kind it short-circuits
// to. "elif" and "elseif" are synonyms — the block parser and scope header
// parser treat them identically.
var exactKeywords = map[string]Kind{
	"loop":     KindLoop,
	"if":       KindIf,
	"elif":     KindElif,
	"elseif":   KindElif,
	"else":     KindElse,
	"return":   KindReturn,
	"use":      KindLibrary,
	"import":   KindLibrary,
	"include":  KindLibrary,
	"using":    KindLibrary,
}

// isWordChar reports whether c belongs in the classifier's scan buffer:
// alphanumerics plus the selected punctuation `. _ !` (the last of which
// also appears as the Variable Line Parser's modifier separator).
func isWordChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '.' || c == '_' || c == '!'
}

// isSkippableChar reports operator/punctuation characters that are legal
// inside an expression fragment but carry no classification weight of their
// own: arithmetic/logical/comparison operator symbols, and the separators
// collections and call argument lists use. `=`, `(`, `:`, and the quote
// characters are handled by dedicated branches in Classify, not here.
func isSkippableChar(c rune) bool {
	switch c {
	case '+', '-', '*', '/', '%', '>', '<', '&', '|', ',', '[', ']', ')':
		return true
	default:
		return false
	}
}

// Classify maps a logical line (already stripped of its `<n>)` prefix by
// Normalize) to one of the expression kinds above.
//
// Example:
//
//	lexer.Classify("")                  // KindNone, nil
//	lexer.Classify("//a comment")       // KindComment, nil
//	lexer.Classify("x=1+2")             // KindAssignment, nil
//	lexer.Classify("f(a,b):")           // KindFunction, nil
//	lexer.Classify("print(x)")          // KindCall, nil
//	lexer.Classify("if x>0:")           // KindIf, nil
func Classify(line string) (Kind, error) {
	if line == "" {
		return KindNone, nil
	}
	if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
		return KindComment, nil
	}
	// break/continue/end classify by exact whole-line match only, unlike
	// the keyword buffer below — a line like "breakdown=1" is an assignment.
	switch line {
	case "break":
		return KindBreak, nil
	case "continue":
		return KindContinue, nil
	case "end":
		return KindEnd, nil
	}

	var buf strings.Builder
	sawOpenParen := false
	sawColonAfterParen := false
	var openQuote rune

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if openQuote != 0 {
			if c == openQuote {
				openQuote = 0
			}
			continue
		}

		switch {
		case c == '"' || c == '\'':
			openQuote = c
		case isWordChar(c):
			buf.WriteRune(c)
			word := buf.String()
			if kind, ok := exactKeywords[word]; ok {
				if word == "else" && i+1 < len(runes) && runes[i+1] == 'i' {
					// defer: let "elseif" keep accumulating past "else"
					continue
				}
				return kind, nil
			}
		case c == '=':
			return KindAssignment, nil
		case c == '(':
			sawOpenParen = true
		case c == ':':
			if sawOpenParen {
				sawColonAfterParen = true
			}
		case isSkippableChar(c):
			// operator/separator noise; carries no classification weight
		default:
			return KindNone, fmt.Errorf("Failed to recognize character '%c'", c)
		}
	}

	if sawColonAfterParen {
		return KindFunction, nil
	}
	if sawOpenParen {
		return KindCall, nil
	}
	if strings.HasSuffix(line, "++") || strings.HasSuffix(line, "--") {
		return KindAssignment, nil
	}
	return KindNone, nil
}

// LibraryName strips a Library line's leading keyword (`use`/`using`/
// `import`/`include`) and surrounding space, returning the bare library
// name that follows. Assumes Classify(line) == KindLibrary.
func LibraryName(line string) string {
	// "using" before "use": both are prefixes of a "using..." line and the
	// longer keyword must win.
	for _, kw := range []string{"using", "use", "include", "import"} {
		if strings.HasPrefix(line, kw) {
			return strings.TrimSpace(strings.TrimPrefix(line, kw))
		}
	}
	return strings.TrimSpace(line)
}
