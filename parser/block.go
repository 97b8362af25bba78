/*
File    : drython/parser/block.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package parser

import (
	"fmt"

	"github.com/dryscript/drython/errs"
	"github.com/dryscript/drython/lexer"
	"github.com/dryscript/drython/values"
)

// blockCtx tracks the enclosing-scope facts the Block Parser needs to
// validate break/continue/return/library/call placement.
type blockCtx struct {
	inFunction bool
	inLoop     bool
}

// ParseBlock is the block parser's entry point: given the lexer's
// normalized lines, it classifies each one and recursively builds the
// nested ExpressionList tree. Parse errors are pushed to em and parsing
// continues past them where feasible — a malformed line is skipped, a
// stray `end`/`elif`/`else` is skipped, and parsing resumes on the next
// line, so one pass surfaces as many errors as possible.
func ParseBlock(lines []lexer.Line, em *errs.Manager) *ExpressionList {
	kinds := make([]lexer.Kind, len(lines))
	for i, l := range lines {
		k, err := lexer.Classify(l.Text)
		if err != nil {
			em.Push(errs.Parse(l.Number, err.Error()))
			k = lexer.KindNone
		}
		kinds[i] = k
	}

	root := newExpressionList()
	i := 0
	for i < len(lines) {
		next, err := parseStatements(lines, kinds, i, blockCtx{}, root, em)
		if err == nil && next == len(lines) {
			break
		}
		// A stray terminator (end/elif/else with no matching opener) or an
		// unrecoverable statement error: record it and resume just past it
		// so later lines still get a chance to surface their own errors.
		if next < len(lines) {
			switch kinds[next] {
			case lexer.KindEnd:
				em.Push(errs.Parse(lines[next].Number, "'end' without a matching opener"))
			case lexer.KindElif, lexer.KindElse:
				em.Push(errs.Parse(lines[next].Number, "'elif'/'else' without a matching 'if'"))
			}
			i = next + 1
			continue
		}
		break
	}
	return root
}

// parseStatements appends statements from lines[start:] onto el until it
// reaches end-of-input or a terminator line (End/Elif/Else) belonging to
// an enclosing scope it does not own. It returns the index of that
// terminator (or len(lines) at genuine end-of-input).
func parseStatements(lines []lexer.Line, kinds []lexer.Kind, start int, ctx blockCtx, el *ExpressionList, em *errs.Manager) (int, error) {
	i := start
	if el.LineStart == 0 && start < len(lines) {
		el.LineStart = lines[start].Number
	}
	for i < len(lines) {
		switch kinds[i] {
		case lexer.KindEnd, lexer.KindElif, lexer.KindElse:
			return i, nil
		case lexer.KindNone, lexer.KindComment:
			el.Order = append(el.Order, SlotNull)
			i++
		case lexer.KindIf, lexer.KindLoop, lexer.KindFunction:
			entries, next, err := parseScopeOpener(lines, kinds, i, ctx, em)
			el.Internals = append(el.Internals, entries...)
			for range entries {
				el.Order = append(el.Order, SlotInternal)
			}
			if err != nil {
				em.Push(errs.Parse(lines[i].Number, err.Error()))
			}
			i = next
		case lexer.KindAssignment:
			op, err := parseAssignmentStatement(lines[i])
			if err != nil {
				em.Push(errs.Parse(lines[i].Number, err.Error()))
				el.Order = append(el.Order, SlotNull)
				i++
				continue
			}
			el.SingleOps = append(el.SingleOps, op)
			el.Order = append(el.Order, SlotSingle)
			i++
		case lexer.KindCall:
			if !ctx.inFunction {
				em.Push(errs.Parse(lines[i].Number, "a bare call is only valid inside a function"))
				el.Order = append(el.Order, SlotNull)
				i++
				continue
			}
			op, err := parseCallStatement(lines[i])
			if err != nil {
				em.Push(errs.Parse(lines[i].Number, err.Error()))
				el.Order = append(el.Order, SlotNull)
				i++
				continue
			}
			el.MultiOps = append(el.MultiOps, op)
			el.Order = append(el.Order, SlotMulti)
			i++
		case lexer.KindReturn:
			if !ctx.inFunction {
				em.Push(errs.Parse(lines[i].Number, "'return' outside a function"))
				el.Order = append(el.Order, SlotNull)
				i++
				continue
			}
			op, err := parseControlStatement(lines[i], "return", "return")
			if err != nil {
				em.Push(errs.Parse(lines[i].Number, err.Error()))
				el.Order = append(el.Order, SlotNull)
				i++
				continue
			}
			el.SingleOps = append(el.SingleOps, op)
			el.Order = append(el.Order, SlotSingle)
			i++
		case lexer.KindBreak:
			if !ctx.inLoop {
				em.Push(errs.Parse(lines[i].Number, "'break' outside a loop"))
				el.Order = append(el.Order, SlotNull)
				i++
				continue
			}
			el.SingleOps = append(el.SingleOps, SingleOp{Tag: "break", SourceLine: lines[i].Number})
			el.Order = append(el.Order, SlotSingle)
			i++
		case lexer.KindContinue:
			if !ctx.inLoop {
				em.Push(errs.Parse(lines[i].Number, "'continue' outside a loop"))
				el.Order = append(el.Order, SlotNull)
				i++
				continue
			}
			el.SingleOps = append(el.SingleOps, SingleOp{Tag: "continue", SourceLine: lines[i].Number})
			el.Order = append(el.Order, SlotSingle)
			i++
		case lexer.KindLibrary:
			if ctx.inFunction {
				em.Push(errs.Parse(lines[i].Number, "a library include is only valid outside a function"))
				el.Order = append(el.Order, SlotNull)
				i++
				continue
			}
			name := lexer.LibraryName(lines[i].Text)
			el.Includes[name] = lines[i].Number
			el.Order = append(el.Order, SlotLibrary)
			i++
		default:
			el.Order = append(el.Order, SlotNull)
			i++
		}
	}
	return i, nil
}

// parseScopeOpener implements chained if/elif/else handling: an elif or
// else at depth 0 closes the current sub-scope as if it were an `end`, then
// immediately begins a new sub-scope of that kind, sharing the same parent
// slot. curKind tracks which header is currently open; the
// loop keeps appending sibling InternalEntry values for as long as the
// chain continues.
func parseScopeOpener(lines []lexer.Line, kinds []lexer.Kind, i int, ctx blockCtx, em *errs.Manager) ([]InternalEntry, int, error) {
	var entries []InternalEntry
	curKind := kinds[i]

	for {
		header := lines[i]
		kindStr, payload, err := ParseHeader(curKind, header.Text)
		if err != nil {
			// Can't recover this header; skip straight past the dangling
			// body by scanning for the matching End at this depth.
			next := skipToEnd(kinds, i+1)
			return entries, next, err
		}

		childCtx := ctx
		switch curKind {
		case lexer.KindFunction:
			childCtx.inFunction = true
		case lexer.KindLoop:
			childCtx.inLoop = true
		}

		child := newExpressionList()
		child.ScopeKind = kindStr
		child.ScopePayload = payload
		next, _ := parseStatements(lines, kinds, i+1, childCtx, child, em)

		if next >= len(lines) {
			return entries, next, fmt.Errorf("unclosed scope header at line %d", header.Number)
		}

		entries = append(entries, InternalEntry{Child: child, SourceLine: header.Number})

		switch kinds[next] {
		case lexer.KindEnd:
			return entries, next + 1, nil
		case lexer.KindElif, lexer.KindElse:
			if curKind != lexer.KindIf && curKind != lexer.KindElif {
				em.Push(errs.Parse(lines[next].Number, "'elif'/'else' without a matching 'if'"))
				return entries, next, nil
			}
			curKind = kinds[next]
			i = next
			continue
		default:
			return entries, next, nil
		}
	}
}

// skipToEnd scans forward for the End line that closes the scope opened at
// (or before) idx, used only on the header-parse-error recovery path.
func skipToEnd(kinds []lexer.Kind, idx int) int {
	depth := 0
	for i := idx; i < len(kinds); i++ {
		switch kinds[i] {
		case lexer.KindIf, lexer.KindLoop, lexer.KindFunction:
			depth++
		case lexer.KindEnd:
			if depth == 0 {
				return i + 1
			}
			depth--
		}
	}
	return len(kinds)
}

func parseAssignmentStatement(line lexer.Line) (SingleOp, error) {
	parsed, err := ParseVariableLine(line.Text)
	if err != nil {
		return SingleOp{}, err
	}
	postfix, err := ParseExpression(parsed.RHS)
	if err != nil {
		return SingleOp{}, err
	}
	return SingleOp{Tag: parsed.Name, Modifiers: parsed.Modifiers, Postfix: postfix, SourceLine: line.Number}, nil
}

func parseCallStatement(line lexer.Line) (MultiOp, error) {
	name, argStrings, err := ParseCallLine(line.Text)
	if err != nil {
		return MultiOp{}, err
	}
	args := make([][]values.Value, 0, len(argStrings))
	for _, frag := range argStrings {
		postfix, err := ParseExpression(frag)
		if err != nil {
			return MultiOp{}, err
		}
		args = append(args, postfix)
	}
	return MultiOp{Callee: name, Args: args, SourceLine: line.Number}, nil
}

// parseControlStatement parses a `return`/`break`/`continue` line's
// remainder (the text after the keyword) as an operation, tagging the
// resulting SingleOp with tag. An empty remainder (a bare `return`) yields
// a nil postfix stream; eval treats that as returning Null.
func parseControlStatement(line lexer.Line, keyword, tag string) (SingleOp, error) {
	rest := line.Text[len(keyword):]
	if rest == "" {
		return SingleOp{Tag: tag, SourceLine: line.Number}, nil
	}
	postfix, err := ParseExpression(rest)
	if err != nil {
		return SingleOp{}, err
	}
	return SingleOp{Tag: tag, Postfix: postfix, SourceLine: line.Number}, nil
}
