/*
File    : drython/repl/repl.go
Author  : Drython Contributors
Contact : dryscript/drython
*/

// Package repl implements the Read-Eval-Print Loop for the Drython
// interpreter: a readline-backed prompt where each line is parsed and
// evaluated as a one-line script against a persistent Runner, with queued
// errors drained and printed after every line.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/dryscript/drython/errs"
	"github.com/dryscript/drython/eval"
	"github.com/dryscript/drython/parser"
	"github.com/dryscript/drython/stdlib"
)

// Color definitions for REPL output:
// - blueColor: decorative lines and separators
// - yellowColor: expression results
// - redColor: error messages
// - greenColor: banner text
// - cyanColor: informational messages
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds one Read-Eval-Print Loop session's banner and prompt
// configuration; the persistent Runner is built when Start runs.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a new Repl with the given display configuration.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner, version/author/license line,
// and basic usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Drython!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '/exit' to quit, '/scope' to inspect globals")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop: print the banner, set up readline, build
// a Runner seeded with every stdlib bundle (so a REPL session can reach
// `print`/`math`/`vector3`/`collection` helpers without an explicit `use`
// line — a convenience the file/CLI path does not take, since a script
// there declares its own includes), then read one line at a time, evaluating
// each as a one-line script against the same persistent Runner.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	em := errs.NewManager()
	runner := eval.NewRunner(em)
	for _, lib := range stdlib.Bundles() {
		runner.RegisterLibrary(lib)
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == "/exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		if line == "/scope" {
			r.printScope(writer, runner)
			continue
		}

		rl.SaveHistory(line)
		r.executeLine(writer, line, em, runner)
	}
}

// executeLine parses and evaluates one line against the session's Runner,
// draining em and printing any queued errors in red. A line that evaluates
// without errors prints nothing: statement values are not echoed, and an
// assigned global is visible through the "/scope" command.
func (r *Repl) executeLine(writer io.Writer, line string, em *errs.Manager, runner *eval.Runner) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	em.Clear()
	p := parser.Parse(line, em)
	if em.HasErrors() {
		for _, e := range em.Errors() {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}

	if err := runner.RunSetup(p, stdlib.Bundles()); err != nil {
		redColor.Fprintf(writer, "%s\n", err.Error())
		return
	}
	if em.HasErrors() {
		for _, e := range em.Errors() {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
	}
}

// printScope implements the "/scope" REPL command, listing every currently
// bound global in yellow.
func (r *Repl) printScope(writer io.Writer, runner *eval.Runner) {
	names := runner.GlobalNames()
	if len(names) == 0 {
		cyanColor.Fprintf(writer, "(no globals bound)\n")
		return
	}
	for _, name := range names {
		v, _ := runner.GlobalValue(name)
		yellowColor.Fprintf(writer, "%s = %s\n", name, v.String())
	}
}
