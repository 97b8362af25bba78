/*
File    : drython/cmd/drython/main.go
Author  : Drython Contributors
Contact : dryscript/drython
*/

// Package main is the command-line entry point for the Drython
// interpreter: run a script file, or start the interactive REPL, with an
// optional YAML manifest selecting which stdlib bundles to auto-register.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/dryscript/drython/errs"
	"github.com/dryscript/drython/eval"
	"github.com/dryscript/drython/parser"
	"github.com/dryscript/drython/repl"
	"github.com/dryscript/drython/script"
	"github.com/dryscript/drython/stdlib"
	"github.com/dryscript/drython/values"
)

var (
	// VERSION is the current interpreter version string.
	VERSION = "v0.1.0"
	// AUTHOR is the project's contact line, shown by --version and the REPL banner.
	AUTHOR = "dryscript/drython"
	// LICENCE names the project's software license.
	LICENCE = "MIT"
	// PROMPT is the REPL's command prompt.
	PROMPT = "Drython >>> "
	// LINE separates sections of REPL/help output.
	LINE = "----------------------------------------------------------------"
	// BANNER is the REPL's startup ASCII logo.
	BANNER = `
  ____                  _   _
 |  _ \ _ __ _   _ _ __| |_| |__   ___  _ __
 | | | | '__| | | | '__| __| '_ \ / _ \| '_ \
 | |_| | |  | |_| | |  | |_| | | | (_) | | | |
 |____/|_|   \__, |_|   \__|_| |_|\___/|_| |_|
             |___/
`
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	args := os.Args[1:]

	var manifestPath string
	var fileName string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			showHelp()
			return
		case "--version", "-v":
			showVersion()
			return
		case "--libs":
			if i+1 >= len(args) {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] --libs requires a manifest path\n")
				os.Exit(1)
			}
			manifestPath = args[i+1]
			i++
		default:
			fileName = args[i]
		}
	}

	var manifest libManifest
	if manifestPath != "" {
		m, err := loadManifest(manifestPath)
		if err != nil {
			redColor.Fprintf(os.Stderr, "[MANIFEST ERROR] %v\n", err)
			os.Exit(1)
		}
		manifest = m
	}

	if fileName != "" {
		runFile(fileName, manifest)
		return
	}

	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
	repler.Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("Drython - An Embeddable Scripting Language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  drython                        Start interactive REPL mode")
	yellowColor.Println("  drython <path-to-file>         Execute a Drython file")
	yellowColor.Println("  drython --libs <manifest.yaml> [file]  Auto-register stdlib bundles from a manifest")
	yellowColor.Println("  drython --help                 Display this help message")
	yellowColor.Println("  drython --version              Display version information")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  /exit                          Exit the REPL")
	yellowColor.Println("  /scope                         Show currently bound globals")
}

func showVersion() {
	cyanColor.Println("Drython - An Embeddable Scripting Language")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENCE)
	cyanColor.Printf("Contact: %s\n", AUTHOR)
}

// runFile reads the file with script.ReadText, parses it, runs setup
// against the auto bundle (plus any manifest-enabled bundles), then calls
// a zero-argument `main` function if the script defines one. The error
// queue is drained and printed either way — errors are data; the host
// decides how to present them.
func runFile(fileName string, manifest libManifest) {
	source, err := script.ReadText(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", fileName, err)
		os.Exit(1)
	}

	em := errs.NewManager()
	p := parser.Parse(source, em)
	if em.HasErrors() {
		printErrors(em)
		os.Exit(1)
	}

	runner := eval.NewRunner(em)
	bundles := stdlib.Bundles()
	if manifest != nil {
		registerManifestLibraries(runner, manifest)
	}

	// RunSetup registers the "auto" bundle itself; the manifest only widens
	// the set beyond what a script's own `use` lines pull in.
	if err := runner.RunSetup(p, bundles); err != nil {
		printErrors(em)
		os.Exit(1)
	}

	if runner.HasFunction("main") {
		result, err := runner.CallFunction("main", nil)
		if err != nil {
			printErrors(em)
			os.Exit(1)
		}
		if result.Kind != values.KindNull {
			yellowColor.Fprintf(os.Stdout, "%s\n", result.String())
		}
	}

	if em.HasErrors() {
		printErrors(em)
		os.Exit(1)
	}
}

func printErrors(em *errs.Manager) {
	for _, e := range em.Errors() {
		redColor.Fprintf(os.Stderr, "%s\n", e.Error())
	}
}
