// Command hxform evaluates and checks declarative form definitions.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pthm/hxform"
	"github.com/pthm/hxform/lib/definition"
)

const version = "0.1.0"

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validateFile := validateCmd.String("file", "", "Form definition file (or use stdin)")
	validateVerbose := validateCmd.Bool("v", false, "Log form events to stderr")

	relatedCmd := flag.NewFlagSet("related", flag.ExitOnError)
	relatedFile := relatedCmd.String("file", "", "Form definition file (or use stdin)")
	relatedField := relatedCmd.String("field", "", "Field whose trigger closure to print")

	lintCmd := flag.NewFlagSet("lint", flag.ExitOnError)
	lintFile := lintCmd.String("file", "", "Form definition file (or use stdin)")
	lintJSON := lintCmd.Bool("json", false, "Print the result as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		handleValidate(*validateFile, *validateVerbose)
	case "related":
		relatedCmd.Parse(os.Args[2:])
		handleRelated(*relatedFile, *relatedField)
	case "lint":
		lintCmd.Parse(os.Args[2:])
		handleLint(*lintFile, *lintJSON)
	case "version":
		fmt.Printf("hxform version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hxform - form validation coordinator

Usage:
  hxform <command> [arguments]

Commands:
  validate [-file form.yaml] [-v]        Validate the definition's values
  related  [-file form.yaml] -field name Print the fields name re-validates
  lint     [-file form.yaml] [-json]     Check a definition for mistakes
  version                                Print version
  help                                   Show this help

Examples:
  hxform validate -file signup.yaml
  cat signup.json | hxform lint
  hxform related -file signup.yaml -field password`)
}

func load(filePath string) *definition.Definition {
	var (
		def *definition.Definition
		err error
	)
	if filePath != "" {
		def, err = definition.Load(filePath)
	} else {
		def, err = definition.Read(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return def
}

func build(def *definition.Definition, verbose bool) *hxform.Form {
	var w io.Writer = io.Discard
	if verbose {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))

	form, err := definition.Build(def, hxform.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return form
}

func handleValidate(filePath string, verbose bool) {
	form := build(load(filePath), verbose)

	results, err := definition.Evaluate(form)
	if err != nil && !errors.Is(err, definition.ErrInvalid) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		icon := "✓"
		switch r.Result.Context {
		case hxform.Danger:
			icon = "✗"
		case hxform.Warning:
			icon = "⚠"
		}
		line := fmt.Sprintf("%s %s: %s", icon, r.Name, r.Result.Context)
		if r.Result.Message != "" {
			line += " - " + r.Result.Message
		}
		fmt.Println(line)
	}

	if err != nil {
		os.Exit(1)
	}
}

func handleRelated(filePath, field string) {
	if field == "" {
		fmt.Fprintln(os.Stderr, "Error: -field is required")
		os.Exit(1)
	}
	form := build(load(filePath), false)
	if !form.Has(field) {
		fmt.Fprintf(os.Stderr, "Error: unknown field %q\n", field)
		os.Exit(1)
	}

	related := form.Related(field)
	if len(related) == 0 {
		fmt.Printf("%s triggers no fields\n", field)
		return
	}
	fmt.Printf("%s -> %s\n", field, strings.Join(related, ", "))
}

func handleLint(filePath string, asJSON bool) {
	result := definition.Lint(load(filePath), nil)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else if len(result.Issues) == 0 {
		fmt.Println("✓ No issues found")
	} else {
		for _, issue := range result.Issues {
			icon := "⚠"
			if issue.Severity == "error" {
				icon = "✗"
			}
			location := ""
			if issue.Field != "" {
				location = fmt.Sprintf(" [field: %s]", issue.Field)
			}
			if issue.Rule != "" {
				location += fmt.Sprintf(" [rule: %s]", issue.Rule)
			}
			fmt.Printf("%s %s%s: %s\n", icon, issue.Severity, location, issue.Message)
		}
	}

	if !result.Valid {
		os.Exit(1)
	}
}
