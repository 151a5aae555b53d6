// Command fstrparse parses string/f-string literal tokens from the
// command line or from a YAML batch file and prints their AST as JSON,
// optionally evaluating embedded expressions. Grounded on
// cmd/kbin-plugin/main.go's overall shape (slog.Logger setup, reading a
// YAML config/cases file, emitting JSON results) but standalone rather
// than a Benthos plugin binary — that role is filled by internal/service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/twinfer/fstrparse/internal/celeval"
	"github.com/twinfer/fstrparse/internal/diagslog"
	"github.com/twinfer/fstrparse/pkg/fstrlit"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "parse":
		err = runParse(logger, os.Args[2:])
	case "eval":
		err = runEval(logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fstrparse parse [-feature-version N] [-cases file.yaml] [literal]")
	fmt.Fprintln(os.Stderr, "       fstrparse eval  [-feature-version N] [-vars vars.yaml] literal")
}

// caseFile is the YAML batch-mode input format: a top-level `cases` key
// holding a list of raw literal tokens to parse in one pass.
type caseFile struct {
	Cases []string `yaml:"cases"`
}

func runParse(logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	featureVersion := fs.Int("feature-version", 8, "language feature version gate")
	casesPath := fs.String("cases", "", "YAML file containing a top-level 'cases: [...]' list of literal tokens")
	if err := fs.Parse(args); err != nil {
		return err
	}

	diag := diagslog.New(logger)

	var literals []string
	if *casesPath != "" {
		raw, err := os.ReadFile(*casesPath)
		if err != nil {
			return fmt.Errorf("reading cases file: %w", err)
		}
		var cf caseFile
		if err := yaml.Unmarshal(raw, &cf); err != nil {
			return fmt.Errorf("parsing cases file: %w", err)
		}
		literals = cf.Cases
	} else {
		if fs.NArg() < 1 {
			usage()
			os.Exit(2)
		}
		literals = []string{fs.Arg(0)}
	}

	results := make([]map[string]any, 0, len(literals))
	for _, lit := range literals {
		results = append(results, parseOne(diag, *featureVersion, lit))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func parseOne(diag fstrlit.Diagnostics, featureVersion int, lit string) map[string]any {
	ctx := fstrlit.NewContext("<cli>", featureVersion)
	ctx.Diagnostics = diag

	token := &fstrlit.Token{Bytes: []byte(lit), Lineno: 1, ColOffset: 0, EndLineno: 1, EndColOffset: len(lit)}
	res, err := fstrlit.ParseString(ctx, token)
	if err != nil {
		return map[string]any{"literal": lit, "error": err.Error()}
	}
	return map[string]any{"literal": lit, "ast": renderNode(res.Node)}
}

func renderNode(n fstrlit.Node) map[string]any {
	switch v := n.(type) {
	case *fstrlit.Constant:
		if v.Value.IsBytes {
			return map[string]any{"kind": "constant", "bytes": v.Value.Bytes}
		}
		return map[string]any{"kind": "constant", "text": v.Value.Text}
	case *fstrlit.JoinedStr:
		parts := make([]map[string]any, 0, len(v.Values))
		for _, piece := range v.Values {
			parts = append(parts, renderNode(piece))
		}
		return map[string]any{"kind": "joined", "values": parts}
	case *fstrlit.FormattedValue:
		m := map[string]any{"kind": "formatted_value", "expr": v.Value.String()}
		if v.Conversion != fstrlit.ConvNone {
			m["conversion"] = string(rune(v.Conversion))
		}
		if v.FormatSpec != nil {
			m["format_spec"] = renderNode(v.FormatSpec)
		}
		return m
	default:
		return map[string]any{"kind": "unknown"}
	}
}

// varsFile is the YAML variable-binding input for "eval".
type varsFile map[string]any

func runEval(logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	featureVersion := fs.Int("feature-version", 8, "language feature version gate")
	varsPath := fs.String("vars", "", "YAML file of variable bindings for embedded expressions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	lit := fs.Arg(0)

	vars := varsFile{}
	if *varsPath != "" {
		raw, err := os.ReadFile(*varsPath)
		if err != nil {
			return fmt.Errorf("reading vars file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &vars); err != nil {
			return fmt.Errorf("parsing vars file: %w", err)
		}
	}

	ctx := fstrlit.NewContext("<cli>", *featureVersion)
	ctx.Diagnostics = diagslog.New(logger)

	token := &fstrlit.Token{Bytes: []byte(lit), Lineno: 1, ColOffset: 0, EndLineno: 1, EndColOffset: len(lit)}
	res, err := fstrlit.ParseString(ctx, token)
	if err != nil {
		return fmt.Errorf("parsing literal: %w", err)
	}

	out := map[string]any{"literal": lit, "ast": renderNode(res.Node)}
	if err := evaluateInto(out, res.Node, vars); err != nil {
		logger.Warn("evaluation failed", "error", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func evaluateInto(out map[string]any, n fstrlit.Node, vars map[string]any) error {
	return attachValues(out["ast"].(map[string]any), n, vars)
}

func attachValues(out map[string]any, n fstrlit.Node, vars map[string]any) error {
	switch v := n.(type) {
	case *fstrlit.FormattedValue:
		val, err := celeval.Eval(v.Value, vars)
		if err != nil {
			return err
		}
		out["value"] = val.Value()
		return nil
	case *fstrlit.JoinedStr:
		values, _ := out["values"].([]map[string]any)
		for i, piece := range v.Values {
			if i < len(values) {
				if err := attachValues(values[i], piece, vars); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return nil
	}
}
