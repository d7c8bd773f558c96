package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/openSVM/solisp-sub002/internal/config"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/eval"
	"github.com/openSVM/solisp-sub002/internal/lexer"
	"github.com/openSVM/solisp-sub002/internal/parser"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr string
	dumpAST     bool
	traceRun    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or inline expression",
	Long: `Execute a program from a file or inline expression.

Examples:
  # Run a script file
  solisp run script.solisp

  # Evaluate an inline expression
  solisp run -e "(+ 1 2)"

  # Run with AST dump and assignment trace
  solisp run --dump-ast --trace script.solisp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed program (for debugging)")
	runCmd.Flags().BoolVar(&traceRun, "trace", false, "record and print the assignment trace")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case runEvalExpr != "":
		input = runEvalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		fmt.Fprintf(os.Stderr, "parse error(s) in %s:\n", filename)
		for _, e := range p.Errors() {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if dumpAST {
		fmt.Println("program:")
		var stmts []string
		for _, s := range program.Statements {
			stmts = append(stmts, s.String())
		}
		fmt.Println(strings.Join(stmts, "\n"))
		fmt.Println()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	evaluator := eval.BootstrapWithConfig(cfg, os.Stdout)
	evaluator.TraceEnabled = traceRun

	result, err := evaluator.Execute(program)
	if traceRun {
		for _, t := range evaluator.Trace {
			fmt.Fprintf(os.Stderr, "[trace] %s = %s (%s)\n", t.Name, t.Value.String(), t.Pos.String())
		}
	}
	if err != nil {
		if re, ok := err.(*errors.RuntimeError); ok {
			fmt.Fprintf(os.Stderr, "runtime error: %s\n", re.Error())
		} else {
			fmt.Fprintf(os.Stderr, "runtime error: %s\n", err)
		}
		return fmt.Errorf("execution failed")
	}

	if filename == "<eval>" && result != nil {
		fmt.Println(result.String())
	}
	return nil
}
