package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/openSVM/solisp-sub002/internal/config"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/eval"
	"github.com/openSVM/solisp-sub002/internal/lexer"
	"github.com/openSVM/solisp-sub002/internal/parser"
	"github.com/openSVM/solisp-sub002/internal/value"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long: `Starts an interactive session: each line is read, parsed, and
executed against a persistent top-level environment, so bindings made on
one line are visible on the next (unlike the reference REPL this one was
modeled after, which re-created its evaluator per line).`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	evaluator := eval.BootstrapWithConfig(cfg, os.Stdout)

	fmt.Println("solisp interactive REPL")
	fmt.Println("Type an expression and press Enter. :help for commands, :exit to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	lineNum := 1

	for {
		fmt.Printf("solisp[%d]> ", lineNum)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case ":exit", ":quit":
			fmt.Println("goodbye")
			return nil
		case ":help":
			printReplHelp()
			continue
		case ":clear":
			evaluator = eval.BootstrapWithConfig(cfg, os.Stdout)
			fmt.Println("environment cleared")
			continue
		}

		if inspected, ok := strings.CutPrefix(line, ":inspect "); ok {
			runInspect(evaluator, inspected)
			lineNum++
			continue
		}

		result, err := executeLine(evaluator, line)
		if err != nil {
			if re, ok := err.(*errors.RuntimeError); ok {
				fmt.Printf("  error: %s\n", re.Error())
			} else {
				fmt.Printf("  error: %s\n", err)
			}
		} else {
			fmt.Printf("  => %s\n", result.String())
		}
		lineNum++
	}
	return nil
}

func executeLine(evaluator *eval.Evaluator, code string) (value.Value, error) {
	l := lexer.New(code)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, fmt.Errorf("parse error: %s", strings.Join(p.Errors(), "; "))
	}
	return evaluator.Execute(program)
}

// runInspect evaluates code and pretty-prints its value's Go struct
// representation via kr/pretty, the REPL debugging primitive SPEC_FULL.md
// gives `kr/pretty` a first-class job for.
func runInspect(evaluator *eval.Evaluator, code string) {
	l := lexer.New(code)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		fmt.Printf("  error: parse error: %s\n", strings.Join(p.Errors(), "; "))
		return
	}
	result, err := evaluator.Execute(program)
	if err != nil {
		fmt.Printf("  error: %s\n", err)
		return
	}
	fmt.Printf("  %# v\n", pretty.Formatter(result))
}

func printReplHelp() {
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  :help            show this help")
	fmt.Println("  :clear           reset the environment")
	fmt.Println("  :inspect EXPR    evaluate EXPR and pretty-print its Go representation")
	fmt.Println("  :exit, :quit     leave the REPL")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println(`  (+ 2 (* 3 4))`)
	fmt.Println(`  (define x 10)`)
	fmt.Println(`  (if (> x 5) "big" "small")`)
	fmt.Println(`  (loop for i from 1 to 5 collect (* i i))`)
	fmt.Println()
}
