package cmd

import (
	"fmt"
	"os"

	"github.com/openSVM/solisp-sub002/internal/config"
	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/eval"
	"github.com/openSVM/solisp-sub002/internal/lexer"
	"github.com/openSVM/solisp-sub002/internal/parser"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval EXPR",
	Short: "Evaluate a single inline expression and print its result",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(_ *cobra.Command, args []string) error {
	l := lexer.New(args[0])
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	evaluator := eval.BootstrapWithConfig(cfg, os.Stdout)
	result, err := evaluator.Execute(program)
	if err != nil {
		if re, ok := err.(*errors.RuntimeError); ok {
			return fmt.Errorf("runtime error: %s", re.Error())
		}
		return err
	}

	fmt.Println(result.String())
	return nil
}
