package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool
var configPath string

var rootCmd = &cobra.Command{
	Use:   "solisp",
	Short: "solisp runtime core interpreter",
	Long: `solisp is a Go implementation of the runtime core of a LISP-family
embedded scripting language: a tree-walking evaluator with lexical
environments, a hygienic one-step macro expander, Common Lisp-style
parameter binding, and a small concurrency runtime.

This tool wraps that core with a lexer, a parser, and a CLI/REPL front
end for running scripts directly.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
}
