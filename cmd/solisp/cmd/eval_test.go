package cmd

import (
	"bytes"
	"os"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunEvalPrintsResult(t *testing.T) {
	oldConfigPath := configPath
	configPath = ""
	defer func() { configPath = oldConfigPath }()

	output, err := captureStdout(t, func() error {
		return runEval(evalCmd, []string{"(+ 1 2)"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "3\n" {
		t.Errorf("expected %q, got %q", "3\n", output)
	}
}

func TestRunEvalParseErrorIsReported(t *testing.T) {
	oldConfigPath := configPath
	configPath = ""
	defer func() { configPath = oldConfigPath }()

	_, err := captureStdout(t, func() error {
		return runEval(evalCmd, []string{"(+ 1"})
	})
	if err == nil {
		t.Errorf("expected a parse error for an unterminated form")
	}
}
