package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunScriptInlineEval(t *testing.T) {
	oldExpr, oldConfig := runEvalExpr, configPath
	defer func() { runEvalExpr, configPath = oldExpr, oldConfig }()
	runEvalExpr = "(* 6 7)"
	configPath = ""

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "42" {
		t.Errorf("expected 42, got %q", output)
	}
}

func TestRunScriptFromFile(t *testing.T) {
	oldExpr, oldConfig := runEvalExpr, configPath
	defer func() { runEvalExpr, configPath = oldExpr, oldConfig }()
	runEvalExpr = ""
	configPath = ""

	dir := t.TempDir()
	path := filepath.Join(dir, "main.solisp")
	if err := os.WriteFile(path, []byte(`(println "hi from a file")`), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "hi from a file") {
		t.Errorf("expected output to contain the printed line, got %q", output)
	}
}

func TestRunScriptMissingArgIsError(t *testing.T) {
	oldExpr, oldConfig := runEvalExpr, configPath
	defer func() { runEvalExpr, configPath = oldExpr, oldConfig }()
	runEvalExpr = ""
	configPath = ""

	if _, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	}); err == nil {
		t.Errorf("expected an error when neither a file nor -e is given")
	}
}
