package parsers

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/kluctl/go-embed-python/python"
)

//go:embed py_ast_helper.py
var pythonHelperScript string

var (
	helperOnce sync.Once
	helperCmd  CommandFunc
	helperErr  error
)

// PythonHelperCommand returns a CommandFunc that runs the bundled ast
// helper on the embedded Python runtime. The runtime is materialized once
// under ~/.prism/python and persists across runs; repeat calls reuse it.
func PythonHelperCommand() (CommandFunc, error) {
	helperOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			helperErr = fmt.Errorf("failed to resolve home directory: %w", err)
			return
		}
		prismDir := filepath.Join(home, ".prism", "python")

		// Embedded Python extracts to a persistent location; the hash
		// suffix in the directory name keeps runtime upgrades safe.
		runtimeDir := filepath.Join(prismDir, "runtime")
		ep, err := python.NewEmbeddedPythonWithTmpDir(runtimeDir, true)
		if err != nil {
			helperErr = fmt.Errorf("failed to create embedded python: %w", err)
			return
		}

		scriptPath := filepath.Join(prismDir, "py_ast_helper.py")
		if err := os.MkdirAll(prismDir, 0o755); err != nil {
			helperErr = fmt.Errorf("failed to create helper directory: %w", err)
			return
		}
		if err := os.WriteFile(scriptPath, []byte(pythonHelperScript), 0o644); err != nil {
			helperErr = fmt.Errorf("failed to write helper script: %w", err)
			return
		}

		helperCmd = func(ctx context.Context, filePath string) (*exec.Cmd, error) {
			return ep.PythonCmd(scriptPath, filePath)
		}
	})
	return helperCmd, helperErr
}
