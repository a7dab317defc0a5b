package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/skyline/pkg/observability"
)

const mixedText = "+---+\n|   |\n|###|\n|###|\n+---+\n"

// testEnv isolates config and cache directories for one test.
type testEnv struct {
	configDir string
	cacheDir  string
	logs      bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{configDir: t.TempDir(), cacheDir: t.TempDir()}
	t.Setenv("XDG_CONFIG_HOME", env.configDir)
	t.Setenv("XDG_CACHE_HOME", env.cacheDir)
	t.Cleanup(observability.Reset)
	return env
}

// writeConfig stores body as the default config file.
func (e *testEnv) writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := filepath.Join(e.configDir, "skyline")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// run executes the CLI with args and stdin, returning stdout and stderr.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return e.runContext(t, context.Background(), stdin, args...)
}

func (e *testEnv) runContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, string, error) {
	t.Helper()
	c := New(&e.logs, LogInfo)
	root := c.RootCommand()

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
