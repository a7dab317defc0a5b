package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePath(t *testing.T) {
	env := newTestEnv(t)
	stdout, _, err := env.run(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(env.cacheDir, "skyline")
	if strings.TrimSpace(stdout) != want {
		t.Errorf("cache path = %q, want %q", stdout, want)
	}
}

func TestCachePathFromConfig(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	env.writeConfig(t, "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	stdout, _, err := env.run(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", stdout, dir)
	}
}

func TestCacheClear(t *testing.T) {
	env := newTestEnv(t)

	_, stderr, err := env.run(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Cache is empty") {
		t.Errorf("clear on empty cache: stderr = %q", stderr)
	}

	for _, line := range []string{"b:1,1,#", "p:5,*"} {
		if _, _, err := env.run(t, "", "render", line); err != nil {
			t.Fatal(err)
		}
	}
	_, stderr, err = env.run(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Cleared 2 cached entries") {
		t.Errorf("stderr = %q, want 2 entries cleared", stderr)
	}
}
