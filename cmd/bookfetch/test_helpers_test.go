package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	cacheDir    string
	downloadDir string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(homeDir, ".config", "bookfetch", "config.toml"),
		cacheDir:    filepath.Join(base, "cache"),
		downloadDir: filepath.Join(base, "downloads"),
	}

	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf(`[paths]
cache_dir = %q
log_dir = %q
download_dir = %q

[logging]
format = "console"
level = "error"
`, env.cacheDir, filepath.Join(base, "logs"), env.downloadDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type seedBook struct {
	title  string
	author string
	doi    string
	pkg    string
}

// seedCatalogCache writes a normalized cache CSV for the English
// all-disciplines catalog so commands run without network access.
func seedCatalogCache(t *testing.T, env *cliTestEnv, books []seedBook) {
	t.Helper()
	if err := os.MkdirAll(env.cacheDir, 0o755); err != nil {
		t.Fatalf("mkdir cache dir: %v", err)
	}
	var b strings.Builder
	b.WriteString("book_title,author,edition,print_isbn,electronic_isbn,doi_url,package_name\n")
	for _, book := range books {
		fmt.Fprintf(&b, "%s,%s,1st ed. 2020,,,%s,%s\n", book.title, book.author, book.doi, book.pkg)
	}
	path := filepath.Join(env.cacheDir, "catalog-en-all.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write cache: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
