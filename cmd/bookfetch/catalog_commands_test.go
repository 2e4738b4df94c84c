package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanCatalog(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCatalogCache(t, env, defaultSeedBooks())

	cachePath := filepath.Join(env.cacheDir, "catalog-en-all.csv")
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("seed missing: %v", err)
	}

	out, _, err := runCLI(t, []string{"clean-catalog"}, env.configPath)
	if err != nil {
		t.Fatalf("clean-catalog: %v", err)
	}
	requireContains(t, out, "Removed cache for catalog en-all")

	if _, err := os.Stat(cachePath); err == nil {
		t.Fatal("cache file still present")
	}

	out, _, err = runCLI(t, []string{"clean-catalog"}, env.configPath)
	if err != nil {
		t.Fatalf("clean-catalog on empty cache: %v", err)
	}
	requireContains(t, out, "Catalog en-all has no cache")
}

func TestCleanCatalogAll(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCatalogCache(t, env, defaultSeedBooks())

	out, _, err := runCLI(t, []string{"clean-catalog", "--all"}, env.configPath)
	if err != nil {
		t.Fatalf("clean-catalog --all: %v", err)
	}
	requireContains(t, out, "Removed cache for catalog en-all")

	if _, err := os.Stat(filepath.Join(env.cacheDir, "catalog-en-all.csv")); err == nil {
		t.Fatal("cache file still present")
	}
}
