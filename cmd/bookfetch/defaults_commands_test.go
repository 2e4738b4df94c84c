package main

import "testing"

func TestDefaultCatalogRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"get-default-catalog"}, env.configPath)
	if err != nil {
		t.Fatalf("get-default-catalog: %v", err)
	}
	requireContains(t, out, "en-all")

	out, _, err = runCLI(t, []string{"set-default-catalog", "-L", "de", "-T", "med"}, env.configPath)
	if err != nil {
		t.Fatalf("set-default-catalog: %v", err)
	}
	requireContains(t, out, "Default catalog set to de-med")

	out, _, err = runCLI(t, []string{"get-default-catalog"}, env.configPath)
	if err != nil {
		t.Fatalf("get-default-catalog after set: %v", err)
	}
	requireContains(t, out, "de-med")
}

func TestSetDefaultCatalogRejectsUnregistered(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"set-default-catalog", "-L", "en", "-T", "med"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unregistered catalog")
	}

	out, _, err := runCLI(t, []string{"get-default-catalog"}, env.configPath)
	if err != nil {
		t.Fatalf("get-default-catalog: %v", err)
	}
	requireContains(t, out, "en-all")
}
