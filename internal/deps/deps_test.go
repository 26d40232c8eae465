package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"imgconv/internal/deps"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "cwebp")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "cwebp", Command: stub},
		{Name: "missing", Command: filepath.Join(binDir, "nope")},
		{Name: "unset", Command: ""},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("stub should be available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("missing binary should be unavailable with detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("unset command should report configuration detail: %+v", statuses[2])
	}
}

func TestLookup(t *testing.T) {
	if err := deps.Lookup("sh"); err != nil {
		t.Fatalf("sh should resolve: %v", err)
	}
	if err := deps.Lookup("definitely-not-a-binary-xyz"); err == nil {
		t.Fatal("expected error for unknown binary")
	}
	if err := deps.Lookup("  "); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestEncoderRequirementsDefaults(t *testing.T) {
	reqs := deps.EncoderRequirements("")
	if len(reqs) != 1 || reqs[0].Command != "cwebp" {
		t.Fatalf("unexpected requirements: %+v", reqs)
	}
	reqs = deps.EncoderRequirements("/opt/webp/bin/cwebp")
	if reqs[0].Command != "/opt/webp/bin/cwebp" {
		t.Fatalf("override ignored: %+v", reqs)
	}
}
