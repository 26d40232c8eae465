package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imgconv/internal/config"
	"imgconv/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	srcDir     string
	destDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.History.Path = filepath.Join(base, "history.db")

	cfg := &cfgVal
	configPath := filepath.Join(base, "config.toml")
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save config: %v", err)
	}

	env := &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		srcDir:     filepath.Join(base, "src"),
		destDir:    filepath.Join(base, "dest"),
	}
	if err := os.MkdirAll(env.srcDir, 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}
	if err := os.MkdirAll(env.destDir, 0o755); err != nil {
		t.Fatalf("mkdir dest: %v", err)
	}
	return env
}

func runCLI(t *testing.T, configPath string, args []string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLIConvertBatch(t *testing.T) {
	env := setupCLITestEnv(t)

	cat := filepath.Join(env.srcDir, "cat.png")
	dog := filepath.Join(env.srcDir, "dog.bmp")
	testsupport.WriteImage(t, cat, 6, 6)
	testsupport.WriteImage(t, dog, 6, 6)

	out, _, err := runCLI(t, env.configPath, []string{
		"convert", "--to", "jpeg", "--dest", env.destDir, cat, dog,
	})
	if err != nil {
		t.Fatalf("convert: %v\noutput:\n%s", err, out)
	}
	requireContains(t, out, "cat.jpg")
	requireContains(t, out, "dog.jpg")
	requireContains(t, out, "Converted 2 of 2 files to jpeg")

	for _, name := range []string{"cat.jpg", "dog.jpg"} {
		if _, err := os.Stat(filepath.Join(env.destDir, name)); err != nil {
			t.Fatalf("expected output %s: %v", name, err)
		}
	}
}

func TestCLIConvertReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t)

	cat := filepath.Join(env.srcDir, "cat.png")
	testsupport.WriteImage(t, cat, 6, 6)
	missing := filepath.Join(env.srcDir, "missing.jpg")

	out, _, err := runCLI(t, env.configPath, []string{
		"convert", "--to", "png", "--dest", env.destDir, cat, missing,
	})
	if err == nil {
		t.Fatal("expected nonzero exit for failed conversions")
	}
	requireContains(t, err.Error(), "1 of 2 conversions failed")
	requireContains(t, out, "source not found")

	if _, statErr := os.Stat(filepath.Join(env.destDir, "cat.png")); statErr != nil {
		t.Fatalf("successful sibling missing: %v", statErr)
	}
}

func TestCLIConvertJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	cat := filepath.Join(env.srcDir, "cat.png")
	testsupport.WriteImage(t, cat, 6, 6)

	out, _, err := runCLI(t, env.configPath, []string{
		"convert", "--to", "bmp", "--dest", env.destDir, "--json", cat,
	})
	if err != nil {
		t.Fatalf("convert --json: %v", err)
	}

	var payload struct {
		ID        string `json:"id"`
		Target    string `json:"target"`
		Succeeded int    `json:"succeeded"`
		Failed    int    `json:"failed"`
		Outcomes  []struct {
			Source string `json:"source"`
			Status string `json:"status"`
		} `json:"outcomes"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode JSON output: %v\n%s", err, out)
	}
	if payload.ID == "" || payload.Target != "bmp" || payload.Succeeded != 1 || payload.Failed != 0 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if len(payload.Outcomes) != 1 || payload.Outcomes[0].Status != "success" {
		t.Fatalf("unexpected outcomes: %+v", payload.Outcomes)
	}
}

func TestCLIConvertDefaultsToConfiguredOutputDir(t *testing.T) {
	env := setupCLITestEnv(t)

	cat := filepath.Join(env.srcDir, "cat.png")
	testsupport.WriteImage(t, cat, 6, 6)

	_, _, err := runCLI(t, env.configPath, []string{"convert", "--to", "gif", cat})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "cat.gif")); err != nil {
		t.Fatalf("expected output in configured dir: %v", err)
	}
}

func TestCLIConvertRemembersDestination(t *testing.T) {
	env := setupCLITestEnv(t)

	cat := filepath.Join(env.srcDir, "cat.png")
	testsupport.WriteImage(t, cat, 6, 6)

	_, _, err := runCLI(t, env.configPath, []string{
		"convert", "--to", "png", "--dest", env.destDir, cat,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	reloaded, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if reloaded.Paths.LastUsedDir != env.destDir {
		t.Fatalf("last used dir not persisted: %q", reloaded.Paths.LastUsedDir)
	}
}

func TestCLIConvertRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	cat := filepath.Join(env.srcDir, "cat.png")
	testsupport.WriteImage(t, cat, 6, 6)

	_, _, err := runCLI(t, env.configPath, []string{
		"convert", "--to", "bmp", "--dest", env.destDir, cat,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, []string{"history", "list"})
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "bmp")
	requireContains(t, out, env.destDir)

	// Pull the batch ID out of the list and show its outcomes.
	var batchID string
	for _, field := range strings.Fields(out) {
		if len(field) == 36 && strings.Count(field, "-") == 4 {
			batchID = field
			break
		}
	}
	if batchID == "" {
		t.Fatalf("no batch ID in list output:\n%s", out)
	}

	out, _, err = runCLI(t, env.configPath, []string{"history", "show", batchID})
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "cat.png")
	requireContains(t, out, "success")
}

func TestCLIFormats(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, []string{"formats"})
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	for _, want := range []string{"Png", "Jpeg", "Webp", "Pdf", "built-in", "cwebp"} {
		requireContains(t, out, want)
	}
}

func TestCLIInfo(t *testing.T) {
	env := setupCLITestEnv(t)

	cat := filepath.Join(env.srcDir, "cat.png")
	testsupport.WriteImage(t, cat, 10, 20)

	out, _, err := runCLI(t, env.configPath, []string{"info", cat})
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	requireContains(t, out, "10x20")
	requireContains(t, out, "png")

	notImage := filepath.Join(env.srcDir, "notes.txt")
	testsupport.WriteFile(t, notImage, 32)
	_, _, err = runCLI(t, env.configPath, []string{"info", notImage})
	if err == nil {
		t.Fatal("expected error for unreadable image")
	}
}
