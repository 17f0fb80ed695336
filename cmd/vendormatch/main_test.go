package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"vendormatch/internal/config"
)

func setupCLITestEnv(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	raw, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
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

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q does not contain %q", output, want)
	}
}

func TestCLIBusinessLifecycle(t *testing.T) {
	configPath := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"business", "add", "Acme Hardware"}, configPath)
	if err != nil {
		t.Fatalf("business add: %v", err)
	}
	requireContains(t, out, "Added business")

	// duplicate add is rejected
	if _, _, err := runCLI(t, []string{"business", "add", "Acme Hardware"}, configPath); err == nil {
		t.Fatal("expected duplicate business add to fail")
	}

	out, _, err = runCLI(t, []string{"business", "list"}, configPath)
	if err != nil {
		t.Fatalf("business list: %v", err)
	}
	requireContains(t, out, "Acme Hardware")

	out, _, err = runCLI(t, []string{"business", "delete", "Acme Hardware"}, configPath)
	if err != nil {
		t.Fatalf("business delete: %v", err)
	}
	requireContains(t, out, "Deleted business")

	out, _, err = runCLI(t, []string{"business", "list"}, configPath)
	if err != nil {
		t.Fatalf("business list: %v", err)
	}
	requireContains(t, out, "Catalog is empty")
}

func TestCLIKeywordCascade(t *testing.T) {
	configPath := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"business", "add", "Acme Hardware"}, configPath); err != nil {
		t.Fatalf("business add: %v", err)
	}

	out, _, err := runCLI(t, []string{"keyword", "add", "Acme Hardware", "acme store", "--case-sensitive"}, configPath)
	if err != nil {
		t.Fatalf("keyword add: %v", err)
	}
	requireContains(t, out, "Added keyword")

	out, _, err = runCLI(t, []string{"keyword", "list", "Acme Hardware"}, configPath)
	if err != nil {
		t.Fatalf("keyword list: %v", err)
	}
	requireContains(t, out, "acme store")

	// deleting the non-last keyword keeps the business
	out, _, err = runCLI(t, []string{"keyword", "delete", "Acme Hardware", "acme store"}, configPath)
	if err != nil {
		t.Fatalf("keyword delete: %v", err)
	}
	if strings.Contains(out, "was removed") {
		t.Fatalf("business should survive while a keyword remains: %q", out)
	}

	// deleting the last keyword removes the business
	out, _, err = runCLI(t, []string{"keyword", "delete", "Acme Hardware", "Acme Hardware"}, configPath)
	if err != nil {
		t.Fatalf("keyword delete last: %v", err)
	}
	requireContains(t, out, "no keywords left and was removed")
}

func TestCLIBusinessRename(t *testing.T) {
	configPath := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"business", "add", "Acme Hardware"}, configPath); err != nil {
		t.Fatalf("business add: %v", err)
	}

	out, _, err := runCLI(t, []string{"business", "rename", "Acme Hardware", "Acme Hardware Inc"}, configPath)
	if err != nil {
		t.Fatalf("business rename: %v", err)
	}
	requireContains(t, out, "Renamed business")

	out, _, err = runCLI(t, []string{"keyword", "list", "Acme Hardware Inc"}, configPath)
	if err != nil {
		t.Fatalf("keyword list: %v", err)
	}
	requireContains(t, out, "Acme Hardware Inc")
}

func TestCLIMatchAndStats(t *testing.T) {
	configPath := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"business", "add", "Acme Hardware"}, configPath); err != nil {
		t.Fatalf("business add: %v", err)
	}

	out, _, err := runCLI(t, []string{"match", "ACME HARDWARE", "--record"}, configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "Acme Hardware")
	requireContains(t, out, "Usage recorded")

	out, _, err = runCLI(t, []string{"match", "totally unrelated text"}, configPath)
	if err != nil {
		t.Fatalf("match miss: %v", err)
	}
	requireContains(t, out, "No match")

	out, _, err = runCLI(t, []string{"stats"}, configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Keyword efficiency")
	requireContains(t, out, "100.0%")

	out, _, err = runCLI(t, []string{"--json", "match", "acme hardware"}, configPath)
	if err != nil {
		t.Fatalf("match --json: %v", err)
	}
	requireContains(t, out, `"matched": true`)
	requireContains(t, out, `"business": "Acme Hardware"`)
}

func TestConfigInitAndValidate(t *testing.T) {
	configPath := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, _, err = runCLI(t, []string{"config", "show"}, configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "matching.fuzzy_threshold")
}
