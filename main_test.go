package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/product-catalog/internal/app"
	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/config"
	"github.com/google/go-cmp/cmp"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			SeedPath:   "catalog.yaml",
			Categories: []string{"furniture"},
			Sort:       catalog.SortPriceAsc,
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"seed":    "catalog.yaml",
			"sort":    "asc",
			"width":   "80",
			"footer":  "true",
			"verbose": "true",
		},
		Args: []string{},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	for key, want := range map[string]interface{}{
		"seed":    "catalog.yaml",
		"sort":    "asc",
		"width":   "80",
		"footer":  "true",
		"verbose": "true",
		"trace":   true,
		"logFile": "trace.log",
	} {
		if flagsValue[key] != want {
			t.Fatalf("expected flag %s=%v, got %v", key, want, flagsValue[key])
		}
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	cfgValue, ok := payload["config"].(config.Config)
	if !ok {
		t.Fatalf("expected config in payload")
	}
	if diff := cmp.Diff(cfg.App, cfgValue.App); diff != "" {
		t.Fatalf("unexpected app config (-want +got):\n%s", diff)
	}
}

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := "id,title,price,quantity,category,description\n" +
		"1,Oak Desk,250,3,furniture,\n" +
		"2,Desk Lamp,39.5,10,lighting,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func logFlag(t *testing.T) []string {
	return []string{"--log-file", filepath.Join(t.TempDir(), "test.log")}
}

func TestExecuteListCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := append([]string{"list", "--seed", writeSeed(t), "--category", "lighting"}, logFlag(t)...)
	code := execute(args, nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "Desk Lamp") || strings.Contains(out, "Oak Desk") {
		t.Fatalf("expected only the lighting product:\n%s", out)
	}
}

func TestExecuteListUsesEnvironment(t *testing.T) {
	var stdout, stderr bytes.Buffer
	environ := []string{"PRODUCT_CATALOG_SEED=" + writeSeed(t), "PRODUCT_CATALOG_SORT=desc"}
	code := execute(append([]string{"list"}, logFlag(t)...), environ, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	out := stdout.String()
	desk := strings.Index(out, "Oak Desk")
	lamp := strings.Index(out, "Desk Lamp")
	if desk < 0 || lamp < 0 || desk > lamp {
		t.Fatalf("expected descending price order:\n%s", out)
	}
}

func TestExecuteConfigErrors(t *testing.T) {
	cases := [][]string{
		{"list", "--node", "5000"},
		{"list", "--format", "xml"},
		{"list", "--sort", "sideways"},
		{"--watch"},
		{"--no-such-flag"},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		if code := execute(args, nil, &stdout, &stderr); code != exitConfig {
			t.Fatalf("expected exit %d for %v, got %d", exitConfig, args, code)
		}
		if !strings.Contains(stderr.String(), "Configuration error") {
			t.Fatalf("expected configuration error for %v, got %q", args, stderr.String())
		}
	}
}

func TestExecuteRuntimeError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := append([]string{"list", "--seed", filepath.Join(t.TempDir(), "missing.csv")}, logFlag(t)...)
	if code := execute(args, nil, &stdout, &stderr); code != exitRuntime {
		t.Fatalf("expected exit %d, got %d", exitRuntime, code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Fatalf("expected runtime error, got %q", stderr.String())
	}
}
