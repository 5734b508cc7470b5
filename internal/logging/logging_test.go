package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("decode %q: %v", scanner.Text(), err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestTraceRespectsToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	SetTraceEnabled(false)
	Trace("ignored", nil)
	SetTraceEnabled(true)
	Trace("product.add", map[string]interface{}{"id": 7})
	Close()

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["event"] != "product.add" {
		t.Fatalf("expected product.add event, got %v", entries[0]["event"])
	}
	payload, ok := entries[0]["payload"].(map[string]interface{})
	if !ok || payload["id"] != float64(7) {
		t.Fatalf("unexpected payload %v", entries[0]["payload"])
	}
	if _, ok := entries[0]["time"]; !ok {
		t.Fatalf("expected time field in %v", entries[0])
	}
}

func TestErrorAlwaysWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })
	SetTraceEnabled(false)

	Error(nil)
	Error(errors.New("boom"))
	Close()

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["msg"] != "boom" || entries[0]["level"] != "error" {
		t.Fatalf("unexpected entry %v", entries[0])
	}
}

func TestConfigureEmptyFallsBackToDefault(t *testing.T) {
	Configure("   ")
	if got := Path(); got != defaultLogFile {
		t.Fatalf("expected %s, got %s", defaultLogFile, got)
	}
}
