package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHintsPersistAcrossManagers(t *testing.T) {
	dir := t.TempDir()

	m, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m.Put("threeside.current-side.abc", "left")
	m.Put("threeside.current-side.def", "right")

	reloaded, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got, ok := reloaded.Get("threeside.current-side.abc"); !ok || got != "left" {
		t.Errorf("Get(abc) = %q, %v; want left, true", got, ok)
	}
	if got, ok := reloaded.Get("threeside.current-side.def"); !ok || got != "right" {
		t.Errorf("Get(def) = %q, %v; want right, true", got, ok)
	}
	if _, ok := reloaded.Get("missing"); ok {
		t.Error("Get(missing) reported a value")
	}
}

func TestPutRejectsSeparators(t *testing.T) {
	m, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m.Put("bad\tkey", "left")
	m.Put("key", "bad\nvalue")
	if _, ok := m.Get("bad\tkey"); ok {
		t.Error("key with a tab was stored")
	}
	if _, ok := m.Get("key"); ok {
		t.Error("value with a newline was stored")
	}
}

func TestCorruptStateFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stateFileName), []byte("no separator here\n"), 0644); err != nil {
		t.Fatalf("failed to write state file: %v", err)
	}

	m, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := m.Get("no separator here"); ok {
		t.Error("corrupt record was loaded")
	}

	m.Put("k", "v")
	data, err := os.ReadFile(m.Path())
	if err != nil {
		t.Fatalf("failed to read state file: %v", err)
	}
	if string(data) != "k\tv\n" {
		t.Errorf("state file = %q, want %q", data, "k\tv\n")
	}
}
