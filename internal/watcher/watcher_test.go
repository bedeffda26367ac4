// # internal/watcher/watcher_test.go
package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDirectoryMode(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 1)
	w, err := NewWatcher(100*time.Millisecond, 100, []string{"*.bas"}, []string{"*.tmp"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	testFile := filepath.Join(tmpDir, "prog.bas")
	os.WriteFile(testFile, []byte("10 PROC ALPHA\n"), 0644)

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected to find %s in changed files %v", testFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timed out waiting for file change event")
	}

	// Files outside the include globs are ignored.
	otherFile := filepath.Join(tmpDir, "scratch.tmp")
	os.WriteFile(otherFile, []byte("noise"), 0644)

	select {
	case paths := <-changedFiles:
		for _, p := range paths {
			if filepath.Base(p) == "scratch.tmp" {
				t.Error("Excluded file triggered event")
			}
		}
	case <-time.After(500 * time.Millisecond):
		// Expected
	}
}

func TestWatcherSingleFileMode(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "prog.bas")
	sibling := filepath.Join(tmpDir, "other.bas")
	if err := os.WriteFile(target, []byte("10 PROC ALPHA\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sibling, []byte("20 PROC BETA\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changedFiles := make(chan []string, 4)
	w, err := NewWatcher(50*time.Millisecond, 100, []string{"*.bas"}, nil, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{target}); err != nil {
		t.Fatal(err)
	}

	// A sibling write must not trigger; only the watched file does.
	os.WriteFile(sibling, []byte("20 PROC BETA: X\n"), 0644)
	os.WriteFile(target, []byte("10 PROC ALPHA: X\n"), 0644)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case paths := <-changedFiles:
			for _, p := range paths {
				if filepath.Base(p) == "other.bas" {
					t.Fatalf("sibling file triggered event: %v", paths)
				}
			}
			for _, p := range paths {
				if filepath.Base(p) == "prog.bas" {
					return
				}
			}
		case <-deadline:
			t.Fatal("Timed out waiting for watched file event")
		}
	}
}

func TestWatcherMissingPath(t *testing.T) {
	w, err := NewWatcher(50*time.Millisecond, 100, nil, nil, func([]string) {})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{filepath.Join(t.TempDir(), "missing.bas")}); err == nil {
		t.Error("expected error for missing watch path")
	}
}
