package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "basmin.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadRuns(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{
			ProjectKey:      "tsb",
			Timestamp:       base,
			InputPath:       "tsbv2.bas",
			OutputPath:      "tsbv2_shortened.bas",
			ProcedureCount:  12,
			DefinitionCount: 14,
			CallCount:       31,
			CharactersSaved: 212,
			InputBytes:      4096,
			OutputBytes:     3884,
		},
		{
			ProjectKey:      "tsb",
			Timestamp:       base.Add(time.Hour),
			InputPath:       "tsbv2.bas",
			ProcedureCount:  12,
			DefinitionCount: 14,
			CallCount:       33,
			CharactersSaved: 220,
		},
	}
	for _, r := range runs {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	loaded, err := store.LoadRuns("tsb", time.Time{})
	if err != nil {
		t.Fatalf("LoadRuns failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(loaded))
	}
	if loaded[0].RunID == "" || loaded[1].RunID == "" {
		t.Error("expected generated run ids")
	}
	if loaded[0].RunID == loaded[1].RunID {
		t.Error("run ids must be unique")
	}
	if loaded[0].CharactersSaved != 212 || loaded[1].CharactersSaved != 220 {
		t.Errorf("unexpected savings: %d, %d", loaded[0].CharactersSaved, loaded[1].CharactersSaved)
	}
	if !loaded[0].Timestamp.Before(loaded[1].Timestamp) {
		t.Error("runs must be ordered by timestamp")
	}
}

func TestLoadRunsSince(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.SaveRun(Run{
			Timestamp:       base.Add(time.Duration(i) * time.Hour),
			InputPath:       "tsbv2.bas",
			ProcedureCount:  1,
			CharactersSaved: i,
		})
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	loaded, err := store.LoadRuns("", base.Add(time.Hour))
	if err != nil {
		t.Fatalf("LoadRuns failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 runs since cutoff, got %d", len(loaded))
	}
}

func TestLoadRunsProjectIsolation(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveRun(Run{ProjectKey: "a", InputPath: "a.bas"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRun(Run{ProjectKey: "b", InputPath: "b.bas"}); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadRuns("a", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].InputPath != "a.bas" {
		t.Errorf("expected only project a runs, got %v", loaded)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("expected error for directory path")
	}
}
