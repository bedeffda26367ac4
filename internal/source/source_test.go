// # internal/source/source_test.go
package source

import (
	"os"
	"path/filepath"
	"testing"

	"basmin/internal/errors"
)

func TestRoundTrip(t *testing.T) {
	content := "10 PROC ALPHA\n20 GOSUB ALPHA\n"
	l := New(content)

	if l.LineCount() != 3 {
		t.Errorf("expected 3 split elements (trailing newline), got %d", l.LineCount())
	}
	if l.Content() != content {
		t.Errorf("round trip changed content: %q", l.Content())
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "prog.bas")
	if err := os.WriteFile(in, []byte("10 PROC ALPHA\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(in)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out := filepath.Join(dir, "prog_shortened.bas")
	if err := l.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "10 PROC ALPHA\n" {
		t.Errorf("unexpected saved content: %q", string(data))
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bas"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestLoadInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "binary.bas")
	if err := os.WriteFile(in, []byte{0x10, 0xff, 0xfe, 0x01}, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(in)
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
	if !errors.IsCode(err, errors.CodeDecode) {
		t.Errorf("expected DECODE_ERROR, got %v", err)
	}
}
