// # internal/rename/rewriter_test.go
package rename

import (
	"reflect"
	"strings"
	"testing"

	"basmin/internal/scan"
)

func rewriterFor(t *testing.T, names ...string) *Rewriter {
	t.Helper()
	return NewRewriter(Allocate(names), scan.NewDialect("PROC", "#"))
}

func TestRewriteDefinitionLine(t *testing.T) {
	r := rewriterFor(t, "ALPHA", "BETA")
	got := r.Rewrite([]string{"10 PROC ALPHA", "20 PROC BETA"})
	want := []string{"10 PROC A", "20 PROC B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRewritePreservesLabelAndTrailingWhitespace(t *testing.T) {
	r := rewriterFor(t, "ALPHA")
	got := r.Rewrite([]string{"  10  PROC ALPHA   "})
	if got[0] != "  10  PROC A   " {
		t.Errorf("label prefix or trailing whitespace not preserved: %q", got[0])
	}
}

func TestRewriteCallSites(t *testing.T) {
	r := rewriterFor(t, "ALPHA")
	got := r.Rewrite([]string{
		"GOSUB ALPHA: PRINT 1",
		"IF X THEN ALPHA",
		"GOSUB alpha",
	})
	want := []string{
		"GOSUB A: PRINT 1",
		"IF X THEN A",
		"GOSUB A",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRewriteLeavesCommentsAndBlanks(t *testing.T) {
	r := rewriterFor(t, "ALPHA")
	lines := []string{"# PROC ALPHA", "  # ALPHA here", "", "   "}
	got := r.Rewrite(lines)
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("comment or blank lines were modified: %v", got)
	}
}

func TestRewriteWordBoundary(t *testing.T) {
	r := rewriterFor(t, "ALPHA")
	got := r.Rewrite([]string{"ALPHABET = 5"})
	if got[0] != "ALPHABET = 5" {
		t.Errorf("longer identifier corrupted: %q", got[0])
	}
}

func TestRewriteBroaderThanCallPattern(t *testing.T) {
	// The rewriter substitutes every whole-word mention, including
	// positions the call scanner would not report.
	r := rewriterFor(t, "ALPHA")
	got := r.Rewrite([]string{"X = FN(ALPHA)+1"})
	if got[0] != "X = FN(A)+1" {
		t.Errorf("expected broad whole-word replacement, got %q", got[0])
	}
}

func TestRewriteOverlappingNames(t *testing.T) {
	// ALPHA is a prefix of ALPHABET; the longer alternative must win
	// at a shared position.
	r := rewriterFor(t, "ALPHA", "ALPHABET")
	m := Allocate([]string{"ALPHA", "ALPHABET"})
	got := r.Rewrite([]string{"GOSUB ALPHABET: GOSUB ALPHA"})
	want := "GOSUB " + m["ALPHABET"] + ": GOSUB " + m["ALPHA"]
	if got[0] != want {
		t.Errorf("expected %q, got %q", want, got[0])
	}
}

func TestRewriteNoDoubleSubstitution(t *testing.T) {
	// BET's short name must not be re-substituted when it lands next to
	// text forming another original name; replacements are computed
	// against the original line only.
	names := []string{"B", "BET"}
	m := Allocate(names)
	if m["B"] != "B" || m["BET"] != "BE" {
		t.Fatalf("unexpected mapping: %v", m)
	}
	r := NewRewriter(m, scan.NewDialect("PROC", "#"))
	got := r.Rewrite([]string{"GOSUB BET: GOSUB B"})
	if got[0] != "GOSUB BE: GOSUB B" {
		t.Errorf("expected single-pass substitution, got %q", got[0])
	}
}

func TestRewriteEmptyMapping(t *testing.T) {
	r := NewRewriter(Mapping{}, scan.NewDialect("PROC", "#"))
	lines := []string{"10 PROC ALPHA", "GOSUB ALPHA"}
	got := r.Rewrite(lines)
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("empty mapping must leave text untouched: %v", got)
	}
}

func TestRescanIdempotence(t *testing.T) {
	// Scanning the rewritten text with the short names yields an index
	// with the same per-name counts as the original.
	d := scan.NewDialect("PROC", "#")
	text := "10 PROC ALPHA\n20 GOSUB ALPHA\n30 PROC BETA\n40 PROC ALPHA\n"
	lines := strings.Split(text, "\n")

	defs := scan.Definitions(lines, d)
	m := Allocate(defs.Names())
	rewritten := NewRewriter(m, d).Rewrite(lines)

	newDefs := scan.Definitions(rewritten, d)
	if len(newDefs) != len(defs) {
		t.Fatalf("definition count changed: %v vs %v", newDefs, defs)
	}
	for name, idx := range defs {
		short := m[name]
		if !reflect.DeepEqual(newDefs[short], idx) {
			t.Errorf("%s: expected %v at %s, got %v", name, idx, short, newDefs[short])
		}
		if _, still := newDefs[name]; still && name != short {
			t.Errorf("original name %s still defined after rewrite", name)
		}
	}
}
