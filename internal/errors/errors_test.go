package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "listing not found")
		if err.Error() != "[NOT_FOUND] listing not found" {
			t.Errorf("expected [NOT_FOUND] listing not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		expected := "[INTERNAL_ERROR] internal failure: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeDecode, "invalid utf-8")
		if !IsCode(err, CodeDecode) {
			t.Error("expected IsCode to return true for CodeDecode")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		if !IsCode(err, CodeInternal) {
			t.Error("expected IsCode to return true for wrapped CodeInternal")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := New(CodeNotFound, "listing not found")
		err = AddContext(err, CtxPath, "tsbv2.bas")
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected a DomainError")
		}
		if de.Context[CtxPath] != "tsbv2.bas" {
			t.Errorf("expected context path tsbv2.bas, got %v", de.Context[CtxPath])
		}
	})
}
