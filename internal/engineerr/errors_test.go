package engineerr

import (
	"errors"
	"testing"
)

func TestErrorMessageIncludesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, KindInternal, "something broke")

	want := "internal: something broke: boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, KindInternal, "wrapped")

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestIsMatchesByKindOnly(t *testing.T) {
	a := New(KindInvalidInput, "reason one")
	b := New(KindInvalidInput, "reason two")

	if !errors.Is(a, b) {
		t.Error("expected two errors with the same Kind to match via errors.Is")
	}

	c := New(KindInternal, "reason one")
	if errors.Is(a, c) {
		t.Error("did not expect errors of different Kind to match")
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	plain := errors.New("plain error")
	if got := KindOf(plain); got != KindInternal {
		t.Errorf("expected KindOf a plain error to default to KindInternal, got %v", got)
	}
}

func TestKindOfExtractsWrappedKind(t *testing.T) {
	err := Newf(KindTimedOut, "took too long: %d", 5)
	if got := KindOf(err); got != KindTimedOut {
		t.Errorf("expected KindOf to report KindTimedOut, got %v", got)
	}
}
