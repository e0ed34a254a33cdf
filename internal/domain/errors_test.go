package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "rgefile.read",
		Kind: KindInvalidData,
		Path: "LCCO_E1000.rge",
		Line: 7,
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindInvalidData {
		t.Fatalf("expected kind %s", KindInvalidData)
	}
}

func TestOpErrorMessage(t *testing.T) {
	err := &OpError{Op: "rgefile.read", Kind: KindInvalidData, Path: "a.rge", Line: 3, Err: ErrInvalidData}
	msg := err.Error()
	for _, want := range []string{"rgefile.read", "invalid_data", "path=a.rge", "line=3"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}

	noLine := (&OpError{Op: "x", Kind: KindNotFound, Path: "p"}).Error()
	if strings.Contains(noLine, "line=") {
		t.Errorf("did not expect line in %q", noLine)
	}

	var nilErr *OpError
	if nilErr.Error() != "<nil>" {
		t.Errorf("expected <nil> for nil receiver")
	}
}

func TestIsKind(t *testing.T) {
	err := &OpError{
		Kind: KindInvalidConfig,
		Op:   "xmlstartup.parse",
	}

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(errors.New("plain"), KindInvalidConfig) {
		t.Fatalf("plain errors have no kind")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("select: %w", &OpError{Op: "usecase.select_set", Kind: KindOutOfRange, Err: ErrOutOfRange})
	if got := KindOf(wrapped); got != KindOutOfRange {
		t.Fatalf("expected %s, got %q", KindOutOfRange, got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Fatalf("expected empty kind, got %q", got)
	}
	if IsKind(nil, "") {
		t.Fatalf("nil error must not match the empty kind")
	}
}
