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
		Op:   "covidapi.fetch",
		Kind: KindTransient,
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindTransient {
		t.Fatalf("expected kind %s, got %s", KindTransient, got.Kind)
	}
}

func TestOpErrorMessageIncludesPath(t *testing.T) {
	err := &OpError{
		Op:   "parquetstore.write",
		Kind: KindExecution,
		Path: "data/MX/2023-09-01.parquet",
		Err:  ErrExecution,
	}
	msg := err.Error()
	for _, want := range []string{"parquetstore.write", "execution", "data/MX/2023-09-01.parquet"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in message, got %q", want, msg)
		}
	}
}

func TestIsKind(t *testing.T) {
	err := &OpError{Op: "envconfig.load", Kind: KindInvalidConfig, Err: ErrInvalidConfig}

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("expected IsKind to reject other kinds")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsKind(wrapped, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match through wrapping")
	}

	if IsKind(errors.New("plain"), KindExecution) {
		t.Fatalf("expected IsKind=false for non-OpError")
	}
}
