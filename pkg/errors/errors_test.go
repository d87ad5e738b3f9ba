package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValue, "missing foo")
	if base.Code() != CodeValue {
		t.Fatalf("expected value code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}
	if got := base.Error(); got != "VALUE_ERROR: missing foo" {
		t.Fatalf("unexpected error string %q", got)
	}

	withDetails := base.WithDetails(map[string]string{"field": "foo"})
	if withDetails.Details() == nil {
		t.Fatal("expected details to be attached")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeType, "expected %s, got %s", "Product", "nil")
	if err.Message() != "expected Product, got nil" {
		t.Fatalf("unexpected message %q", err.Message())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	wrapped := Wrap(CodeDependency, cause, "persist purchase")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("expected wrapped error to match cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", wrapped.Code())
	}

	if got := Wrap(CodeValue, nil, "no cause"); got.Unwrap() != nil {
		t.Fatal("wrap with nil cause should have no cause")
	}
}

func TestAsFindsTypedError(t *testing.T) {
	inner := New(CodeValue, "quantity below one")
	outer := fmt.Errorf("checkout: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodeValue {
		t.Fatalf("unexpected code %s", typed.Code())
	}

	if As(fmt.Errorf("plain")) != nil {
		t.Fatal("plain error should not surface a typed error")
	}
	if As(nil) != nil {
		t.Fatal("nil error should not surface a typed error")
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeType, "not a product"))
	if !IsCode(err, CodeType) {
		t.Fatal("expected type code match")
	}
	if IsCode(err, CodeValue) {
		t.Fatal("did not expect value code match")
	}
}
