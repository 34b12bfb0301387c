package validate

import (
	"errors"
	"testing"
)

func TestFieldErrorCarriesField(t *testing.T) {
	err := Positive("effort", 0)
	if err == nil {
		t.Fatal("expected error for zero value")
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fe.Field != "effort" {
		t.Errorf("field = %q, want effort", fe.Field)
	}
}

func TestBounds(t *testing.T) {
	if err := NonNegative("reach", 0); err != nil {
		t.Errorf("zero is valid for NonNegative: %v", err)
	}
	if err := NonNegative("reach", -1); err == nil {
		t.Error("expected error for -1")
	}
	if err := Percentage("confidence", 100); err != nil {
		t.Errorf("100 is a valid percentage: %v", err)
	}
	if err := Percentage("confidence", 100.1); err == nil {
		t.Error("expected error above 100")
	}
	if err := IntRange("time_horizon", 121, 1, 120); err == nil {
		t.Error("expected error above range")
	}
	if err := Range("discount_rate", 50, 0, 50); err != nil {
		t.Errorf("upper bound is inclusive: %v", err)
	}
}
