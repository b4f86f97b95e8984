package errors

import "testing"

func TestError_Format(t *testing.T) {
	err := NewNotFound("combination")
	want := "NOT_FOUND: not found: combination"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := NewInvalidRequest("bad date")
	if !Is(err, ErrInvalidRequest) {
		t.Errorf("Is(err, ErrInvalidRequest) = false, want true")
	}
	if Is(err, ErrNotFound) {
		t.Errorf("Is(err, ErrNotFound) = true, want false")
	}
	if Is(nil, ErrInternal) {
		t.Errorf("Is(nil, ErrInternal) = true, want false")
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)
	if err.Message != "internal error" {
		t.Fatalf("Message = %q, want %q", err.Message, "internal error")
	}
}
