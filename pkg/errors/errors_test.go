package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidWall, "unknown wall: %s", "N9")

	if err.Code != ErrCodeInvalidWall {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidWall)
	}
	if err.Message != "unknown wall: N9" {
		t.Errorf("Message = %q", err.Message)
	}
	want := "INVALID_WALL: unknown wall: N9"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "load %s", "kitchen.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	want := "FILE_NOT_FOUND: load kitchen.toml: no such file"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidPlan, "bad plan")
	wrapped := fmt.Errorf("outer: %w", err)

	if !Is(wrapped, ErrCodeInvalidPlan) {
		t.Error("Is() should find the code through wrapping")
	}
	if Is(wrapped, ErrCodeInternal) {
		t.Error("Is() matched the wrong code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInvalidPlan) {
		t.Error("Is() matched a plain error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeWallNotFound, "x")); got != ErrCodeWallNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeWallNotFound)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: webp")
	if got := UserMessage(err); got != "invalid format: webp" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
