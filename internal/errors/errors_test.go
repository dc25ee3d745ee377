package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap_PreservesCodeAndChain(t *testing.T) {
	base := ConfigInvalid("alpha out of range")
	wrapped := Wrap(base, "loading study configuration")

	if GetCode(wrapped) != CodeConfigInvalid {
		t.Errorf("code %s, want %s", GetCode(wrapped), CodeConfigInvalid)
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
}

func TestWrap_ForeignError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	wrapped := Wrapf(cause, "saving run %s", "abc")

	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("foreign causes get %s, got %s", CodeInternalError, GetCode(wrapped))
	}
	if !errors.Is(wrapped, cause) {
		t.Error("cause lost in wrapping")
	}
	if Wrap(nil, "no-op") != nil {
		t.Error("wrapping nil should stay nil")
	}
}
