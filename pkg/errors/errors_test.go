package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	e := New(ErrProcessExit, "Build failed")
	if e.Code != ErrProcessExit || e.Message != "Build failed" {
		t.Fatalf("unexpected Error fields: %+v", e)
	}
	if e.Suggestion == "" {
		t.Error("expected default suggestion")
	}
	if len(e.Stack) == 0 {
		t.Error("expected stack frames captured")
	}
	if !strings.Contains(e.Error(), "Build failed") {
		t.Error("Error() should contain message")
	}

	base := stdErrors.New("boom")
	w := Wrap(base, ErrUnknown, "Something happened")
	if w.Cause == nil || !strings.Contains(w.Error(), "boom") {
		t.Error("wrapped error should include cause")
	}
	if !stdErrors.Is(w, base) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrUnknown, "x") != nil {
		t.Fatal("Wrap(nil) should be nil")
	}
}

func TestWrapExistingPrependsMessage(t *testing.T) {
	inner := New(ErrTimeout, "deadline reached")
	w := Wrap(inner, ErrUnknown, "adb version")
	if w.Code != ErrTimeout {
		t.Fatalf("code should be preserved, got %s", w.Code)
	}
	if w.Message != "adb version: deadline reached" {
		t.Fatalf("unexpected message %q", w.Message)
	}
}

func TestRecoverableAndContext(t *testing.T) {
	e := New(ErrStoreCorrupted, "store unreadable").WithContext("path", "/tmp/x")
	if !e.Recoverable {
		t.Error("ErrStoreCorrupted should be recoverable")
	}
	if e.Context["path"] != "/tmp/x" {
		t.Error("context key not set")
	}
	if New(ErrProcessStart, "no java").Recoverable {
		t.Error("ErrProcessStart should not be recoverable")
	}
}

func TestCodeHelpers(t *testing.T) {
	err := fmt.Errorf("running build: %w", New(ErrProcessExit, "exit 2"))
	if CodeOf(err) != ErrProcessExit {
		t.Fatalf("CodeOf = %s", CodeOf(err))
	}
	if !HasCode(err, ErrProcessExit) {
		t.Error("HasCode should find ErrProcessExit")
	}
	if HasCode(err, ErrTimeout) {
		t.Error("HasCode should not match a different code")
	}
	if CodeOf(stdErrors.New("plain")) != ErrUnknown {
		t.Error("plain errors map to ErrUnknown")
	}
}

func TestDetailsAndSuggestion(t *testing.T) {
	e := New(ErrProcessExit, "bundletool failed").WithDetails("stderr text").WithSuggestion("try again")
	if !strings.Contains(e.Error(), "stderr text") {
		t.Error("details should be rendered")
	}
	if e.Suggestion != "try again" {
		t.Error("suggestion not overridden")
	}
	if getDefaultSuggestion(ErrorCode("NOPE")) == "" {
		t.Error("unknown codes still get a fallback suggestion")
	}
}
