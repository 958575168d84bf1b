package herr_test

import (
	stderrors "errors"
	"testing"

	"github.com/shadow53/hoard-go/pkg/herr"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    herr.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "lock_held",
			code:    herr.ErrLockHeld,
			message: "another invocation is running",
			wantStr: "[LOCK_HELD] another invocation is running",
		},
		{
			name:    "config_parse",
			code:    herr.ErrConfigParse,
			message: "unknown key \"foo\"",
			wantStr: "[CONFIG_PARSE] unknown key \"foo\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := herr.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("Code = %v, want %v", err.Code, tt.code)
			}
			if err.Error() != tt.wantStr {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantStr)
			}
			if err.Details == nil {
				t.Error("Details should be initialized, not nil")
			}
		})
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if herr.Wrap(nil, herr.ErrIoFailure, "x") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
	if herr.Wrapf(nil, herr.ErrIoFailure, "x %d", 1) != nil {
		t.Error("Wrapf(nil, ...) should return nil")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	wrapped := herr.Wrap(cause, herr.ErrIoFailure, "writing checksum file")

	if !stderrors.Is(wrapped, cause) {
		t.Error("errors.Is should see through to the wrapped cause")
	}
	if got := wrapped.Error(); got != "[IO_FAILURE] writing checksum file: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCodeAndIs(t *testing.T) {
	err := herr.New(herr.ErrRemoteOperation, "host B changed the hoard")

	if herr.Code(err) != herr.ErrRemoteOperation {
		t.Errorf("Code() = %v", herr.Code(err))
	}
	if !herr.Is(err, herr.ErrRemoteOperation) {
		t.Error("Is() should match the same code")
	}
	if herr.Is(err, herr.ErrLockHeld) {
		t.Error("Is() should not match a different code")
	}

	// A plain error is ErrUnknown, never a consistency failure.
	plain := stderrors.New("boom")
	if herr.Code(plain) != herr.ErrUnknown {
		t.Errorf("Code(plain) = %v, want ErrUnknown", herr.Code(plain))
	}
}

func TestIsConsistency(t *testing.T) {
	consistency := []herr.ErrorCode{herr.ErrLastPathsMismatch, herr.ErrRemoteOperation, herr.ErrUnexpectedChange}
	for _, code := range consistency {
		if !herr.IsConsistency(herr.New(code, "")) {
			t.Errorf("%v should be classified as a consistency failure", code)
		}
	}

	notConsistency := []herr.ErrorCode{herr.ErrConfigParse, herr.ErrLockHeld, herr.ErrEditorExit}
	for _, code := range notConsistency {
		if herr.IsConsistency(herr.New(code, "")) {
			t.Errorf("%v should not be classified as a consistency failure", code)
		}
	}
}

func TestWithDetailChaining(t *testing.T) {
	err := herr.New(herr.ErrAmbiguousCondition, "ambiguous").
		WithDetail("pile", "vimrc").
		WithDetails(map[string]interface{}{"candidates": []string{"a", "b"}})

	if err.Details["pile"] != "vimrc" {
		t.Errorf("Details[pile] = %v", err.Details["pile"])
	}
	if _, ok := err.Details["candidates"]; !ok {
		t.Error("WithDetails should merge in candidates")
	}

	got := herr.Details(err)
	if got["pile"] != "vimrc" {
		t.Errorf("herr.Details helper mismatch: %v", got)
	}
}
