package util

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	quiet, err := NewLogger(false)
	if err != nil {
		t.Fatalf("NewLogger(false): %v", err)
	}
	if quiet.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be off unless verbose")
	}

	loud, err := NewLogger(true)
	if err != nil {
		t.Fatalf("NewLogger(true): %v", err)
	}
	if !loud.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be on when verbose")
	}
}
