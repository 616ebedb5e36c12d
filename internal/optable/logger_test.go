package optable

import (
	"testing"

	"go.uber.org/zap"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	l := zap.NewNop()
	SetLogger(l)
	if Logger() != l {
		t.Fatal("SetLogger did not install the logger")
	}

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("nil SetLogger must restore the no-op default, not disable logging")
	}
}
