package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestContextRoundTrip(t *testing.T) {
	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)

	if got := FromContext(ctx); got != l {
		t.Error("expected the stored logger back")
	}
	if got := FromContextOr(ctx, zap.NewNop()); got != l {
		t.Error("context logger must win over the fallback")
	}
}

func TestFromContextOrFallsBack(t *testing.T) {
	fallback := zap.NewExample()
	if got := FromContextOr(context.Background(), fallback); got != fallback {
		t.Error("expected the fallback when the context carries no logger")
	}
	if got := FromContextOr(context.Background(), nil); got == nil {
		t.Error("nil fallback must degrade to a usable logger")
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil {
		t.Fatal("expected a non-nil logger")
	}
	// Must be safe to use.
	l.Info("ignored")
}
