package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/ardnew/kaleido/lang"
)

func TestRun_InvalidOperator(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)

	err := Run(context.Background(), func(code int) {
		t.Fatalf("exit(%d) called", code)
	}, "--binop", "a=5", "prec")

	if !errors.Is(err, lang.ErrInvalidOperator) {
		t.Errorf("error = %v, want ErrInvalidOperator", err)
	}
}
