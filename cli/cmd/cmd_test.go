package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/kaleido/lang"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func readSources(t *testing.T, srcs []source) map[string]string {
	t.Helper()

	out := make(map[string]string)

	for _, src := range srcs {
		data, err := io.ReadAll(src)
		if err != nil {
			t.Fatal(err)
		}

		out[src.name] = string(data)
	}

	return out
}

func TestOpenSources_SearchPath(t *testing.T) {
	lib := t.TempDir()
	writeFile(t, lib, "lib.ks", "extern sin(x);")

	ctx := WithSettings(context.Background(), Settings{Search: []string{lib}})

	srcs, err := openSources(ctx, []string{"lib.ks"})
	if err != nil {
		t.Fatal(err)
	}
	defer closeSources(srcs)

	want := map[string]string{"lib.ks": "extern sin(x);"}
	if diff := cmp.Diff(want, readSources(t, srcs)); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenSources_Dedupe(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ks", "1;")

	link := filepath.Join(dir, "link.ks")
	if err := os.Symlink(path, link); err != nil {
		t.Skip("symlinks unsupported:", err)
	}

	srcs, err := openSources(context.Background(), []string{path, link, path, "-", "-"})
	if err != nil {
		t.Fatal(err)
	}
	defer closeSources(srcs)

	var names []string
	for _, src := range srcs {
		names = append(names, src.name)
	}

	if diff := cmp.Diff([]string{path, "<stdin>"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenSources_DefaultsToStdin(t *testing.T) {
	srcs, err := openSources(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(srcs) != 1 || srcs[0].name != "<stdin>" {
		t.Errorf("sources = %+v", srcs)
	}
}

func TestOpenSources_Missing(t *testing.T) {
	ctx := WithSettings(context.Background(), Settings{Search: []string{t.TempDir()}})

	_, err := openSources(ctx, []string{"missing.ks"})
	if !errors.Is(err, ErrOpenSource) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want ErrOpenSource wrapping ErrNotExist", err)
	}
}

func TestSettings(t *testing.T) {
	if got := settingsFrom(context.Background()); got.MaxDepth != lang.DefaultMaxDepth ||
		got.Precedence.String() != lang.DefaultPrecedence().String() {
		t.Errorf("default settings = %+v", got)
	}

	prec := lang.NewPrecedence()
	if err := prec.Set('+', 1); err != nil {
		t.Fatal(err)
	}

	ctx := WithSettings(context.Background(), Settings{Precedence: prec, MaxDepth: 2})

	p := lang.NewParser(strings.NewReader(""), settingsFrom(ctx).Options("x.ks")...)
	if got := p.Precedence().String(); got != "+=1" {
		t.Errorf("precedence = %q", got)
	}
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := ErrWriteOutput.Wrap(cause)

	if got, want := err.Error(), "write output: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, ErrWriteOutput) || !errors.Is(err, cause) {
		t.Error("error does not match its sentinel and cause")
	}

	if errors.Is(err, ErrOpenSource) {
		t.Error("error matches an unrelated sentinel")
	}
}

func TestError_Copies(t *testing.T) {
	base := ErrOpenSource.With(slog.String("name", "a.ks"))
	x := base.With(slog.Int("x", 1))
	_ = base.With(slog.Int("y", 2))

	if len(x.attrs) != 2 || x.attrs[1].Key != "x" {
		t.Errorf("attrs = %v", x.attrs)
	}

	if ErrOpenSource.err != nil || len(ErrOpenSource.attrs) != 0 {
		t.Error("builders mutated the sentinel")
	}

	if got := NewError("").Wrap(io.EOF).Error(); got != "EOF" {
		t.Errorf("Error() without message = %q", got)
	}

	if got := NewError("").Error(); got != "" {
		t.Errorf("empty Error() = %q", got)
	}
}
