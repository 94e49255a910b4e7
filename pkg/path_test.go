package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSearchPath(t *testing.T) {
	flagDir := t.TempDir()
	envDir := t.TempDir()
	missing := filepath.Join(envDir, "missing")

	t.Setenv(PathEnv(), envDir+string(os.PathListSeparator)+missing)

	got := SearchPath(flagDir)

	if diff := cmp.Diff([]string{flagDir, envDir}, got); diff != "" {
		t.Errorf("SearchPath mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPath_Empty(t *testing.T) {
	t.Setenv(PathEnv(), "")

	if got := SearchPath(); len(got) != 0 {
		t.Errorf("SearchPath() = %v, want empty", got)
	}
}

func TestLookup(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	write := func(dir, name string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("1;"), 0o600); err != nil {
			t.Fatal(err)
		}

		return path
	}

	inSecond := write(second, "lib.ks")
	inBoth := write(first, "both.ks")
	write(second, "both.ks")

	search := []string{first, second}

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"found in later directory", "lib.ks", inSecond, true},
		{"earlier directory wins", "both.ks", inBoth, true},
		{"absolute path", inSecond, inSecond, true},
		{"missing", "nope.ks", "nope.ks", false},
		{"explicitly relative is not searched", "./lib.ks", "./lib.ks", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.input, search)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUserDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s dir %q does not end with %q", name, dir, Prefix())
		}
	}
}
