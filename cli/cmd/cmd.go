package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kaleido/lang"
	"github.com/ardnew/kaleido/log"
	"github.com/ardnew/kaleido/pkg"
)

type (
	contextKey  struct{}
	settingsKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Settings is the parser configuration shared by all commands.
type Settings struct {
	Precedence   *lang.Precedence
	Search       []string // directories searched for relative source names
	MaxDepth     int
	CommaNumbers bool
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		Precedence: lang.DefaultPrecedence(),
		MaxDepth:   lang.DefaultMaxDepth,
	}
}

// Options returns the parser options for a source with the given name.
func (s Settings) Options(source string) []lang.Option {
	return []lang.Option{
		lang.WithPrecedence(s.Precedence),
		lang.WithMaxDepth(s.MaxDepth),
		lang.WithCommaNumbers(s.CommaNumbers),
		lang.WithSource(source),
		lang.WithLogger(log.Default().With(slog.String("source", source))),
	}
}

// WithSettings returns a new context.Context containing s.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// settingsFrom returns the settings stored in ctx by [WithSettings], or
// [DefaultSettings].
func settingsFrom(ctx context.Context) Settings {
	if s, ok := ctx.Value(settingsKey{}).(Settings); ok {
		return s
	}

	return DefaultSettings()
}

// stdinSource is the special source name for reading from stdin.
const stdinSource = "-"

// source is an opened input with the name recorded in positions.
type source struct {
	io.ReadCloser

	name string
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens each named source in order.
//
// Relative names are resolved against the search list from ctx. Names that
// refer to a file already opened are skipped, and every occurrence of "-"
// after the first is ignored. No names selects stdin.
// On error, the sources opened so far are closed.
func openSources(ctx context.Context, names []string) (_ []source, err error) {
	if len(names) == 0 {
		names = []string{stdinSource}
	}

	search := settingsFrom(ctx).Search
	seen := make(map[fileKey]struct{})
	srcs := make([]source, 0, len(names))

	defer func() {
		if err != nil {
			closeSources(srcs)
		}
	}()

	stdin := false

	for _, name := range names {
		if name == stdinSource {
			if !stdin {
				stdin = true

				srcs = append(srcs, source{io.NopCloser(os.Stdin), "<stdin>"})
			}

			continue
		}

		path, ok := pkg.Lookup(name, search)
		if !ok {
			return nil, ErrOpenSource.
				With(slog.String("source", name)).
				Wrap(os.ErrNotExist)
		}

		file, unique, err := openUniqueFile(path, seen)
		if err != nil {
			return nil, ErrOpenSource.With(slog.String("source", name)).Wrap(err)
		}

		if !unique {
			log.DebugContext(ctx, "skipping duplicate source",
				slog.String("source", name))

			continue
		}

		srcs = append(srcs, source{file, name})
	}

	return srcs, nil
}

func closeSources(srcs []source) {
	for _, src := range srcs {
		_ = src.Close()
	}
}

// openUniqueFile opens the file at path unless its device/inode pair has
// been seen before.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (io.ReadCloser, bool, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false, err
	}

	return file, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
