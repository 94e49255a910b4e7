package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Prefix returns the base name used for the configuration and cache
// directories.
//
// It is the base name of the executable, except that the default output of
// the dlv debugger ("__debug_bin…") becomes [Name] and leading dots are
// removed.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d*$`): Name, // dlv default output
			regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			id = Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the cache directory path used for history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// userDir joins [Prefix] to the directory returned by base, falling back to
// home/fallback and then to the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// PathEnv is the environment variable holding the source search list.
func PathEnv() string { return EnvPrefix() + "PATH" }

// SearchPath returns the directories searched for relative source names:
// dirs in order, followed by the entries of [PathEnv]. Entries that are not
// existing directories are dropped.
func SearchPath(dirs ...string) []string {
	sep := string(os.PathListSeparator)

	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv())),
		mung.WithDelim(sep),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	var out []string

	for dir := range strings.SplitSeq(list, sep) {
		if dir != "" {
			out = append(out, dir)
		}
	}

	return out
}

// Lookup resolves name against the search list. Absolute names, names
// starting with "./" or "../", and names that exist relative to the working
// directory are returned unchanged.
func Lookup(name string, search []string) (string, bool) {
	if filepath.IsAbs(name) || isExplicitlyRelative(name) {
		return name, isFile(name)
	}

	if isFile(name) {
		return name, true
	}

	for _, dir := range search {
		if path := filepath.Join(dir, name); isFile(path) {
			return path, true
		}
	}

	return name, false
}

func isExplicitlyRelative(name string) bool {
	for _, p := range []string{"./", "../"} {
		if strings.HasPrefix(filepath.ToSlash(name), p) {
			return true
		}
	}

	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
