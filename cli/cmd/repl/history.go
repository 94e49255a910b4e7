package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

const baseHistory = "history.utf8"

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

func (e HistoryEntry) encode() string { return e.Mode.prefix() + e.Line }

// key identifies e in the dedupe index.
func (e HistoryEntry) key() uint64 { return xxh3.HashString(e.encode()) }

// History manages command history with file persistence.
//
// Entries are unique by line and mode: writing an existing entry moves it to
// the end.
type History struct {
	path    string
	entries []HistoryEntry
	index   map[uint64]struct{}
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
// An empty path keeps history in memory only.
func NewHistory(path string) *History {
	return &History{path: path, index: make(map[uint64]struct{})}
}

// Load reads history entries from the history file.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	clear(h.index)

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := HistoryEntry{Line: line, Mode: modeInput}

		for _, mode := range []inputMode{modeInput, modeCtrl} {
			if s, ok := strings.CutPrefix(line, mode.prefix()); ok {
				entry = HistoryEntry{Line: s, Mode: mode}

				break
			}
		}

		// A later duplicate wins.
		if _, dup := h.index[entry.key()]; dup {
			h.remove(entry)
		}

		h.add(entry)
	}

	return scanner.Err()
}

// WriteWithMode appends a new entry to the history with the specified mode.
func (h *History) WriteWithMode(line string, mode inputMode) (int, error) {
	entry := HistoryEntry{Line: strings.TrimSpace(line), Mode: mode}
	if entry.Line == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return len(entry.Line), nil
	}

	if _, dup := h.index[entry.key()]; dup {
		h.remove(entry)
		h.add(entry)

		return h.rewriteFile()
	}

	h.add(entry)

	if h.path == "" {
		return len(entry.Line), nil
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(entry.encode() + "\n")
}

// add appends entry. Must be called with h.mu held.
func (h *History) add(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
	h.index[entry.key()] = struct{}{}
}

// remove deletes entry. Must be called with h.mu held.
func (h *History) remove(entry HistoryEntry) {
	for i, e := range h.entries {
		if e == entry {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)

			break
		}
	}

	delete(h.index, entry.key())
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]HistoryEntry, len(h.entries))
	copy(result, h.entries)

	return result
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	if h.path == "" {
		return 0, nil
	}

	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	total := 0

	for _, entry := range h.entries {
		n, err := w.WriteString(entry.encode() + "\n")
		if err != nil {
			return total, err
		}

		total += n
	}

	return total, w.Flush()
}
