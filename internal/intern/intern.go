// Package intern keeps a single canonical copy of every flag spelling seen by
// the registry, plus a prebuilt table of single-character short flags so the
// cluster walk can look up "-x" without building a string per character.
package intern

import (
	"sync"
)

// Table interns flag spellings. Safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	strings map[string]string
}

// NewTable creates a table with the given initial capacity.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = 64
	}
	return &Table{strings: make(map[string]string, capacity)}
}

// Intern returns the canonical copy of s.
func (t *Table) Intern(s string) string {
	t.mu.RLock()
	if interned, ok := t.strings[s]; ok {
		t.mu.RUnlock()
		return interned
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if interned, ok := t.strings[s]; ok {
		return interned
	}
	t.strings[s] = s
	return s
}

// Preload interns every string in ss.
func (t *Table) Preload(ss []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range ss {
		t.strings[s] = s
	}
}

// shortFlags holds "-<c>" for every printable ASCII byte.
var shortFlags [128]string

// ShortFlag returns "-" followed by c. Printable ASCII bytes come from a
// prebuilt table; anything else goes through the global table.
func ShortFlag(c byte) string {
	if c < 128 && shortFlags[c] != "" {
		return shortFlags[c]
	}
	return Default.Intern("-" + string(rune(c)))
}

// commonFlags are preloaded into the default table.
var commonFlags = []string{
	"-h", "--help", "-v", "--version", "--verbose", "-q", "--quiet",
	"-o", "--output", "-i", "--input", "-f", "--force", "-d", "--debug",
}

// Default is the process-wide table used by the registry.
var Default *Table

//nolint:gochecknoinits // the short flag table and default table are built once
func init() {
	for c := byte('!'); c < 127; c++ {
		if c == '-' {
			continue
		}
		shortFlags[c] = "-" + string(rune(c))
	}
	Default = NewTable(128)
	Default.Preload(commonFlags)
}

// Intern interns s in the default table.
func Intern(s string) string {
	return Default.Intern(s)
}
