/*
format.go - Statement format registration and lookup

PURPOSE:
  Maps a format name ("text", "html") to its Template so callers can pick
  an output format from configuration or a command-line flag. The built-in
  formats register themselves in init(); other packages may add their own.

USAGE:
  rental.RegisterFormat("csv", csvTemplate{})
  t, err := rental.LookupFormat("csv")

SEE ALSO:
  - statement.go: Template interface and the built-in templates
*/
package rental

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Format names a statement output format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// =============================================================================
// FORMAT REGISTRY
// =============================================================================

var (
	formatRegistry = make(map[Format]Template)
	formatMu       sync.RWMutex
)

func init() {
	RegisterFormat(FormatText, TextTemplate{})
	RegisterFormat(FormatHTML, HTMLTemplate{})
}

func normalizeFormat(f Format) Format {
	return Format(strings.ToLower(strings.TrimSpace(string(f))))
}

// RegisterFormat adds or replaces the template for f. Names are
// case-insensitive, so "Markdown" and "markdown" share one entry.
func RegisterFormat(f Format, t Template) {
	formatMu.Lock()
	defer formatMu.Unlock()
	formatRegistry[normalizeFormat(f)] = t
}

// UnregisterFormat removes f. Removing an unknown name is a no-op.
func UnregisterFormat(f Format) {
	formatMu.Lock()
	defer formatMu.Unlock()
	delete(formatRegistry, normalizeFormat(f))
}

// LookupFormat finds the template for f. Names are case-insensitive.
func LookupFormat(f Format) (Template, error) {
	formatMu.RLock()
	defer formatMu.RUnlock()
	t, ok := formatRegistry[normalizeFormat(f)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	return t, nil
}

// Formats returns every registered format name, sorted.
func Formats() []Format {
	formatMu.RLock()
	defer formatMu.RUnlock()
	out := make([]Format, 0, len(formatRegistry))
	for f := range formatRegistry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
