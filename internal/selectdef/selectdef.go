/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package selectdef manages the engine's master roster file (select.def):
// finding, adding, and reordering character entries. Entries in [Characters]
// are bare lines ("kfm, stages/kfm.def, order=2"), not key/value pairs, so
// this package keeps its own line-preserving model. Writes go through the
// same atomic-replace discipline as definition-file repairs.
package selectdef

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fightkeep/fightkeep/pkg/safeio"
)

// Entry is one character line in [Characters].
type Entry struct {
	Name   string // first comma field, as authored
	Params string // remainder of the line after the name, including commas
	Line   int
}

// List is a loaded select.def. Untouched lines survive writes verbatim.
type List struct {
	path     string
	lines    []string // each retains its original ending
	loadHash string
}

// Load reads a select.def from disk.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-selected roster path
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &List{
		path:     path,
		lines:    splitKeepEndings(string(data)),
		loadHash: safeio.ContentHash(data),
	}, nil
}

// Entries returns the character entries in file order. randomselect slots
// are not entries.
func (l *List) Entries() []Entry {
	var entries []Entry
	for _, idx := range l.characterLines() {
		text := strings.TrimSpace(stripEnding(l.lines[idx]))
		name, params := splitEntry(text)
		if strings.EqualFold(name, "randomselect") {
			continue
		}
		entries = append(entries, Entry{Name: name, Params: params, Line: idx})
	}
	return entries
}

// FindEntry locates a character by name, ignoring case.
func (l *List) FindEntry(name string) (Entry, bool) {
	for _, e := range l.Entries() {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// AddCharacter appends a character line at the end of [Characters]. Adding a
// name that is already registered is an error.
func (l *List) AddCharacter(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("empty character name")
	}
	if _, exists := l.FindEntry(name); exists {
		return fmt.Errorf("%q is already registered", name)
	}

	section, last, ok := l.charactersSpan()
	if !ok {
		return errors.New("no [Characters] section")
	}
	insertAt := section + 1
	if last >= 0 {
		insertAt = last + 1
	}

	ending := lineEndingOf(l.lines)
	if insertAt > 0 && !strings.HasSuffix(l.lines[insertAt-1], "\n") {
		l.lines[insertAt-1] += ending
	}
	line := name + ending
	l.lines = append(l.lines[:insertAt], append([]string{line}, l.lines[insertAt:]...)...)
	return nil
}

// Reorder rewrites the character entries into the given name order. The
// names must be a permutation of the current entries; comments and blank
// lines between entries stay exactly where they are.
func (l *List) Reorder(names []string) error {
	entries := l.Entries()
	if len(names) != len(entries) {
		return fmt.Errorf("reorder wants %d names, roster has %d entries", len(names), len(entries))
	}

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[strings.ToLower(e.Name)] = e
	}

	texts := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		e, ok := byName[key]
		if !ok {
			return fmt.Errorf("%q is not in the roster", name)
		}
		if seen[key] {
			return fmt.Errorf("%q listed twice", name)
		}
		seen[key] = true
		texts = append(texts, strings.TrimSpace(stripEnding(l.lines[e.Line])))
	}

	// Pour the reordered entry texts back into the original entry slots.
	for i, e := range entries {
		raw := l.lines[e.Line]
		ending := raw[len(stripEnding(raw)):]
		l.lines[e.Line] = texts[i] + ending
	}
	return nil
}

// Save writes the list back through the replacer. The content hash captured
// at Load guards against clobbering an external edit.
func (l *List) Save(replacer safeio.Replacer) error {
	if replacer == nil {
		replacer = safeio.FileReplacer{}
	}
	var b strings.Builder
	for _, line := range l.lines {
		b.WriteString(line)
	}
	if err := replacer.Replace(l.path, []byte(b.String()), l.loadHash); err != nil {
		return err
	}
	l.loadHash = safeio.ContentHash([]byte(b.String()))
	return nil
}

// characterLines returns indices of entry lines inside [Characters].
func (l *List) characterLines() []int {
	section, last, ok := l.charactersSpan()
	if !ok {
		return nil
	}
	var idxs []int
	for i := section + 1; i <= last; i++ {
		text := strings.TrimSpace(stripEnding(l.lines[i]))
		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}
		idxs = append(idxs, i)
	}
	return idxs
}

// charactersSpan returns the header index and the last entry-ish line index
// of the [Characters] section.
func (l *List) charactersSpan() (header, last int, ok bool) {
	header = -1
	for i, raw := range l.lines {
		text := strings.TrimSpace(stripEnding(raw))
		if strings.EqualFold(text, "[characters]") {
			header = i
			break
		}
	}
	if header < 0 {
		return 0, 0, false
	}

	last = -1
	for i := header + 1; i < len(l.lines); i++ {
		text := strings.TrimSpace(stripEnding(l.lines[i]))
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			break
		}
		if text != "" && !strings.HasPrefix(text, ";") {
			last = i
		}
	}
	return header, last, true
}

func splitEntry(text string) (name, params string) {
	if idx := strings.IndexByte(text, ','); idx >= 0 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:])
	}
	return text, ""
}

func splitKeepEndings(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i+1])
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

func stripEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// lineEndingOf guesses the file's dominant line ending for inserted lines.
func lineEndingOf(lines []string) string {
	for _, line := range lines {
		if strings.HasSuffix(line, "\r\n") {
			return "\r\n"
		}
		if strings.HasSuffix(line, "\n") {
			return "\n"
		}
	}
	return "\n"
}
