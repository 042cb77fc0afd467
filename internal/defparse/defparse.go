/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package defparse reads MUGEN-style definition files (INI-like sections,
// "key = value" entries, ";" comments) while keeping every byte of the
// original file addressable. Repairs rewrite a single value in place; the
// rest of the file, including comments and whitespace, survives verbatim.
package defparse

import (
	"strings"
)

// Entry is one key/value pair inside a section.
type Entry struct {
	Key   string // lowercased
	Value string // trimmed, unquoted
	Line  int    // index into the file's line slice

	// Offsets of the value text within the raw line, used for in-place
	// rewriting. Quotes, when present, sit outside this range.
	valueStart int
	valueEnd   int
	quoted     bool
}

// Section is a named group of entries, e.g. [Info] or [Files].
type Section struct {
	Name    string // lowercased, without brackets
	Line    int
	Entries []Entry
}

// File is a parsed definition file. Lines retain their original endings so
// Bytes reproduces the input byte-for-byte until a value is rewritten.
type File struct {
	lines    []string
	sections []Section
}

// Parse never fails: definition files in the wild are full of oddities and a
// tolerant reader that skips what it cannot interpret beats a strict one.
func Parse(data []byte) *File {
	f := &File{lines: splitKeepEndings(string(data))}

	for i, raw := range f.lines {
		text := stripEnding(raw)
		trimmed := strings.TrimSpace(stripComment(text))
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			name := strings.ToLower(strings.TrimSpace(trimmed[1 : len(trimmed)-1]))
			f.sections = append(f.sections, Section{Name: name, Line: i})
			continue
		}
		if len(f.sections) == 0 {
			continue // stray entry before any section header
		}
		if entry, ok := parseEntry(text, i); ok {
			sec := &f.sections[len(f.sections)-1]
			sec.Entries = append(sec.Entries, entry)
		}
	}
	return f
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

// stripComment removes a ";" comment, respecting double-quoted values.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

func parseEntry(text string, lineIdx int) (Entry, bool) {
	body := stripComment(text)
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		return Entry{}, false
	}
	key := strings.ToLower(strings.TrimSpace(body[:eq]))
	if key == "" {
		return Entry{}, false
	}

	valStart := eq + 1
	for valStart < len(body) && (body[valStart] == ' ' || body[valStart] == '\t') {
		valStart++
	}
	valEnd := len(body)
	for valEnd > valStart && (body[valEnd-1] == ' ' || body[valEnd-1] == '\t') {
		valEnd--
	}

	value := body[valStart:valEnd]
	quoted := len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"'
	if quoted {
		valStart++
		valEnd--
		value = value[1 : len(value)-1]
	}

	return Entry{
		Key:        key,
		Value:      value,
		Line:       lineIdx,
		valueStart: valStart,
		valueEnd:   valEnd,
		quoted:     quoted,
	}, true
}

// Sections returns all sections in file order.
func (f *File) Sections() []Section {
	return f.sections
}

// Section returns the first section with the given name (case-insensitive).
func (f *File) Section(name string) (Section, bool) {
	name = strings.ToLower(name)
	for _, s := range f.sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// HasSection reports whether a section with the given name exists.
func (f *File) HasSection(name string) bool {
	_, ok := f.Section(name)
	return ok
}

// Get returns the value for key within the named section.
func (f *File) Get(section, key string) (string, bool) {
	e, ok := f.Lookup(section, key)
	if !ok {
		return "", false
	}
	return e.Value, true
}

// Lookup returns the full entry for key within the named section.
func (f *File) Lookup(section, key string) (Entry, bool) {
	s, ok := f.Section(section)
	if !ok {
		return Entry{}, false
	}
	key = strings.ToLower(key)
	for _, e := range s.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// SetValue rewrites the value portion of the line the entry came from,
// leaving the key, spacing, quoting style, inline comment, and line ending
// untouched. The returned ok is false when the entry no longer matches the
// line it points at.
func (f *File) SetValue(e Entry, newValue string) bool {
	if e.Line < 0 || e.Line >= len(f.lines) {
		return false
	}
	raw := f.lines[e.Line]
	text := stripEnding(raw)
	if e.valueEnd > len(text) || e.valueStart > e.valueEnd {
		return false
	}
	ending := raw[len(text):]
	f.lines[e.Line] = text[:e.valueStart] + newValue + text[e.valueEnd:] + ending
	return true
}

// Bytes reassembles the file.
func (f *File) Bytes() []byte {
	var b strings.Builder
	for _, line := range f.lines {
		b.WriteString(line)
	}
	return []byte(b.String())
}
