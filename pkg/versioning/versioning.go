// Package versioning compares the free-form version and date strings found in
// asset definition files. Authors write anything from "1.0" to "v2.1.3b" to
// "03/15/2004"; comparison is strict about what it accepts and declines to
// rank anything else.
package versioning

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Comparison int

const (
	ComparisonUnknown Comparison = iota
	ComparisonLess
	ComparisonEqual
	ComparisonGreater
)

// String returns a human-readable form, useful in log fields.
func (c Comparison) String() string {
	switch c {
	case ComparisonLess:
		return "less"
	case ComparisonEqual:
		return "equal"
	case ComparisonGreater:
		return "greater"
	default:
		return "unknown"
	}
}

var numericPattern = regexp.MustCompile(`^(?:[vV])?(\d+(?:\.\d+)*)$`)

// DefaultDateLayouts returns the accepted date layouts, most common first.
// Asset authors overwhelmingly use MDY or ISO forms; the order here is
// significant because the first layout that parses wins.
func DefaultDateLayouts() []string {
	return []string{
		"01,02,2006", // versiondate style
		"2006-01-02",
		"01/02/2006",
		"2006/01/02",
		"01.02.2006",
		"01-02-2006",
		"2006.01.02",
		"Jan 2, 2006",
		"January 2, 2006",
	}
}

// ParseNumeric parses a period-delimited numeric version like "1.2" or
// "v2.0.1". Anything with non-numeric components is rejected.
func ParseNumeric(input string) ([]int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, errors.New("empty version")
	}

	matches := numericPattern.FindStringSubmatch(trimmed)
	if len(matches) == 0 {
		return nil, fmt.Errorf("not a numeric version: %q", input)
	}

	parts := strings.Split(matches[1], ".")
	segments := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", part, err)
		}
		segments[i] = n
	}
	return segments, nil
}

// CompareNumeric compares two numeric versions component-wise. Shorter
// versions are padded with zeros, so "1.0" equals "1.0.0".
func CompareNumeric(a, b string) (Comparison, error) {
	av, err := ParseNumeric(a)
	if err != nil {
		return ComparisonUnknown, fmt.Errorf("invalid version '%s': %w", a, err)
	}
	bv, err := ParseNumeric(b)
	if err != nil {
		return ComparisonUnknown, fmt.Errorf("invalid version '%s': %w", b, err)
	}

	longest := len(av)
	if len(bv) > longest {
		longest = len(bv)
	}
	for len(av) < longest {
		av = append(av, 0)
	}
	for len(bv) < longest {
		bv = append(bv, 0)
	}

	for i := 0; i < longest; i++ {
		if av[i] < bv[i] {
			return ComparisonLess, nil
		}
		if av[i] > bv[i] {
			return ComparisonGreater, nil
		}
	}
	return ComparisonEqual, nil
}

// ParseDate tries each layout in order and returns the first match.
func ParseDate(input string, layouts []string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return time.Time{}, errors.New("empty date")
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts()
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", input)
}

// CompareDates compares two date strings chronologically using the accepted
// layouts. Either side failing to parse yields ComparisonUnknown.
func CompareDates(a, b string, layouts []string) (Comparison, error) {
	at, err := ParseDate(a, layouts)
	if err != nil {
		return ComparisonUnknown, fmt.Errorf("invalid date '%s': %w", a, err)
	}
	bt, err := ParseDate(b, layouts)
	if err != nil {
		return ComparisonUnknown, fmt.Errorf("invalid date '%s': %w", b, err)
	}
	if at.Before(bt) {
		return ComparisonLess, nil
	}
	if at.After(bt) {
		return ComparisonGreater, nil
	}
	return ComparisonEqual, nil
}
