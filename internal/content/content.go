/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package content models installed assets (characters, stages, screenpacks)
// as normalized read-only descriptors, and discovers them under a content
// library root.
package content

import "strings"

// Kind identifies the asset kind. Kinds are never cross-compared.
type Kind string

const (
	KindCharacter  Kind = "character"
	KindStage      Kind = "stage"
	KindScreenpack Kind = "screenpack"
)

// VersionInfo carries the free-form version metadata read from a definition
// file. At least one field is usually present; neither is guaranteed to
// follow a single format.
type VersionInfo struct {
	Version string `json:"version,omitempty"`
	Date    string `json:"date,omitempty"`
}

// IsZero reports whether no version metadata is available at all.
func (v VersionInfo) IsZero() bool {
	return strings.TrimSpace(v.Version) == "" && strings.TrimSpace(v.Date) == ""
}

// Display returns the version string, falling back to the date, then to the
// literal "Unknown".
func (v VersionInfo) Display() string {
	if s := strings.TrimSpace(v.Version); s != "" {
		return s
	}
	if s := strings.TrimSpace(v.Date); s != "" {
		return s
	}
	return "Unknown"
}

// ManifestRef is one declared file reference: a logical role ("sprite",
// "sound", "pal1") plus the path exactly as authored, case and separators
// included. A reference is a declaration, not proof of existence.
type ManifestRef struct {
	Role string `json:"role"`
	Path string `json:"path"`
}

// AssetDescriptor is a normalized, read-only view of one installed asset.
type AssetDescriptor struct {
	ID          string        `json:"id"`
	Kind        Kind          `json:"kind"`
	DisplayName string        `json:"display_name"`
	Author      string        `json:"author"`
	Version     VersionInfo   `json:"version"`
	Directory   string        `json:"directory"`
	DefPath     string        `json:"def_path"`
	Manifest    []ManifestRef `json:"manifest"`
}
