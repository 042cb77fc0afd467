/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package content

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fightkeep/fightkeep/internal/defparse"
	"github.com/fightkeep/fightkeep/pkg/safeio"
)

// Manifest roles per kind. Numbered roles (pal1..pal12, st1..st9, font1..)
// are matched by pattern.
var (
	characterRoles = map[string]bool{
		"cmd": true, "cns": true, "st": true, "stcommon": true,
		"sprite": true, "anim": true, "sound": true, "ai": true,
	}
	characterNumberedRole = regexp.MustCompile(`^(?:pal|st)\d+$`)

	screenpackRoles = map[string]bool{
		"spr": true, "snd": true, "select": true, "fight": true,
		"logo.storyboard": true, "intro.storyboard": true,
	}
	screenpackNumberedRole = regexp.MustCompile(`^font\d+$`)
)

// LoadDescriptor reads a definition file and produces the descriptor for it.
// Metadata gaps (missing name, author, version) are not errors; they only
// degrade what downstream matching can do with the descriptor.
func LoadDescriptor(kind Kind, defPath string) (AssetDescriptor, error) {
	dir := filepath.Dir(defPath)
	data, err := safeio.ReadFileContained(dir, defPath)
	if err != nil {
		return AssetDescriptor{}, fmt.Errorf("read definition %s: %w", defPath, err)
	}
	return DescriptorFromDef(kind, defPath, data), nil
}

// DescriptorFromDef builds a descriptor from already-read definition content.
func DescriptorFromDef(kind Kind, defPath string, data []byte) AssetDescriptor {
	def := defparse.Parse(data)
	stem := strings.TrimSuffix(filepath.Base(defPath), filepath.Ext(defPath))

	d := AssetDescriptor{
		ID:        strings.ToLower(stem),
		Kind:      kind,
		Directory: filepath.Dir(defPath),
		DefPath:   defPath,
	}

	if name, ok := def.Get("info", "displayname"); ok && strings.TrimSpace(name) != "" {
		d.DisplayName = strings.TrimSpace(name)
	} else if name, ok := def.Get("info", "name"); ok {
		d.DisplayName = strings.TrimSpace(name)
	}
	if author, ok := def.Get("info", "author"); ok {
		d.Author = strings.TrimSpace(author)
	}
	if version, ok := def.Get("info", "version"); ok {
		d.Version.Version = strings.TrimSpace(version)
	}
	if date, ok := def.Get("info", "versiondate"); ok {
		d.Version.Date = strings.TrimSpace(date)
	}

	d.Manifest = manifestRefs(kind, def)
	return d
}

func manifestRefs(kind Kind, def *defparse.File) []ManifestRef {
	var refs []ManifestRef
	add := func(role, path string) {
		if strings.TrimSpace(path) == "" {
			return
		}
		refs = append(refs, ManifestRef{Role: role, Path: path})
	}

	switch kind {
	case KindCharacter:
		if files, ok := def.Section("files"); ok {
			for _, e := range files.Entries {
				if characterRoles[e.Key] || characterNumberedRole.MatchString(e.Key) {
					add(e.Key, e.Value)
				}
			}
		}
		// Intro and ending storyboards live under [Arcade].
		if arcade, ok := def.Section("arcade"); ok {
			for _, e := range arcade.Entries {
				if e.Key == "intro.storyboard" || e.Key == "ending.storyboard" {
					add(e.Key, e.Value)
				}
			}
		}
	case KindStage:
		if v, ok := def.Get("bgdef", "spr"); ok {
			add("spr", v)
		}
		if v, ok := def.Get("music", "bgmusic"); ok {
			add("bgmusic", v)
		}
	case KindScreenpack:
		if files, ok := def.Section("files"); ok {
			for _, e := range files.Entries {
				if screenpackRoles[e.Key] || screenpackNumberedRole.MatchString(e.Key) {
					add(e.Key, e.Value)
				}
			}
		}
	}
	return refs
}

// RequiredSections lists the definition-file sections an asset of the given
// kind cannot function without.
func RequiredSections(kind Kind) []string {
	switch kind {
	case KindCharacter:
		return []string{"info", "files"}
	case KindStage:
		return []string{"info", "bgdef"}
	case KindScreenpack:
		return []string{"info", "files"}
	default:
		return nil
	}
}
