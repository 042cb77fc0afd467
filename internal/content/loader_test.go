/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package content

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kfmDef = `; Kung Fu Man
[Info]
name = "Kung Fu Man"
displayname = "Kung Fu Man"
author = "Elecbyte"
versiondate = 03,15,2004

[Files]
cmd = kfm.cmd
cns = kfm.cns
st = kfm.cns
stcommon = common1.cns
sprite = kfm.sff
anim = kfm.air
sound = kfm.snd
pal1 = kfm.act
pal2 = kfm2.act

[Arcade]
intro.storyboard = intro.def
ending.storyboard = ending.def
`

func TestDescriptorFromDefCharacter(t *testing.T) {
	d := DescriptorFromDef(KindCharacter, filepath.Join("chars", "kfm", "kfm.def"), []byte(kfmDef))

	assert.Equal(t, "kfm", d.ID)
	assert.Equal(t, KindCharacter, d.Kind)
	assert.Equal(t, "Kung Fu Man", d.DisplayName)
	assert.Equal(t, "Elecbyte", d.Author)
	assert.Equal(t, "03,15,2004", d.Version.Date)
	assert.Empty(t, d.Version.Version)

	roles := make([]string, len(d.Manifest))
	for i, ref := range d.Manifest {
		roles[i] = ref.Role
	}
	assert.Equal(t, []string{
		"cmd", "cns", "st", "stcommon", "sprite", "anim", "sound",
		"pal1", "pal2", "intro.storyboard", "ending.storyboard",
	}, roles, "manifest keeps declaration order")

	require.Len(t, d.Manifest, 11)
	assert.Equal(t, ManifestRef{Role: "sprite", Path: "kfm.sff"}, d.Manifest[4])
}

func TestDescriptorFromDefStage(t *testing.T) {
	stage := `[Info]
name = "Training Room"
author = "Elecbyte"

[BGdef]
spr = stage0.sff

[Music]
bgmusic = sound/stage0.mp3
`
	d := DescriptorFromDef(KindStage, filepath.Join("stages", "stage0.def"), []byte(stage))

	assert.Equal(t, "stage0", d.ID)
	assert.Equal(t, "Training Room", d.DisplayName)
	require.Len(t, d.Manifest, 2)
	assert.Equal(t, ManifestRef{Role: "spr", Path: "stage0.sff"}, d.Manifest[0])
	assert.Equal(t, ManifestRef{Role: "bgmusic", Path: "sound/stage0.mp3"}, d.Manifest[1])
}

func TestDescriptorFromDefScreenpack(t *testing.T) {
	system := `[Info]
name = "Classic Motif"
author = "Elecbyte"
version = 1.0

[Files]
spr = system.sff
snd = system.snd
logo.storyboard = logo.def
select = select.def
fight = fight.def
font1 = f-4x6.fnt
font2 = f-6x9.fnt
`
	d := DescriptorFromDef(KindScreenpack, filepath.Join("data", "classic", "system.def"), []byte(system))

	assert.Equal(t, "Classic Motif", d.DisplayName)
	assert.Equal(t, "1.0", d.Version.Version)
	roles := make([]string, len(d.Manifest))
	for i, ref := range d.Manifest {
		roles[i] = ref.Role
	}
	assert.Equal(t, []string{"spr", "snd", "logo.storyboard", "select", "fight", "font1", "font2"}, roles)
}

func TestDescriptorMetadataGaps(t *testing.T) {
	bare := "[Info]\n[Files]\nsprite = x.sff\n"
	d := DescriptorFromDef(KindCharacter, "chars/x/x.def", []byte(bare))

	assert.Empty(t, d.DisplayName)
	assert.Empty(t, d.Author)
	assert.True(t, d.Version.IsZero())
	assert.Equal(t, "Unknown", d.Version.Display())
}

func TestDescriptorDisplayNameFallsBackToName(t *testing.T) {
	src := "[Info]\nname = \"Ryu\"\n[Files]\n"
	d := DescriptorFromDef(KindCharacter, "chars/ryu/ryu.def", []byte(src))
	assert.Equal(t, "Ryu", d.DisplayName)
}

func TestVersionInfoDisplay(t *testing.T) {
	tests := []struct {
		name string
		v    VersionInfo
		want string
	}{
		{"version_wins", VersionInfo{Version: "1.2", Date: "2004-01-01"}, "1.2"},
		{"date_fallback", VersionInfo{Date: "2004-01-01"}, "2004-01-01"},
		{"unknown", VersionInfo{}, "Unknown"},
		{"whitespace_only", VersionInfo{Version: "  ", Date: "\t"}, "Unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.Display())
		})
	}
}

func TestRequiredSections(t *testing.T) {
	assert.Equal(t, []string{"info", "files"}, RequiredSections(KindCharacter))
	assert.Equal(t, []string{"info", "bgdef"}, RequiredSections(KindStage))
	assert.Equal(t, []string{"info", "files"}, RequiredSections(KindScreenpack))
	assert.Nil(t, RequiredSections(Kind("bogus")))
}
