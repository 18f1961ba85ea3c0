package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/launchkit/mccore/pkg/platform"
)

func TestArchNumeric(t *testing.T) {
	cases := map[string]string{
		"x64":   "64",
		"x86":   "86",
		"arm64": "arm64",
	}
	for arch, want := range cases {
		p := platform.Platform{Arch: arch}
		assert.Equal(t, want, p.ArchNumeric())
	}
}

func TestDetect_NeverFails(t *testing.T) {
	p := platform.Detect()
	assert.NotEmpty(t, p.Name)
	assert.NotEmpty(t, p.Arch)
}

func TestOverride_FillsOnlyNonZeroFields(t *testing.T) {
	base := platform.Platform{Name: platform.Linux, Version: "6.1.0", Arch: "x64"}

	got := platform.Override(base, platform.Platform{Arch: "arm64"})
	assert.Equal(t, platform.Platform{Name: platform.Linux, Version: "6.1.0", Arch: "arm64"}, got)

	full := platform.Override(base, platform.Platform{Name: platform.Windows, Version: "10.0", Arch: "x64"})
	assert.Equal(t, platform.Platform{Name: platform.Windows, Version: "10.0", Arch: "x64"}, full)

	assert.Equal(t, base, platform.Override(base, platform.Platform{}))
}
