package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchkit/mccore/pkg/mcerr"
	"github.com/launchkit/mccore/pkg/platform"
	"github.com/launchkit/mccore/pkg/version"
)

func linuxPlatform() platform.Platform {
	return platform.Platform{Name: platform.Linux, Version: "6.1.0", Arch: "x64"}
}

func TestResolve_InheritanceMerge(t *testing.T) {
	rv, err := version.Resolve("testdata/basic", "forge-1.16.5", version.WithPlatform(linuxPlatform()))
	require.NoError(t, err)

	assert.Equal(t, []string{"forge-1.16.5", "1.16.5"}, rv.Inheritances)
	// child overrides parent's mainClass
	assert.Equal(t, "cpw.mods.modlauncher.Launcher", rv.MainClass)
	// scalars not set by the child still come from the parent
	assert.Equal(t, "1.16", rv.Assets)
	assert.Equal(t, 8, rv.JavaVersion.MajorVersion)

	names := make([]string, len(rv.Libraries))
	byName := map[string]version.ResolvedLibrary{}
	for i, l := range rv.Libraries {
		names[i] = l.Name
		byName[l.Name] = l
	}

	// child's guava replaces the parent's same group:artifact entry
	// rather than appending a duplicate.
	assert.Contains(t, names, "com.google.guava:guava:30.1")
	assert.NotContains(t, names, "com.google.guava:guava:21.0")
	guava := byName["com.google.guava:guava:30.1"]
	assert.False(t, guava.IsNative)

	// the parent's native lwjgl entry survives untouched
	var lwjgl version.ResolvedLibrary
	var found bool
	for _, l := range rv.Libraries {
		if l.IsNative && l.GroupID == "org.lwjgl" && l.ArtifactID == "lwjgl" {
			lwjgl, found = l, true
		}
	}
	require.True(t, found, "expected resolved native lwjgl entry, got %v", names)
	assert.Equal(t, "natives-linux", lwjgl.Classifier)
	// Name/Path must reflect the classifier too, not just Classifier itself.
	assert.Equal(t, "org.lwjgl:lwjgl:3.2.2:natives-linux", lwjgl.Name)
	assert.Equal(t, "org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2-natives-linux.jar", lwjgl.Path)

	// the child's own addition is present too
	assert.Contains(t, names, "net.minecraftforge:forge:1.16.5-36.2.0")

	// jvm args accumulate root-to-child; parent's -cp/classpath survive,
	// the child's forge logging marker is appended after them.
	assert.Contains(t, rv.Arguments.JVM, "-Dforge.logging.markers=SCAN,REGISTRIES,REGISTRYDUMP")
	assert.Contains(t, rv.Arguments.JVM, "-cp")
	assert.Contains(t, rv.Arguments.JVM, "${classpath}")
	// macOS-only conditional jvm entry evaluated false on our linux platform
	assert.NotContains(t, rv.Arguments.JVM, "-XstartOnFirstThread")

	gamePlain := make([]string, 0, len(rv.Arguments.Game))
	for _, e := range rv.Arguments.Game {
		if e.IsPlain {
			gamePlain = append(gamePlain, e.Plain)
		}
	}
	assert.Contains(t, gamePlain, "--username")
	assert.Contains(t, gamePlain, "--launchTarget")
	assert.Contains(t, gamePlain, "forgeclient")
}

func TestResolve_CircularDependency(t *testing.T) {
	_, err := version.Resolve("testdata/cycle", "a", version.WithPlatform(linuxPlatform()))
	require.Error(t, err)

	var cycleErr *mcerr.CircularDependenciesError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, cycleErr.Chain, "a")
	assert.Contains(t, cycleErr.Chain, "b")
}

func TestResolve_LegacyModernFormatMismatch(t *testing.T) {
	_, err := version.Resolve("testdata/mismatch", "modern-child", version.WithPlatform(linuxPlatform()))
	require.Error(t, err)

	var mismatch *mcerr.FormatMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "modern-child", mismatch.ChildVersion)
	assert.Equal(t, "legacy-parent", mismatch.ParentVersion)
}

func TestResolve_MissingVersionJson(t *testing.T) {
	_, err := version.Resolve("testdata/basic", "does-not-exist", version.WithPlatform(linuxPlatform()))
	require.Error(t, err)

	var missing *mcerr.MissingVersionJson
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "does-not-exist", missing.Version)
}

// defaultLegacyLinuxJVM mirrors pkg/version/legacy.go's
// defaultLegacyJVMTemplate on a non-Windows platform: the fixed vanilla
// JVM argument list a legacy-only manifest resolves to.
var defaultLegacyLinuxJVM = []string{
	"-Djava.library.path=${natives_directory}",
	"-Dminecraft.launcher.brand=${launcher_name}",
	"-Dminecraft.launcher.version=${launcher_version}",
	"-cp",
	"${classpath}",
}

func gamePlainTokens(elems []version.ArgumentElement) []string {
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = e.Plain
	}
	return out
}

// TestResolve_LegacyArgumentMerge covers a standalone legacy version
// (resolves to the default jvm template plus its minecraftArguments
// string split on spaces) and mixinArgumentString's legacy-on-legacy
// inheritance behavior (keeps the first value seen per flag, except
// --tweakClass, which unions).
func TestResolve_LegacyArgumentMerge(t *testing.T) {
	t.Run("standalone legacy version", func(t *testing.T) {
		rv, err := version.Resolve("testdata/legacy", "legacy-standalone", version.WithPlatform(linuxPlatform()))
		require.NoError(t, err)

		assert.Equal(t, defaultLegacyLinuxJVM, rv.Arguments.JVM)

		want := []string{
			"--username", "${auth_player_name}",
			"--session", "${auth_session}",
			"--version", "${version_name}",
			"--gameDir", "${game_directory}",
			"--assetsDir", "${game_assets}",
			"--tweakClass", "com.example.Tweak1",
		}
		assert.Equal(t, want, gamePlainTokens(rv.Arguments.Game))
		for _, e := range rv.Arguments.Game {
			assert.True(t, e.IsPlain)
		}
	})

	t.Run("legacy parent/child chain mixes tweakClass, keeps first value otherwise", func(t *testing.T) {
		rv, err := version.Resolve("testdata/legacy", "legacy-child-chain", version.WithPlatform(linuxPlatform()))
		require.NoError(t, err)

		// mainClass is inherited unchanged since the child never sets one.
		assert.Equal(t, "net.minecraft.client.Minecraft", rv.MainClass)

		assert.Equal(t, defaultLegacyLinuxJVM, rv.Arguments.JVM)

		want := []string{
			"--username", "${auth_player_name}",
			"--session", "${auth_session}",
			"--tweakClass", "com.example.ParentTweak",
			"--tweakClass", "com.example.ChildTweak",
		}
		assert.Equal(t, want, gamePlainTokens(rv.Arguments.Game))
	})
}

func TestResolve_SkipsLibraryWithNoArtifactAndNoNatives(t *testing.T) {
	rv, err := version.Resolve("testdata/library-corruption", "bad-lib", version.WithPlatform(linuxPlatform()))
	require.NoError(t, err)

	names := make([]string, len(rv.Libraries))
	for i, l := range rv.Libraries {
		names[i] = l.Name
	}
	assert.Equal(t, []string{"com.google.guava:guava:21.0"}, names)
}
