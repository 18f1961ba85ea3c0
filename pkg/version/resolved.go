package version

import "github.com/launchkit/mccore/pkg/library"

// ResolvedLibrary is a library.Info plus its resolved download artifact
// and native/requirement metadata.
type ResolvedLibrary struct {
	library.Info

	Download       Artifact
	IsNative       bool
	Checksums      []string
	ServerReq      *bool
	ClientReq      *bool
	ExtractExclude []string
}

// Arguments holds the merged jvm/game argument lists. JVM is fully
// flattened to plain strings by the time resolution finishes: every
// conditional jvm entry has already been resolved or dropped against the
// target platform. Game keeps ArgumentElement so feature-gated entries
// (is_demo_user, has_custom_resolution, quick play, ...) can still be
// evaluated once real launch options/features are known.
type Arguments struct {
	JVM  []string
	Game []ArgumentElement
}

// ResolvedVersion is the self-consistent output of the resolver.
type ResolvedVersion struct {
	ID                     string
	MinecraftVersion       string
	Inheritances           []string
	PathChain              []string
	Assets                 string
	AssetIndex             AssetIndexInfo
	JavaVersion            JavaVersion
	MainClass              string
	Type                   string
	ReleaseTime            string
	Time                   string
	Logging                Logging
	MinimumLauncherVersion int
	MinecraftDirectory     string
	Arguments              Arguments
	Libraries               []ResolvedLibrary
	Downloads               map[string]Artifact
}

// RecommendedJavaMajor reports JavaVersion.MajorVersion when it is set,
// and otherwise the well-known vanilla version table's value for
// MinecraftVersion. Resolve fills in {jre-legacy, 8} when no manifest in
// the chain declares a javaVersion, so for its output the table is used
// only when a declared javaVersion block has no majorVersion. Advisory
// only — the core never validates the running Java's version; this only
// tells a caller what to look for.
func (rv *ResolvedVersion) RecommendedJavaMajor() int {
	if rv.JavaVersion.MajorVersion > 0 {
		return rv.JavaVersion.MajorVersion
	}
	return recommendedJavaMajorForMCVersion(rv.MinecraftVersion)
}
