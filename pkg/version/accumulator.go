package version

import (
	"github.com/launchkit/mccore/pkg/platform"
	"github.com/launchkit/mccore/pkg/rules"
)

// accumulator tracks the running merge state as manifests are folded from
// root toward child.
type accumulator struct {
	mainClass           string
	assets              string
	assetIndex          AssetIndexInfo
	versionType         string
	releaseTime         string
	time                string
	logging             Logging
	javaVersion         JavaVersion
	minLauncherVersion  int

	jvmArgs  []string
	gameArgs []ArgumentElement

	// legacyRaw is the minecraftArguments string accumulated so far, used
	// to fold a legacy child's arguments onto a legacy parent's via
	// mixinArgumentString. Reset once a modern manifest is merged.
	legacyRaw string

	downloads map[string]Artifact

	// Libraries and natives occupy disjoint keyspaces: a native classifier
	// of the same group:artifact as a regular library is a distinct entry,
	// so each gets its own ordered map rather than one map with a
	// string-suffix disambiguator.
	libOrder     []string
	libByKey     map[string]ResolvedLibrary
	nativeOrder  []string
	nativeByKey  map[string]ResolvedLibrary
}

func newAccumulator() *accumulator {
	return &accumulator{
		downloads:   map[string]Artifact{},
		libByKey:    map[string]ResolvedLibrary{},
		nativeByKey: map[string]ResolvedLibrary{},
	}
}

func (a *accumulator) applyScalars(raw RawManifest) {
	if raw.MainClass != "" {
		a.mainClass = raw.MainClass
	}
	if raw.Assets != "" {
		a.assets = raw.Assets
	}
	if raw.AssetIndex != nil {
		a.assetIndex = *raw.AssetIndex
	}
	if raw.Type != "" {
		a.versionType = raw.Type
	}
	if raw.ReleaseTime != "" {
		a.releaseTime = raw.ReleaseTime
	}
	if raw.Time != "" {
		a.time = raw.Time
	}
	if raw.Logging != nil {
		a.logging = *raw.Logging
	}
	if raw.JavaVersion != nil {
		a.javaVersion = *raw.JavaVersion
	} else if a.javaVersion.Component == "" && a.javaVersion.MajorVersion == 0 {
		a.javaVersion = JavaVersion{Component: "jre-legacy", MajorVersion: 8}
	}
	if raw.MinimumLauncherVersion > a.minLauncherVersion {
		a.minLauncherVersion = raw.MinimumLauncherVersion
	}
}

func (a *accumulator) mergeLibraries(libs []ResolvedLibrary) {
	for _, lib := range libs {
		if lib.IsNative {
			key := lib.GroupID + ":" + lib.ArtifactID + ":" + lib.Classifier
			if _, exists := a.nativeByKey[key]; !exists {
				a.nativeOrder = append(a.nativeOrder, key)
			}
			a.nativeByKey[key] = lib
			continue
		}
		key := lib.GroupID + ":" + lib.ArtifactID
		if _, exists := a.libByKey[key]; !exists {
			a.libOrder = append(a.libOrder, key)
		}
		a.libByKey[key] = lib
	}
}

func (a *accumulator) flattenLibraries() []ResolvedLibrary {
	out := make([]ResolvedLibrary, 0, len(a.libOrder)+len(a.nativeOrder))
	for _, k := range a.libOrder {
		out = append(out, a.libByKey[k])
	}
	for _, k := range a.nativeOrder {
		out = append(out, a.nativeByKey[k])
	}
	return out
}

// replaceWithLegacy replaces both argument lists outright with a legacy
// manifest's: the game list comes from splitting its (possibly
// mixin-merged) minecraftArguments string; the jvm list is the fixed
// vanilla default template.
func (a *accumulator) replaceWithLegacy(minecraftArguments string, plat platform.Platform) {
	merged := minecraftArguments
	if a.legacyRaw != "" {
		merged = mixinArgumentString(a.legacyRaw, minecraftArguments)
	}
	a.legacyRaw = merged

	a.jvmArgs = defaultLegacyJVMTemplate(plat)

	tokens := splitLegacyGameArgs(merged)
	a.gameArgs = make([]ArgumentElement, len(tokens))
	for i, tok := range tokens {
		a.gameArgs[i] = ArgumentElement{Plain: tok, IsPlain: true}
	}
}

// appendModern appends a modern manifest's argument lists onto the
// running merge. JVM entries are filtered now: feature-gated conditionals
// are dropped (features aren't known at resolve time) and OS-only
// conditionals are resolved immediately; game entries are appended
// unresolved so launch-time feature state can still gate them.
func (a *accumulator) appendModern(args *RawArguments, plat platform.Platform) {
	a.legacyRaw = ""
	if args == nil {
		return
	}

	for _, e := range args.JVM {
		if e.IsPlain {
			a.jvmArgs = append(a.jvmArgs, e.Plain)
			continue
		}
		if !rules.OSOnly(e.Rules) {
			continue
		}
		if rules.Evaluate(e.Rules, plat, nil) {
			a.jvmArgs = append(a.jvmArgs, e.Values...)
		}
	}

	a.gameArgs = append(a.gameArgs, args.Game...)
}
