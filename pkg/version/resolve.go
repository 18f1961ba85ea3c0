// Package version implements the version resolver: it walks a version's
// inheritsFrom chain, merges the chain's manifests with well-defined
// precedence, applies OS/feature rules to libraries and arguments, and
// produces a single self-consistent ResolvedVersion.
package version

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/launchkit/mccore/pkg/layout"
	"github.com/launchkit/mccore/pkg/mcerr"
	"github.com/launchkit/mccore/pkg/platform"
)

// Option configures a Resolve call.
type Option func(*resolveConfig)

type resolveConfig struct {
	platform platform.Platform
}

// WithPlatform overrides (part or all of) the detected platform, used for
// cross-platform resolution (e.g. diagnosing a Windows install from
// Linux) and tests.
func WithPlatform(p platform.Platform) Option {
	return func(c *resolveConfig) { c.platform = platform.Override(c.platform, p) }
}

// loadedManifest pairs a parsed manifest with the version root it came
// from, needed by pathChain.
type loadedManifest struct {
	id   string
	root string
	raw  RawManifest
}

// Resolve loads versionID's manifest chain under minecraftRoot and merges
// it into a single resolved version.
func Resolve(minecraftRoot, versionID string, opts ...Option) (*ResolvedVersion, error) {
	cfg := resolveConfig{platform: platform.Detect()}
	for _, opt := range opts {
		opt(&cfg)
	}

	chain, err := walkChain(minecraftRoot, versionID)
	if err != nil {
		return nil, err
	}

	return merge(minecraftRoot, chain, cfg.platform)
}

// walkChain starts from versionID, repeatedly reads
// {root}/versions/{id}/{id}.json, follows inheritsFrom, and detects cycles.
// The returned slice is ordered child-to-root, matching
// ResolvedVersion.Inheritances/PathChain ordering.
func walkChain(minecraftRoot, versionID string) ([]loadedManifest, error) {
	var chain []loadedManifest
	visited := map[string]bool{}
	order := []string{}

	id := versionID
	for id != "" {
		if visited[id] {
			return nil, &mcerr.CircularDependenciesError{Chain: append(order, id)}
		}
		visited[id] = true
		order = append(order, id)

		path := layout.VersionJSON(minecraftRoot, id)
		slog.Debug("walking inheritance chain", "version", id, "path", path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &mcerr.MissingVersionJson{Version: id, Path: path}
		}

		var raw RawManifest
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &mcerr.CorruptedVersionJson{Version: id, Path: path, Raw: string(data), Err: err}
		}

		chain = append(chain, loadedManifest{id: id, root: layout.VersionRoot(minecraftRoot, id), raw: raw})
		if raw.InheritsFrom != "" {
			slog.Debug("following inheritsFrom", "from", id, "to", raw.InheritsFrom)
		}
		id = raw.InheritsFrom
	}

	return chain, nil
}

// merge normalizes each manifest in chain, then folds them from root
// toward child, applying each manifest's overrides on top of what came
// before it.
func merge(minecraftRoot string, chain []loadedManifest, plat platform.Platform) (*ResolvedVersion, error) {
	acc := newAccumulator()

	// chain is child-to-root; merge root-to-child.
	for i := len(chain) - 1; i >= 0; i-- {
		m := chain[i]
		legacy := m.raw.Arguments == nil

		if err := checkFormatConsistency(chain, i, legacy); err != nil {
			return nil, err
		}

		acc.applyScalars(m.raw)

		libs, err := resolveLibraries(m.raw.Libraries, plat)
		if err != nil {
			return nil, err
		}
		acc.mergeLibraries(libs)

		for role, a := range m.raw.Downloads {
			acc.downloads[role] = a
		}

		if legacy {
			acc.replaceWithLegacy(m.raw.MinecraftArguments, plat)
		} else {
			acc.appendModern(m.raw.Arguments, plat)
		}
	}

	if acc.mainClass == "" {
		return nil, &mcerr.BadVersionJson{Version: chain[0].id, Missing: "mainClass"}
	}

	inheritances := make([]string, len(chain))
	pathChain := make([]string, len(chain))
	for i, m := range chain {
		inheritances[i] = m.id
		pathChain[i] = m.root
	}

	mcVersion := firstNonEmpty(chain[len(chain)-1].raw.ClientVersion, chain[len(chain)-1].raw.MinecraftVersionAlt, chain[0].raw.ClientVersion, chain[0].raw.MinecraftVersionAlt, chain[0].id)

	return &ResolvedVersion{
		ID:                     chain[0].id,
		MinecraftVersion:       mcVersion,
		Inheritances:           inheritances,
		PathChain:              pathChain,
		Assets:                 acc.assets,
		AssetIndex:             acc.assetIndex,
		JavaVersion:            acc.javaVersion,
		MainClass:              acc.mainClass,
		Type:                   acc.versionType,
		ReleaseTime:            acc.releaseTime,
		Time:                   acc.time,
		Logging:                acc.logging,
		MinimumLauncherVersion: acc.minLauncherVersion,
		MinecraftDirectory:     minecraftRoot,
		Arguments: Arguments{
			JVM:  acc.jvmArgs,
			Game: acc.gameArgs,
		},
		Libraries: acc.flattenLibraries(),
		Downloads: acc.downloads,
	}, nil
}

// checkFormatConsistency rejects a chain that mixes legacy and modern
// argument formats between a manifest and its immediate parent.
func checkFormatConsistency(chain []loadedManifest, i int, legacy bool) error {
	if i == len(chain)-1 {
		return nil // root has no parent to compare against
	}
	parent := chain[i+1]
	parentLegacy := parent.raw.Arguments == nil
	if legacy != parentLegacy {
		return &mcerr.FormatMismatch{ChildVersion: chain[i].id, ParentVersion: parent.id}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveLibraries(raws []RawLibrary, plat platform.Platform) ([]ResolvedLibrary, error) {
	out := make([]ResolvedLibrary, 0, len(raws))
	for _, raw := range raws {
		resolved, ok, err := resolveLibrary(raw, plat)
		if err != nil {
			var corrupt *mcerr.LibraryCorruption
			if errors.As(err, &corrupt) {
				slog.Warn("skipping corrupted library entry", "name", raw.Name, "reason", corrupt.Reason)
				continue
			}
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, resolved)
	}
	return out, nil
}
