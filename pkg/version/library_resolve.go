package version

import (
	"strings"

	"github.com/launchkit/mccore/pkg/library"
	"github.com/launchkit/mccore/pkg/mcerr"
	"github.com/launchkit/mccore/pkg/platform"
	"github.com/launchkit/mccore/pkg/rules"
)

const (
	defaultLibraryHost = "https://libraries.minecraft.net/"
	forgeLibraryHost    = "https://files.minecraftforge.net/maven/"
)

// resolveLibrary resolves a single raw library entry against plat. It
// returns ok=false when the library's rules disallow it for plat, or when
// natives are declared but none match plat — both cases are dropped
// silently rather than treated as errors.
func resolveLibrary(raw RawLibrary, plat platform.Platform) (ResolvedLibrary, bool, error) {
	if len(raw.Rules) > 0 && !rules.Evaluate(raw.Rules, plat, nil) {
		return ResolvedLibrary{}, false, nil
	}

	info, err := library.Parse(raw.Name)
	if err != nil {
		return ResolvedLibrary{}, false, &mcerr.LibraryCorruption{LibraryName: raw.Name, Reason: err.Error()}
	}

	if len(raw.Natives) > 0 {
		return resolveNativeLibrary(raw, info, plat)
	}

	if raw.Downloads != nil && raw.Downloads.Artifact != nil {
		return resolveModernLibrary(raw, info)
	}

	if raw.Downloads != nil {
		// A downloads block is present but carries neither an artifact
		// nor (since we already checked above) natives classifiers this
		// library could resolve against — there's nothing to download.
		return ResolvedLibrary{}, false, &mcerr.LibraryCorruption{
			LibraryName: raw.Name,
			Reason:      "downloads block present but has no artifact and no matching natives classifier",
		}
	}

	return resolveLegacyLibrary(raw, info)
}

func resolveNativeLibrary(raw RawLibrary, info library.Info, plat platform.Platform) (ResolvedLibrary, bool, error) {
	classifierTemplate, ok := raw.Natives[string(plat.Name)]
	if !ok {
		return ResolvedLibrary{}, false, nil
	}
	classifier := strings.ReplaceAll(classifierTemplate, "${arch}", plat.ArchNumeric())

	info = withClassifier(info, classifier)

	var artifact Artifact
	if raw.Downloads != nil {
		if a, ok := raw.Downloads.Classifiers[classifier]; ok && a != nil {
			artifact = *a
		}
	}
	if artifact.Path == "" {
		artifact = Artifact{
			Path: info.Path,
			SHA1: "",
			Size: -1,
			URL:  defaultLibraryHost + info.Path,
		}
	}

	var extractExclude []string
	if raw.Extract != nil {
		extractExclude = raw.Extract.Exclude
	}

	return ResolvedLibrary{
		Info:           info,
		Download:       artifact,
		IsNative:       true,
		ServerReq:      raw.ServerReq,
		ClientReq:      raw.ClientReq,
		ExtractExclude: extractExclude,
	}, true, nil
}

// withClassifier reparses info's coordinate with classifier appended, so
// Name and Path (not just Classifier) reflect the classified artifact —
// a native library's coordinate string includes its classifier, unlike
// the un-classified one library.Parse(raw.Name) produced.
func withClassifier(info library.Info, classifier string) library.Info {
	reparsed, err := library.Parse(info.GroupID + ":" + info.ArtifactID + ":" + info.Version + ":" + classifier)
	if err != nil {
		info.Classifier = classifier
		return info
	}
	reparsed.Type = info.Type
	return reparsed
}

func resolveModernLibrary(raw RawLibrary, info library.Info) (ResolvedLibrary, bool, error) {
	artifact := *raw.Downloads.Artifact
	if artifact.URL == "" {
		artifact.URL = defaultURLFor(info.GroupID, artifact.Path)
	}
	if artifact.Size == 0 && artifact.SHA1 == "" {
		artifact.Size = -1
	}

	isNative := strings.HasPrefix(info.Classifier, "natives")

	return ResolvedLibrary{
		Info:      info,
		Download:  artifact,
		IsNative:  isNative,
		ServerReq: raw.ServerReq,
		ClientReq: raw.ClientReq,
	}, true, nil
}

func resolveLegacyLibrary(raw RawLibrary, info library.Info) (ResolvedLibrary, bool, error) {
	host := raw.URL
	if host == "" {
		host = defaultLibraryHost
	}
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}

	sha1 := ""
	if len(raw.Checksums) > 0 {
		sha1 = raw.Checksums[0]
	}

	artifact := Artifact{
		Path: info.Path,
		Size: -1,
		SHA1: sha1,
		URL:  host + info.Path,
	}

	return ResolvedLibrary{
		Info:      info,
		Download:  artifact,
		IsNative:  false,
		ServerReq: raw.ServerReq,
		ClientReq: raw.ClientReq,
		Checksums: raw.Checksums,
	}, true, nil
}

func defaultURLFor(groupID, path string) string {
	if groupID == "net.minecraftforge" {
		return forgeLibraryHost + path
	}
	return defaultLibraryHost + path
}
