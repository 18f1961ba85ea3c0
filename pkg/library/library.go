// Package library parses and formats Maven-style library coordinates
// (group:artifact:version[:classifier][@ext]) the way Mojang version
// manifests name libraries, and derives the relative path under
// libraries/ that the directory layout expects.
package library

import (
	"fmt"
	"strings"
)

// Info is a parsed Maven coordinate.
type Info struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string // may be empty
	Type       string // defaults to "jar"
	IsSnapshot bool
	Name       string // canonical group:artifact:version[:classifier][@type]
	Path       string // relative path under libraries/
}

// Parse splits a coordinate string into its components and derives the
// canonical name and relative path. Parse(c).Path always begins with
// "{group-with-slashes}/{artifact}/{version}/{artifact}-{version}".
func Parse(name string) (Info, error) {
	if name == "" {
		return Info{}, fmt.Errorf("library: empty coordinate")
	}

	typ := "jar"
	body := name
	if idx := strings.LastIndex(name, "@"); idx >= 0 {
		body = name[:idx]
		typ = name[idx+1:]
	}

	parts := strings.Split(body, ":")
	if len(parts) < 3 {
		return Info{}, fmt.Errorf("library: malformed coordinate %q", name)
	}

	groupID, artifactID, version := parts[0], parts[1], parts[2]
	classifier := ""
	if len(parts) > 3 {
		classifier = parts[3]
	}

	info := Info{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Classifier: classifier,
		Type:       typ,
		IsSnapshot: strings.HasSuffix(version, "-SNAPSHOT"),
	}
	info.Path = buildPath(groupID, artifactID, version, classifier, typ)
	info.Name = buildName(groupID, artifactID, version, classifier, typ)
	return info, nil
}

func buildPath(groupID, artifactID, version, classifier, typ string) string {
	fileBase := artifactID + "-" + version
	if classifier != "" {
		fileBase += "-" + classifier
	}
	return strings.Join([]string{
		strings.ReplaceAll(groupID, ".", "/"),
		artifactID,
		version,
		fileBase + "." + typ,
	}, "/")
}

func buildName(groupID, artifactID, version, classifier, typ string) string {
	name := groupID + ":" + artifactID + ":" + version
	if classifier != "" {
		name += ":" + classifier
	}
	if typ != "" && typ != "jar" {
		name += "@" + typ
	}
	return name
}

// ParsePath recovers an Info from a relative library path such as
// "com/google/guava/guava/30.1/guava-30.1.jar". The last three path
// segments are artifactId, version, file; everything before them, joined
// with ".", is the groupId. The classifier is whatever remains of the
// filename after stripping the "{artifact}-{version}" (or, for snapshot
// filenames, the bare "{version}") prefix and the extension.
//
// Snapshot paths are parse-only: round-tripping a snapshot Info back
// through Parse is not expected to reproduce the same path, because Parse
// always builds the "{artifact}-{version}" prefix while a real snapshot
// filename on disk carries a timestamped build number instead of the
// literal "-SNAPSHOT" suffix.
func ParsePath(path string) (Info, error) {
	segments := strings.Split(path, "/")
	if len(segments) < 3 {
		return Info{}, fmt.Errorf("library: path %q too short to contain group/artifact/version/file", path)
	}

	n := len(segments)
	artifactID := segments[n-3]
	version := segments[n-2]
	file := segments[n-1]
	groupID := strings.Join(segments[:n-3], ".")

	typ := "jar"
	base := file
	if idx := strings.LastIndex(file, "."); idx >= 0 {
		typ = file[idx+1:]
		base = file[:idx]
	}

	classifier := ""
	switch {
	case strings.HasPrefix(base, artifactID+"-"+version):
		classifier = strings.TrimPrefix(base, artifactID+"-"+version)
	case strings.HasPrefix(base, version):
		// Snapshot filenames are often "{version}-{classifier}" without the
		// artifactId prefix repeated.
		classifier = strings.TrimPrefix(base, version)
	}
	classifier = strings.TrimPrefix(classifier, "-")

	info := Info{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Classifier: classifier,
		Type:       typ,
		IsSnapshot: strings.HasSuffix(version, "-SNAPSHOT"),
	}
	info.Path = path
	info.Name = buildName(groupID, artifactID, version, classifier, typ)
	return info, nil
}
