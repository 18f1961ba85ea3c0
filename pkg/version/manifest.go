package version

import (
	"encoding/json"
	"fmt"

	"github.com/launchkit/mccore/pkg/rules"
)

// Artifact is a download descriptor. Size == -1 denotes "unknown",
// matching the convention the resolved model uses for synthesized
// (non-Mojang-hosted) artifacts.
type Artifact struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
}

// AssetIndexInfo describes the assets index download.
type AssetIndexInfo struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
	URL       string `json:"url"`
}

// JavaVersion names the runtime a manifest recommends.
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// LoggingClient describes a log4j2 config a manifest wants appended to the
// JVM arguments.
type LoggingClient struct {
	Argument string `json:"argument"`
	File     struct {
		ID   string `json:"id"`
		SHA1 string `json:"sha1"`
		Size int64  `json:"size"`
		URL  string `json:"url"`
	} `json:"file"`
	Type string `json:"type"`
}

// Logging is the manifest's "logging" block; only the client side is
// consumed by this launcher core.
type Logging struct {
	Client LoggingClient `json:"client"`
}

// ArgumentElement is either a plain string or a rule-gated conditional
// value: {rules, value: string | [string]}.
type ArgumentElement struct {
	Plain       string
	IsPlain     bool
	Rules       []rules.Rule
	Values      []string
}

// UnmarshalJSON accepts either a bare JSON string or a
// {"rules": [...], "value": string|[string]} object.
func (a *ArgumentElement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Plain = s
		a.IsPlain = true
		return nil
	}

	var obj struct {
		Rules []rules.Rule `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("version: argument element neither string nor rule object: %w", err)
	}

	a.Rules = obj.Rules
	a.IsPlain = false

	var one string
	if err := json.Unmarshal(obj.Value, &one); err == nil {
		a.Values = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(obj.Value, &many); err != nil {
		return fmt.Errorf("version: argument value neither string nor []string: %w", err)
	}
	a.Values = many
	return nil
}

// RawArguments is the modern arguments.{jvm,game} block.
type RawArguments struct {
	Game []ArgumentElement `json:"game"`
	JVM  []ArgumentElement `json:"jvm"`
}

// RawLibraryDownloads is a library's downloads block: a primary artifact
// and/or per-classifier native artifacts.
type RawLibraryDownloads struct {
	Artifact    *Artifact            `json:"artifact,omitempty"`
	Classifiers map[string]*Artifact `json:"classifiers,omitempty"`
}

// RawExtract names patterns to exclude when extracting a native jar; the
// core only carries this through to ResolvedLibrary, extraction itself is
// the caller's responsibility.
type RawExtract struct {
	Exclude []string `json:"exclude,omitempty"`
}

// RawLibrary is a library entry as it appears in a version manifest,
// before platform/native resolution.
type RawLibrary struct {
	Name      string               `json:"name"`
	Downloads *RawLibraryDownloads `json:"downloads,omitempty"`
	Natives   map[string]string   `json:"natives,omitempty"`
	Rules     []rules.Rule         `json:"rules,omitempty"`
	Extract   *RawExtract          `json:"extract,omitempty"`

	// Legacy (pre-downloads-block) library descriptor fields.
	Checksums []string `json:"checksums,omitempty"`
	URL       string   `json:"url,omitempty"`

	ServerReq *bool `json:"serverreq,omitempty"`
	ClientReq *bool `json:"clientreq,omitempty"`
}

// RawManifest is the subset of a version JSON file this launcher core
// consumes.
type RawManifest struct {
	ID                     string                 `json:"id"`
	InheritsFrom           string                 `json:"inheritsFrom,omitempty"`
	Type                   string                 `json:"type,omitempty"`
	MainClass              string                 `json:"mainClass,omitempty"`
	MinecraftArguments     string                 `json:"minecraftArguments,omitempty"`
	Arguments              *RawArguments          `json:"arguments,omitempty"`
	Libraries              []RawLibrary           `json:"libraries"`
	Downloads              map[string]Artifact    `json:"downloads,omitempty"`
	AssetIndex             *AssetIndexInfo        `json:"assetIndex,omitempty"`
	Assets                 string                 `json:"assets,omitempty"`
	Logging                *Logging               `json:"logging,omitempty"`
	JavaVersion            *JavaVersion           `json:"javaVersion,omitempty"`
	MinimumLauncherVersion int                    `json:"minimumLauncherVersion,omitempty"`
	ReleaseTime            string                 `json:"releaseTime,omitempty"`
	Time                   string                 `json:"time,omitempty"`
	ClientVersion          string                 `json:"clientVersion,omitempty"`
	MinecraftVersionAlt    string                 `json:"_minecraftVersion,omitempty"`
}
