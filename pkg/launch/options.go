// Package launch synthesizes the JVM argument vector for launching a
// resolved Minecraft version, and the simpler dedicated-server
// equivalent. It never spawns a process itself — the caller owns
// exec.Command, stdio wiring, and lifetime, the way the teacher's own
// Launcher.Run builds argv before exec.Command takes over
// (game/launcher/launcher.go).
package launch

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/launchkit/mccore/pkg/platform"
	"github.com/launchkit/mccore/pkg/rules"
)

// GameProfile identifies the player account launching the game.
type GameProfile struct {
	ID   string
	Name string
}

// YggdrasilAgent configures an auth-library-injector style javaagent.
type YggdrasilAgent struct {
	Jar        string
	Server     string
	Prefetched string
}

// Resolution describes the game window.
type Resolution struct {
	Width      int
	Height     int
	Fullscreen bool
}

// Server describes an auto-join target.
type Server struct {
	IP   string
	Port string
}

// Features carries the active feature set for rule evaluation and for the
// feature-keyed placeholder overrides those rules gate (quick-play,
// demo, custom resolution, ...). Grounded on the teacher's
// RunOptions.GameFeatures mechanism (game/launcher/launcher.go,
// rules.Feature{AKey, Flag, Value}) generalized from a hardcoded pair into
// a data-driven map: Features[name]==true activates a feature for rule
// evaluation, and Options.FeatureValues, keyed by placeholder name (e.g.
// "quickPlayMultiplayer"), supplies the values those gated arguments
// interpolate.
type Features map[string]bool

func (f Features) toRulesFeatures() rules.Features {
	out := rules.Features{}
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Options configures Synthesize.
type Options struct {
	GamePath     string
	ResourcePath string // defaults to GamePath
	JavaPath     string

	MinMemory int // MiB
	MaxMemory int // MiB

	GameProfile  GameProfile
	AccessToken  string
	UserType     string
	Properties   map[string][]string
	Features     Features
	FeatureValues map[string]string

	LauncherName  string
	LauncherBrand string

	NativeRoot string
	GameIcon   string
	GameName   string

	IgnoreInvalidMinecraftCertificates bool
	IgnorePatchDiscrepancies           bool

	YggdrasilAgent *YggdrasilAgent

	ExtraClassPaths []string
	ExtraJVMArgs    []string
	ExtraMCArgs     []string

	Resolution *Resolution
	Server     *Server

	VersionName string
	VersionType string
	IsDemo      bool

	// Platform overrides (part or all of) autodetection, used for
	// cross-targeting or tests.
	Platform *platform.Platform
}

func (o *Options) effectivePlatform() platform.Platform {
	if o.Platform != nil {
		return platform.Override(platform.Detect(), *o.Platform)
	}
	return platform.Detect()
}

func randomHex128() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (o *Options) applyDefaults() {
	if o.ResourcePath == "" {
		o.ResourcePath = o.GamePath
	}
	if o.GameProfile.ID == "" {
		o.GameProfile.ID = randomHex128()
	}
	if o.GameProfile.Name == "" {
		o.GameProfile.Name = "Steve"
	}
	if o.AccessToken == "" {
		o.AccessToken = randomHex128()
	}
	if o.UserType == "" {
		o.UserType = "Mojang"
	}
	if o.LauncherName == "" {
		o.LauncherName = "Launcher"
	}
	if o.LauncherBrand == "" {
		o.LauncherBrand = "0.0.1"
	}
	if o.GameName == "" {
		o.GameName = "Minecraft"
	}
}
