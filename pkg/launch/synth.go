package launch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/launchkit/mccore/pkg/layout"
	"github.com/launchkit/mccore/pkg/mcerr"
	"github.com/launchkit/mccore/pkg/platform"
	"github.com/launchkit/mccore/pkg/rules"
	"github.com/launchkit/mccore/pkg/version"
)

var defaultExtraJVMArgs = []string{
	"-Xmx2G",
	"-XX:+UnlockExperimentalVMOptions",
	"-XX:+UseG1GC",
	"-XX:G1NewSizePercent=20",
	"-XX:G1ReservePercent=20",
	"-XX:MaxGCPauseMillis=50",
	"-XX:G1HeapRegionSize=32M",
}

// Synthesize builds the ordered JVM+game argument vector for rv under
// opts. The caller is responsible for turning the result into an
// exec.Cmd, exactly as the teacher's Launcher.Run builds argv before
// handing it to exec.Command (game/launcher/launcher.go).
func Synthesize(rv *version.ResolvedVersion, opts Options) ([]string, error) {
	if rv == nil {
		return nil, &mcerr.InvalidOptions{Reason: "version must be resolved before calling Synthesize"}
	}
	if opts.GamePath == "" {
		return nil, &mcerr.InvalidOptions{Reason: "gamePath is required"}
	}

	opts.applyDefaults()
	plat := opts.effectivePlatform()

	gamePath, err := filepath.Abs(opts.GamePath)
	if err != nil {
		return nil, fmt.Errorf("launch: resolving gamePath: %w", err)
	}
	resourcePath := opts.ResourcePath
	if resourcePath == opts.GamePath || resourcePath == "" {
		resourcePath = gamePath
	} else if abs, err := filepath.Abs(resourcePath); err == nil {
		resourcePath = abs
	}

	nativeRoot := opts.NativeRoot
	if nativeRoot == "" {
		nativeRoot = layout.NativesRoot(resourcePath, rv.ID)
	}

	gameIcon := opts.GameIcon
	if gameIcon == "" {
		gameIcon = resolveGameIcon(resourcePath, rv)
	}

	args := []string{opts.JavaPath}

	if plat.Name == platform.OSX {
		args = append(args, "-Xdock:name="+opts.GameName)
		if gameIcon != "" {
			args = append(args, "-Xdock:icon="+gameIcon)
		}
	}

	if opts.MinMemory > 0 {
		args = append(args, fmt.Sprintf("-Xms%dM", opts.MinMemory))
	}
	if opts.MaxMemory > 0 {
		args = append(args, fmt.Sprintf("-Xmx%dM", opts.MaxMemory))
	}

	if opts.IgnoreInvalidMinecraftCertificates {
		args = append(args, "-Dfml.ignoreInvalidMinecraftCertificates=true")
	}
	if opts.IgnorePatchDiscrepancies {
		args = append(args, "-Dfml.ignorePatchDiscrepancies=true")
	}

	if opts.YggdrasilAgent != nil {
		a := opts.YggdrasilAgent
		args = append(args, fmt.Sprintf("-javaagent:%s=%s", a.Jar, a.Server))
		args = append(args, "-Dauthlibinjector.side=client")
		if a.Prefetched != "" {
			args = append(args, "-Dauthlibinjector.yggdrasil.prefetched="+a.Prefetched)
		}
	}

	activeFeatures := opts.Features.toRulesFeatures()

	classpath, err := buildClasspath(resourcePath, rv, opts)
	if err != nil {
		return nil, err
	}

	jvmValues := map[string]string{
		"natives_directory":  nativeRoot,
		"launcher_name":      opts.LauncherName,
		"launcher_version":   opts.LauncherBrand,
		"classpath":          classpath,
		"library_directory":  layout.Libraries(resourcePath),
		"classpath_separator": string(os.PathListSeparator),
		"version_name":       rv.ID,
	}
	for k, v := range opts.FeatureValues {
		jvmValues[k] = v
	}

	// rv.Arguments.JVM is already fully resolved to plain strings by the
	// resolver's merge — only the game arguments still carry unresolved
	// rule-gated elements at this point.
	args = append(args, interpolateAll(rv.Arguments.JVM, jvmValues)...)

	if logArg := buildLoggingArgument(resourcePath, rv, jvmValues); logArg != "" {
		args = append(args, logArg)
	}

	extraJVM := opts.ExtraJVMArgs
	if extraJVM == nil {
		extraJVM = defaultExtraJVMArgs
		if opts.MaxMemory > 0 {
			filtered := make([]string, 0, len(extraJVM))
			for _, a := range extraJVM {
				if a == "-Xmx2G" {
					continue
				}
				filtered = append(filtered, a)
			}
			extraJVM = filtered
		}
	}
	args = append(args, extraJVM...)

	args = append(args, rv.MainClass)

	versionType := opts.VersionType
	if versionType == "" {
		versionType = rv.Type
	}
	if opts.IsDemo {
		activeFeatures["is_demo_user"] = true
	}

	gameValues := gamePlaceholders(rv, opts, gamePath, resourcePath, versionType)
	for k, v := range opts.FeatureValues {
		gameValues[k] = v
	}

	gameFromManifest := evaluateConditionalStrings(rv.Arguments.Game, nil, activeFeatures, plat)
	args = append(args, interpolateAll(gameFromManifest, gameValues)...)

	args = append(args, opts.ExtraMCArgs...)

	if opts.Server != nil {
		args = append(args, "--server", opts.Server.IP)
		if opts.Server.Port != "" {
			args = append(args, "--port", opts.Server.Port)
		}
	}

	if opts.Resolution != nil && !containsFlag(args, "--width") {
		if opts.Resolution.Fullscreen {
			args = append(args, "--fullscreen")
		} else if opts.Resolution.Width > 0 && opts.Resolution.Height > 0 {
			args = append(args, "--height", strconv.Itoa(opts.Resolution.Height), "--width", strconv.Itoa(opts.Resolution.Width))
		}
	}

	return args, nil
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// evaluateConditionalStrings flattens a mix of plain and rule-gated
// argument elements against the current platform/features. Rejected
// conditionals contribute nothing; accepted ones spread their values.
func evaluateConditionalStrings(elems []version.ArgumentElement, _ []string, features rules.Features, plat platform.Platform) []string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if e.IsPlain {
			out = append(out, e.Plain)
			continue
		}
		if rules.Evaluate(e.Rules, plat, features) {
			out = append(out, e.Values...)
		}
	}
	return out
}

func resolveGameIcon(resourcePath string, rv *version.ResolvedVersion) string {
	data, err := os.ReadFile(layout.AssetsIndex(resourcePath, rv.AssetIndex.ID))
	if err != nil {
		return ""
	}
	var idx struct {
		Objects map[string]struct {
			Hash string `json:"hash"`
		} `json:"objects"`
	}
	if err := json.Unmarshal(data, &idx); err != nil {
		return ""
	}
	for _, key := range []string{"icons/minecraft.icns", "minecraft/icons/minecraft.icns"} {
		if obj, ok := idx.Objects[key]; ok {
			return layout.Asset(resourcePath, obj.Hash)
		}
	}
	return ""
}

func buildClasspath(resourcePath string, rv *version.ResolvedVersion, opts Options) (string, error) {
	parts := make([]string, 0, len(rv.Libraries)+1+len(opts.ExtraClassPaths))
	for _, lib := range rv.Libraries {
		if lib.IsNative {
			continue
		}
		parts = append(parts, layout.Library(resourcePath, lib.Download.Path))
	}
	parts = append(parts, layout.VersionJar(resourcePath, rv.ID, layout.JarClient))
	parts = append(parts, opts.ExtraClassPaths...)
	return strings.Join(parts, string(os.PathListSeparator)), nil
}

func buildLoggingArgument(resourcePath string, rv *version.ResolvedVersion, jvmValues map[string]string) string {
	client := rv.Logging.Client
	if client.Argument == "" || client.File.ID == "" {
		return ""
	}
	path := layout.LogConfig(resourcePath, client.File.ID)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return interpolate(client.Argument, map[string]string{"path": path})
}

func gamePlaceholders(rv *version.ResolvedVersion, opts Options, gamePath, resourcePath, versionType string) map[string]string {
	width, height := "-1", "-1"
	if opts.Resolution != nil {
		if opts.Resolution.Width > 0 {
			width = strconv.Itoa(opts.Resolution.Width)
		}
		if opts.Resolution.Height > 0 {
			height = strconv.Itoa(opts.Resolution.Height)
		}
	}

	propsJSON := "{}"
	if len(opts.Properties) > 0 {
		if b, err := json.Marshal(opts.Properties); err == nil {
			propsJSON = string(b)
		}
	}

	versionName := opts.VersionName
	if versionName == "" {
		versionName = rv.ID
	}

	return map[string]string{
		"version_name":       versionName,
		"version_type":       versionType,
		"assets_root":        filepath.Join(resourcePath, "assets"),
		"game_assets":        filepath.Join(layout.Assets(resourcePath), "virtual", rv.Assets),
		"assets_index_name":  rv.AssetIndex.ID,
		"game_directory":     gamePath,
		"auth_player_name":   opts.GameProfile.Name,
		"auth_uuid":          opts.GameProfile.ID,
		"auth_access_token":  opts.AccessToken,
		"user_properties":    propsJSON,
		"user_type":          opts.UserType,
		"resolution_width":   width,
		"resolution_height":  height,
	}
}
