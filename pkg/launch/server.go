package launch

import (
	"context"
	"fmt"

	"github.com/launchkit/mccore/pkg/layout"
	"github.com/launchkit/mccore/pkg/version"
)

// ServerOptions configures SynthesizeServer.
type ServerOptions struct {
	JavaPath   string
	MinMemory  int // MiB
	MaxMemory  int // MiB
	ServerJar  string
	ExtraJVMArgs []string
	ExtraMCArgs  []string
	NoGUI        bool
}

// SynthesizeServer builds the dedicated-server argv. Unlike Synthesize,
// it requires an already-resolved version: the source's server-argv path
// calls its resolver without awaiting it, leaving an un-awaited promise
// in play. This signature makes that mistake impossible to reproduce in
// Go — there is no implicit promise to forget, only an explicit
// *version.ResolvedVersion the caller must have obtained first.
func SynthesizeServer(rv *version.ResolvedVersion, opts ServerOptions) []string {
	args := []string{opts.JavaPath}
	if opts.MinMemory > 0 {
		args = append(args, fmt.Sprintf("-Xms%dM", opts.MinMemory))
	}
	if opts.MaxMemory > 0 {
		args = append(args, fmt.Sprintf("-Xmx%dM", opts.MaxMemory))
	}
	args = append(args, opts.ExtraJVMArgs...)

	serverJar := opts.ServerJar
	if serverJar == "" {
		serverJar = layout.VersionJar(rv.MinecraftDirectory, rv.MinecraftVersion, layout.JarServer)
	}
	args = append(args, "-jar", serverJar)

	args = append(args, opts.ExtraMCArgs...)
	if opts.NoGUI {
		args = append(args, "nogui")
	}
	return args
}

// ResolveAndSynthesizeServer resolves versionID under minecraftRoot and
// then builds its server argv in one call, for callers that would
// otherwise have to sequence version.Resolve and SynthesizeServer
// themselves. ctx is checked once, before resolution starts;
// version.Resolve takes no context, so a cancellation after that point
// does not interrupt the manifest reads. SynthesizeServer itself does no
// I/O.
func ResolveAndSynthesizeServer(ctx context.Context, minecraftRoot, versionID string, resolveOpts []version.Option, opts ServerOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rv, err := version.Resolve(minecraftRoot, versionID, resolveOpts...)
	if err != nil {
		return nil, fmt.Errorf("launch: resolving %q for server argv: %w", versionID, err)
	}
	return SynthesizeServer(rv, opts), nil
}
