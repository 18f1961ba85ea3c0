package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchkit/mccore/pkg/source"
	"github.com/launchkit/mccore/pkg/version"
)

var fetchFullFlag bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <versionId> <uri>",
	Short: "Mirror a version's manifest from a remote source into the installation root",
	Long: `Mirror a version's manifest from a remote source (file://, http(s)://, sftp://) into
the installation root (--root), so the core resolve/diagnose/launch-argv commands have
something to operate on. This is a convenience wrapper: the core never performs network I/O
itself.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		versionID, uri := args[0], args[1]

		src, err := source.New(uri)
		if err != nil {
			return fmt.Errorf("fetch: %w", err)
		}
		defer src.Close()

		fmt.Println("[*] Fetching", versionID, "from", uri)
		skipped, err := source.MirrorVersionManifest(src, rootFlag, versionID)
		if err != nil {
			return fmt.Errorf("fetch: %w", err)
		}
		if skipped {
			fmt.Println("- manifest already present, skipped")
		} else {
			fmt.Println("- manifest mirrored")
		}

		if !fetchFullFlag {
			return nil
		}

		rv, err := version.Resolve(rootFlag, versionID)
		if err != nil {
			return fmt.Errorf("fetch: resolving %q after mirror: %w", versionID, err)
		}

		relPaths := make([]string, 0, len(rv.Libraries))
		for _, lib := range rv.Libraries {
			relPaths = append(relPaths, lib.Download.Path)
		}
		if err := source.MirrorLibraries(src, rootFlag, relPaths); err != nil {
			return fmt.Errorf("fetch: mirroring libraries: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchFullFlag, "full", false, "also resolve the version and mirror its libraries")
}
