package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchkit/mccore/pkg/launch"
	"github.com/launchkit/mccore/pkg/version"
)

var (
	gamePathFlag     string
	minMemoryFlag    int
	maxMemoryFlag    int
	playerNameFlag   string
	isDemoFlag       bool
	quickPlayServerFlag string
)

var launchArgvCmd = &cobra.Command{
	Use:   "launch-argv <versionId>",
	Short: "Print the JVM+game argument vector for a resolved version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plat, err := platformOverride()
		if err != nil {
			return err
		}

		var resolveOpts []version.Option
		if plat != nil {
			resolveOpts = append(resolveOpts, version.WithPlatform(*plat))
		}
		rv, err := version.Resolve(rootFlag, args[0], resolveOpts...)
		if err != nil {
			return fmt.Errorf("launch-argv: resolving %q: %w", args[0], err)
		}

		opts := launch.Options{
			GamePath:  gamePathFlag,
			JavaPath:  javaFlag,
			MinMemory: minMemoryFlag,
			MaxMemory: maxMemoryFlag,
			IsDemo:    isDemoFlag,
			Platform:  plat,
		}
		if playerNameFlag != "" {
			opts.GameProfile.Name = playerNameFlag
		}
		if quickPlayServerFlag != "" {
			opts.Features = launch.Features{"is_quick_play_multiplayer": true}
			opts.FeatureValues = map[string]string{"quickPlayMultiplayer": quickPlayServerFlag}
		}

		argv, err := launch.Synthesize(rv, opts)
		if err != nil {
			return fmt.Errorf("launch-argv: %w", err)
		}

		for _, a := range argv {
			fmt.Println(a)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(launchArgvCmd)
	launchArgvCmd.Flags().StringVar(&gamePathFlag, "game-path", ".", "working directory for the game")
	launchArgvCmd.Flags().IntVar(&minMemoryFlag, "Xms", 0, "minimum heap size in MiB")
	launchArgvCmd.Flags().IntVar(&maxMemoryFlag, "Xmx", 0, "maximum heap size in MiB")
	launchArgvCmd.Flags().StringVar(&playerNameFlag, "player", "", "player name")
	launchArgvCmd.Flags().BoolVar(&isDemoFlag, "demo", false, "launch as a demo user")
	launchArgvCmd.Flags().StringVar(&quickPlayServerFlag, "quick-play-multiplayer", "", "server address to quick-play into")
}
