package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchkit/mccore/pkg/launch"
	"github.com/launchkit/mccore/pkg/version"
)

var (
	serverMinMemoryFlag int
	serverMaxMemoryFlag int
	noGUIFlag           bool
)

var serverArgvCmd = &cobra.Command{
	Use:   "server-argv <versionId>",
	Short: "Print the dedicated-server argument vector for a resolved version",
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

		argv, err := launch.ResolveAndSynthesizeServer(context.Background(), rootFlag, args[0], resolveOpts, launch.ServerOptions{
			JavaPath:  javaFlag,
			MinMemory: serverMinMemoryFlag,
			MaxMemory: serverMaxMemoryFlag,
			NoGUI:     noGUIFlag,
		})
		if err != nil {
			return fmt.Errorf("server-argv: %w", err)
		}

		for _, a := range argv {
			fmt.Println(a)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverArgvCmd)
	serverArgvCmd.Flags().IntVar(&serverMinMemoryFlag, "Xms", 1024, "minimum heap size in MiB")
	serverArgvCmd.Flags().IntVar(&serverMaxMemoryFlag, "Xmx", 1024, "maximum heap size in MiB")
	serverArgvCmd.Flags().BoolVar(&noGUIFlag, "nogui", true, "append the nogui flag")
}
