package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchkit/mccore/pkg/version"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <versionId>",
	Short: "Resolve a version's inheritance chain and print the merged manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []version.Option
		plat, err := platformOverride()
		if err != nil {
			return err
		}
		if plat != nil {
			opts = append(opts, version.WithPlatform(*plat))
		}

		rv, err := version.Resolve(rootFlag, args[0], opts...)
		if err != nil {
			return fmt.Errorf("resolve: %w", err)
		}

		out, err := json.MarshalIndent(rv, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
