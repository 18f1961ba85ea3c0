package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchkit/mccore/pkg/diagnose"
	"github.com/launchkit/mccore/pkg/version"
)

var strictFlag bool

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <versionId>",
	Short: "Check an installed version's files against its manifest checksums",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resolveOpts []version.Option
		plat, err := platformOverride()
		if err != nil {
			return err
		}
		if plat != nil {
			resolveOpts = append(resolveOpts, version.WithPlatform(*plat))
		}

		report := diagnose.Diagnose(context.Background(), rootFlag, args[0], diagnose.Options{Strict: strictFlag}, resolveOpts...)

		fmt.Println("[*] Diagnosing", args[0], "under", rootFlag)
		if report.OK() {
			fmt.Println("- No issues found")
			return nil
		}

		for _, issue := range report.Issues {
			fmt.Printf("- [%s] %s: %s (%s)\n", issue.Kind, issue.Role, issue.Path, issue.Hint)
		}
		return fmt.Errorf("found %d issue(s)", len(report.Issues))
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	diagnoseCmd.Flags().BoolVar(&strictFlag, "strict", false, "trust a matching file size for libraries but always hash asset objects (inverted for non-strict)")
}
