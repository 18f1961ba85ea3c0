package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/launchkit/mccore/pkg/platform"
)

var (
	rootFlag     string
	javaFlag     string
	platformFlag string
)

var rootCmd = &cobra.Command{
	Use:   "mccore",
	Short: "mccore inspects and drives a Minecraft installation",
	Long:  `mccore resolves version manifests, diagnoses installed files, and synthesizes launch argument vectors for a Minecraft installation directory.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", envOr("MCCORE_ROOT", "."), "Minecraft installation root (env MCCORE_ROOT)")
	rootCmd.PersistentFlags().StringVarP(&javaFlag, "java", "j", envOr("MCCORE_JAVA", ""), "java executable path (env MCCORE_JAVA)")
	rootCmd.PersistentFlags().StringVar(&platformFlag, "platform", "", "override the detected platform as name[/arch], e.g. windows/x64 (for cross-targeting or diagnosing another OS's install)")
}

// platformOverride parses --platform into a *platform.Platform suitable
// for version.WithPlatform/launch.Options.Platform, or nil if unset. Only
// the fields the flag names are filled in; Override fills in the rest
// from the detected platform.
func platformOverride() (*platform.Platform, error) {
	if platformFlag == "" {
		return nil, nil
	}
	parts := strings.SplitN(platformFlag, "/", 2)
	p := platform.Platform{Name: platform.Name(parts[0])}
	if len(parts) == 2 {
		p.Arch = parts[1]
	}
	switch p.Name {
	case platform.OSX, platform.Linux, platform.Windows, platform.Unknown:
	default:
		return nil, fmt.Errorf("unrecognized --platform name %q (want osx, linux, windows, or unknown)", parts[0])
	}
	return &p, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Execute runs the mccore CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
