// Melair-cfg is an inspection and patch-building utility for cloud-connected
// air-to-air heat pumps.
//
// It works on device snapshots: a state document (the operational readout)
// and a configuration document (identity and capabilities), both exported
// from the vendor cloud as JSON. The tool decodes them into semantic values,
// lists the unit's capabilities, and builds write patches ready for a cloud
// client to submit. It never talks to the cloud itself.
//
// Usage:
//
//	melair-cfg [command] [flags]
//
// Running without arguments launches the interactive patch wizard.
// See 'melair-cfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/melair/internal/logging"
	"github.com/muurk/melair/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "melair-cfg",
	Short: "Air-to-air unit snapshot and patch utility",
	Long: `A standalone utility for inspecting air-to-air heat pump snapshots.

Decodes device state and configuration documents exported from the vendor
cloud, lists unit capabilities, and builds write patches for submission by
a cloud client.

If no command is specified, the interactive patch wizard will launch.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("melair-cfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}
