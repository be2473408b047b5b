package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version заполняется при сборке через -ldflags.
var version = ""

// getVersion: ldflags > debug.ReadBuildInfo > "(devel)".
func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// NewVersionCmd создаёт команду version.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "onelife version %s\n", getVersion())
		},
	}
}
