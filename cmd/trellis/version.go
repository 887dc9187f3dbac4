package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ShayCichocki/trellis/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the trellis release",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), versionShort)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the release number")
}

// printVersion writes the release, followed by the Go toolchain and
// platform unless short is set.
func printVersion(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, version.Get())
		return
	}
	fmt.Fprintf(w, "trellis %s (%s %s/%s)\n", version.Get(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
