package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trellis",
	Short: "Terminal dashboard for Kanban boards",
	Long: `Trellis shows your Kanban boards in the terminal: one tab per board,
one pane per column, one line per card.

Configuration is read from config.json in the current directory
(override with TRELLIS_CONFIG). Set "source" to "fixture" to browse the
JSON files under test_data/ instead of the remote API.

Keys:
  ←/→  previous/next board
  q    quit`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printStatus(os.Stderr, "✗", err.Error(), color.FgRed)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// printStatus prints a status line with color
func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}
