package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/campusconnect/campusconnect/internal/cli/ui"
	"github.com/campusconnect/campusconnect/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "campusconnect",
	Short:   "Random one-to-one video-chat matchmaking from the terminal",
	Long:    `CampusConnect pairs you with a random partner through the matchmaking relay and opens a direct WebRTC chat channel with them. The same relay serves the browser client; the CLI speaks the identical protocol.`,
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		os.Exit(0)
	}()

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
