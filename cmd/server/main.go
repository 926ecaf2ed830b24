package main

import (
	"fmt"
	"os"

	"github.com/Wyydra/rendezvous/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rendezvous",
		Short: "Signaling relay for peer-to-peer media sessions",
		Long: `rendezvous relays WebRTC negotiation messages (join, offer, answer,
ice-candidate) between the members of a named room over websockets, and
accepts uploads of recorded media.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	config.RegisterFlags(root.Flags())

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the signaling server (default)",
		RunE:  runServe,
	}
	config.RegisterFlags(serve.Flags())

	root.AddCommand(serve, newRoomsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
