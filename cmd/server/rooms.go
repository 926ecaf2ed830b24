package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Wyydra/rendezvous/internal/adapter/driving/cli"
	"github.com/spf13/cobra"
)

func newRoomsCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List active rooms on a running server",
		Example: `  rendezvous rooms
  rendezvous rooms --server http://relay.internal:5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			stats, err := cli.FetchRooms(cmd.Context(), client, server)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RoomsTable(stats))
			return nil
		},
	}
	cmd.Flags().StringVarP(&server, "server", "s", "http://127.0.0.1:5000", "base URL of the server")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	return cmd
}
