package main

import (
	"github.com/spf13/cobra"

	"marketfetcher/internal/market"
)

func (a *app) myHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "myhistory",
		Short: "Show the market history of the session owner (needs --cookie)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, err := settle(a.client.MyHistory(cmd.Context(), market.MyHistoryParams{Cookie: a.cfg.Cookie}))
			if err != nil {
				return err
			}
			return printJSON(a.out, history)
		},
	}
}

func (a *app) myListingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mylistings",
		Short: "Show the active listings of the session owner (needs --cookie)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listings, err := settle(a.client.MyListings(cmd.Context(), market.MyListingsParams{Cookie: a.cfg.Cookie}))
			if err != nil {
				return err
			}
			return printJSON(a.out, listings)
		},
	}
}
