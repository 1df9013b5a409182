package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"marketfetcher/internal/catalog"
	"marketfetcher/internal/coordinator"
	"marketfetcher/internal/market"
)

const defaultAppID = 730

func (a *app) priceCmd() *cobra.Command {
	var appID int
	cmd := &cobra.Command{
		Use:   "price NAME",
		Short: "Show the price overview of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := settle(a.client.ItemPrice(cmd.Context(), market.ItemPriceParams{
				MarketHashName: args[0],
				AppID:          appID,
			}))
			if err != nil {
				return err
			}
			return printJSON(a.out, overview)
		},
	}
	cmd.Flags().IntVar(&appID, "appid", defaultAppID, "app the item belongs to")
	return cmd
}

func (a *app) imageCmd() *cobra.Command {
	var appID, size int
	cmd := &cobra.Command{
		Use:   "image NAME",
		Short: "Print the image URL of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := settle(a.client.ItemImage(cmd.Context(), market.ItemImageParams{
				MarketHashName: args[0],
				AppID:          appID,
				Size:           size,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, url)
			return nil
		},
	}
	cmd.Flags().IntVar(&appID, "appid", defaultAppID, "app the item belongs to")
	cmd.Flags().IntVar(&size, "size", 0, "image size in pixels (default 360)")
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var appID int
	cmd := &cobra.Command{
		Use:   "history NAME",
		Short: "Show the price history of an item (needs --cookie)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := settle(a.client.PriceHistory(cmd.Context(), market.PriceHistoryParams{
				MarketHashName: args[0],
				AppID:          appID,
				Cookie:         a.cfg.Cookie,
			}))
			if err != nil {
				return err
			}
			return printJSON(a.out, history)
		},
	}
	cmd.Flags().IntVar(&appID, "appid", defaultAppID, "app the item belongs to")
	return cmd
}

func (a *app) listingsCmd() *cobra.Command {
	var (
		appID, start, count, descriptions int
		all                               bool
	)
	cmd := &cobra.Command{
		Use:   "listings [QUERY]",
		Short: "Search the market listings of an app",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if all {
				listings, err := settle(a.client.AllMarketListings(cmd.Context(), market.AllMarketListingsParams{
					Query:        query,
					Descriptions: descriptions,
					AppID:        appID,
				}))
				if err != nil {
					return err
				}
				return printJSON(a.out, listings)
			}

			page, err := settle(a.client.MarketListings(cmd.Context(), market.MarketListingsParams{
				Query:        query,
				Descriptions: descriptions,
				AppID:        appID,
				Start:        start,
				Count:        count,
			}))
			if err != nil {
				return err
			}
			return printJSON(a.out, page)
		},
	}
	cmd.Flags().IntVar(&appID, "appid", defaultAppID, "app to search")
	cmd.Flags().IntVar(&start, "start", 0, "index of the first result")
	cmd.Flags().IntVar(&count, "count", 0, "results per page, at most 100 (default 100)")
	cmd.Flags().IntVar(&descriptions, "descriptions", 0, "1 to also search item descriptions")
	cmd.Flags().BoolVar(&all, "all", false, "collect every page")
	return cmd
}

func (a *app) activityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity NAMEID",
		Short: "Show the recent order activity of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := settle(a.client.ItemActivity(cmd.Context(), market.ActivityParams{ItemNameID: args[0]}))
			if err != nil {
				return err
			}
			return printJSON(a.out, activity)
		},
	}
}

func (a *app) histogramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "histogram NAMEID",
		Short: "Show the buy and sell order book of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			histogram, err := settle(a.client.ItemHistogram(cmd.Context(), market.HistogramParams{ItemNameID: args[0]}))
			if err != nil {
				return err
			}
			return printJSON(a.out, histogram)
		},
	}
}

func (a *app) popularCmd() *cobra.Command {
	var start, count int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Show the most popular listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			popular, err := settle(a.client.PopularListings(cmd.Context(), market.PopularListingsParams{
				Start: start,
				Count: count,
			}))
			if err != nil {
				return err
			}
			return printJSON(a.out, popular)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "index of the first result")
	cmd.Flags().IntVar(&count, "count", 0, "results, at most 100 (default 100)")
	return cmd
}

func (a *app) recentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recent, err := settle(a.client.RecentListings(cmd.Context(), market.RecentListingsParams{}))
			if err != nil {
				return err
			}
			return printJSON(a.out, recent)
		},
	}
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [APPID:NAME...]",
		Short: "Price the configured watch list and any items given as arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []coordinator.Item
			for _, w := range a.cfg.Watchlist {
				items = append(items, coordinator.Item{MarketHashName: w.MarketHashName, AppID: w.AppID})
			}
			for _, arg := range args {
				item, err := parseItem(arg)
				if err != nil {
					return err
				}
				items = append(items, item)
			}

			return coordinator.New(a.client, items).Run(cmd.Context(), a.out)
		},
	}
}

// parseItem reads an "APPID:NAME" argument
func parseItem(s string) (coordinator.Item, error) {
	id, name, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return coordinator.Item{}, fmt.Errorf("invalid item %q: want APPID:NAME", s)
	}
	appID, err := strconv.Atoi(id)
	if err != nil {
		return coordinator.Item{}, fmt.Errorf("invalid item %q: %w", s, err)
	}
	return coordinator.Item{MarketHashName: name, AppID: appID}, nil
}

func (a *app) currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the supported currency codes",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			table := catalog.Currencies()
			codes := make([]string, 0, len(table))
			for code := range table {
				codes = append(codes, code)
			}
			sort.Slice(codes, func(i, j int) bool { return table[codes[i]] < table[codes[j]] })
			for _, code := range codes {
				fmt.Fprintf(a.out, "%-4s %d\n", code, table[code])
			}
			return nil
		},
	}
}
