package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/reshetovitsme/product-scout/internal/client"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	syncDomain "github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	syncService "github.com/reshetovitsme/product-scout/internal/modules/channelsync/service"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	profitDomain "github.com/reshetovitsme/product-scout/internal/modules/profit/domain"
	profitService "github.com/reshetovitsme/product-scout/internal/modules/profit/service"
	searchService "github.com/reshetovitsme/product-scout/internal/modules/search/service"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/reshetovitsme/product-scout/internal/shared/money"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"github.com/urfave/cli/v2"
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "scout",
		Usage:  "search wholesale products and manage channels from the terminal",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Usage: "API base URL, defaults to api_base_url from config"},
			&cli.DurationFlag{Name: "timeout", Usage: "request timeout, defaults to api_timeout_seconds from config"},
			&cli.StringFlag{Name: "log-level", Value: "warn"},
		},
		Commands: []*cli.Command{
			searchCommand(),
			profitCommand(),
			channelsCommand(),
		},
	}
}

// newClient resolves the API endpoint from flags, falling back to the config file and environment.
func newClient(c *cli.Context) (*client.Client, *slog.Logger, error) {
	logger := logging.New(c.String("log-level"))

	baseURL, timeout := c.String("api"), c.Duration("timeout")
	if baseURL == "" || timeout == 0 {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, oops.With("context", "loading config").Wrap(err)
		}
		baseURL = lo.CoalesceOrEmpty(baseURL, cfg.APIBaseURL)
		timeout = lo.CoalesceOrEmpty(timeout, cfg.APITimeout())
	}
	return client.New(baseURL, timeout, logger), logger, nil
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "search the catalog, falling back to sample data when the API is down",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "price-min"},
			&cli.StringFlag{Name: "price-max"},
			&cli.StringFlag{Name: "min-qty"},
			&cli.StringSliceFlag{Name: "category"},
			&cli.StringSliceFlag{Name: "channel"},
			&cli.BoolFlag{Name: "mock", Usage: "query the mock search endpoint"},
		},
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return oops.Wrapf(errors.ErrInvalidInput, "search needs a query")
			}
			facets, err := filter.Parse(c.String("price-min"), c.String("price-max"), c.String("min-qty"),
				c.StringSlice("category"), c.StringSlice("channel"))
			if err != nil {
				return err
			}
			api, logger, err := newClient(c)
			if err != nil {
				return err
			}

			if c.Bool("mock") {
				products, err := api.MockSearchProducts(c.Context, query)
				if err != nil {
					return err
				}
				printProducts(c.App.Writer, filter.Apply(products, facets))
				return nil
			}

			session := searchService.NewSession(api, logger)
			session.SetFacets(facets)
			result, err := session.Search(c.Context, query)
			if err != nil {
				return err
			}
			if result.Notice != nil {
				fmt.Fprintf(c.App.Writer, "%s: %s\n", result.Notice.Title, result.Notice.Description)
			}
			printProducts(c.App.Writer, result.Products)
			return nil
		},
	}
}

func printProducts(w io.Writer, products []productDomain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	for _, p := range products {
		fmt.Fprintf(w, "%-6s %-32s %10s  min %-4d %-14s %s\n",
			p.ID, p.Name, money.FormatINR(p.Price), p.MinQuantity, p.Category, p.Channel)
	}
	fmt.Fprintf(w, "%d products\n", len(products))
}

func profitCommand() *cli.Command {
	return &cli.Command{
		Name:  "profit",
		Usage: "estimate profit and margin for a selling price",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "price", Required: true, Usage: "selling price, e.g. 1299 or 1.2k"},
			&cli.StringFlag{Name: "shipping", Value: "0"},
			&cli.StringFlag{Name: "fee", Value: "0", Usage: "platform fee"},
			&cli.StringFlag{Name: "marketing", Value: "0"},
		},
		Action: func(c *cli.Context) error {
			amounts := make(map[string]float64, 4)
			for _, name := range []string{"price", "shipping", "fee", "marketing"} {
				v, err := money.ParseAmount(c.String(name))
				if err != nil {
					return oops.With("flag", name).Wrap(err)
				}
				amounts[name] = v
			}

			estimate, err := profitService.Calculate(amounts["price"], profitDomain.Costs{
				Shipping:    amounts["shipping"],
				PlatformFee: amounts["fee"],
				Marketing:   amounts["marketing"],
			})
			if err != nil {
				return err
			}

			w := c.App.Writer
			fmt.Fprintf(w, "Price:  %s\n", money.FormatINR(estimate.Price))
			fmt.Fprintf(w, "Costs:  %s\n", money.FormatINR(estimate.TotalCosts))
			fmt.Fprintf(w, "Profit: %s\n", money.FormatINR(estimate.Profit))
			fmt.Fprintf(w, "Margin: %.1f%% (%s)\n", estimate.Margin, estimate.Rating)
			for _, s := range estimate.Scenarios {
				fmt.Fprintf(w, "  %-12s %s (%.1f%%)\n", s.Name+":", money.FormatINR(s.Profit), s.Margin)
			}
			return nil
		},
	}
}

func channelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "channels",
		Usage: "list, save and sync channels",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list channels the bot has joined",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query"},
					&cli.StringFlag{Name: "verification", Value: string(syncDomain.VerificationAll)},
					&cli.StringFlag{Name: "sort", Value: string(syncDomain.SortByMembers)},
				},
				Action: listJoined,
			},
			{
				Name:   "saved",
				Usage:  "list managed channels",
				Action: listSaved,
			},
			{
				Name:      "save",
				Usage:     "save joined channels by telegram id",
				ArgsUsage: "[--] <telegram_id>...",
				Action:    saveChannels,
			},
			{
				Name:      "sync",
				Usage:     "fetch products a channel posted since its last sync",
				ArgsUsage: "<channel_id>",
				Action:    syncChannel,
			},
		},
	}
}

func listJoined(c *cli.Context) error {
	verification, err := syncDomain.ParseVerification(c.String("verification"))
	if err != nil {
		return err
	}
	sortBy, err := syncDomain.ParseSortBy(c.String("sort"))
	if err != nil {
		return err
	}
	api, logger, err := newClient(c)
	if err != nil {
		return err
	}

	flow := syncService.NewFlow(api, logger)
	if _, err := flow.Fetch(c.Context); err != nil {
		return err
	}
	channels := flow.Visible(syncDomain.ListOptions{
		Query:        c.String("query"),
		Verification: verification,
		SortBy:       sortBy,
	})
	for _, j := range channels {
		fmt.Fprintf(c.App.Writer, "%-16s %-28s %8d members  verified=%-5t saved=%t\n",
			j.TelegramID, j.ChannelName, j.Members, j.IsVerified, j.IsSaved)
	}
	fmt.Fprintf(c.App.Writer, "%d channels\n", len(channels))
	return nil
}

func listSaved(c *cli.Context) error {
	api, _, err := newClient(c)
	if err != nil {
		return err
	}
	channels, err := api.SavedChannels(c.Context)
	if err != nil {
		return err
	}
	for _, ch := range channels {
		fmt.Fprintf(c.App.Writer, "%-16s %-28s %-8s %-14s %s\n",
			ch.ID, ch.Name, ch.Status, ch.Category, lastSync(ch))
	}
	fmt.Fprintf(c.App.Writer, "%d channels\n", len(channels))
	return nil
}

func lastSync(ch channelDomain.Channel) string {
	if ch.LastSync.IsZero() {
		return "never synced"
	}
	return "synced " + ch.LastSync.Local().Format(time.DateTime)
}

func saveChannels(c *cli.Context) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return oops.Wrapf(errors.ErrInvalidInput, "save needs at least one telegram id")
	}
	api, logger, err := newClient(c)
	if err != nil {
		return err
	}

	flow := syncService.NewFlow(api, logger)
	if _, err := flow.Fetch(c.Context); err != nil {
		return err
	}
	if err := flow.Select(ids...); err != nil {
		return err
	}
	count := len(flow.Selected())
	if err := flow.SaveSelected(c.Context); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d channels saved\n", count)
	return nil
}

func syncChannel(c *cli.Context) error {
	channelID := c.Args().First()
	if channelID == "" {
		return oops.Wrapf(errors.ErrInvalidInput, "sync needs a channel id")
	}
	api, logger, err := newClient(c)
	if err != nil {
		return err
	}

	products, err := syncService.NewFlow(api, logger).Sync(c.Context, channelID)
	if err != nil {
		return err
	}
	printProducts(c.App.Writer, products)
	return nil
}
