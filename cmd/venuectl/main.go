// Command venuectl executes one unified operation against a configured venue
// and prints the normalized record as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"

	"github.com/venuekit/venuekit/config"
	"github.com/venuekit/venuekit/internal/adapters"
	"github.com/venuekit/venuekit/internal/observability"
	"github.com/venuekit/venuekit/internal/schema"
	"github.com/venuekit/venuekit/internal/telemetry"
)

const telemetryShutdownTimeout = 5 * time.Second

const usage = `usage: venuectl [flags] <command> [args]

commands:
  markets                                    list all markets
  currencies                                 list the currency catalogue
  ticker <symbol>                            24h snapshot for one market
  tickers                                    24h snapshots for the default market type
  balance [spot|margin|swap|future]          account balances
  positions [symbol]                         open contract positions
  funding <symbol>                           funding rate for a perpetual
  trades <symbol>                            own fills for one market
  ledger <code>                              account history for one currency
  order create <symbol> <type> <side> <amount> [price]
  order cancel <symbol> <id>
  order get <symbol> <id>
  transfer <code> <amount> <from> <to> [symbol]
`

func main() {
	venueFlag := flag.String("venue", string(config.VenueGate), "venue to talk to (bitmart, gateio)")
	configFlag := flag.String("config", "", "path to a YAML configuration file")
	limitFlag := flag.Int("limit", 50, "row cap for list commands")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal(err)
	}
	logger := observability.NewLogrusLogger(observability.LogrusOptions{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	observability.SetLogger(logger)

	_, shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		fatal(err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", observability.F("error", err))
		}
	}()

	venue := config.Venue(*venueFlag)
	settings, ok := cfg.Venues[venue]
	if !ok {
		fatal(fmt.Errorf("no configuration for venue %q", *venueFlag))
	}
	client, err := adapters.New(venue, settings, nil)
	if err != nil {
		fatal(err)
	}

	out, err := run(ctx, client, args, *limitFlag)
	if err != nil {
		fatal(err)
	}
	printJSON(out)
}

func run(ctx context.Context, client adapters.Client, args []string, limit int) (any, error) {
	command, rest := args[0], args[1:]
	switch command {
	case "markets":
		return client.LoadMarkets(ctx)
	case "currencies":
		return client.FetchCurrencies(ctx)
	case "tickers":
		return client.FetchTickers(ctx)
	case "balance":
		marketType := schema.MarketSpot
		if len(rest) > 0 {
			marketType = schema.MarketType(rest[0])
		}
		return client.FetchBalance(ctx, marketType)
	case "ticker", "positions", "funding", "trades", "ledger", "order", "transfer":
		// everything else resolves symbols through the market index
		if _, err := client.LoadMarkets(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}

	switch command {
	case "ticker":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: ticker <symbol>")
		}
		return client.FetchTicker(ctx, rest[0])
	case "positions":
		symbol := ""
		if len(rest) > 0 {
			symbol = rest[0]
		}
		return client.FetchPositions(ctx, symbol)
	case "funding":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: funding <symbol>")
		}
		return client.FetchFundingRate(ctx, rest[0])
	case "trades":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: trades <symbol>")
		}
		return client.FetchMyTrades(ctx, rest[0], limit)
	case "ledger":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: ledger <code>")
		}
		return client.FetchLedger(ctx, rest[0], limit)
	case "order":
		return runOrder(ctx, client, rest)
	case "transfer":
		return runTransfer(ctx, client, rest)
	}
	return nil, fmt.Errorf("unknown command %q", command)
}

func runOrder(ctx context.Context, client adapters.Client, args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: order <create|cancel|get> ...")
	}
	switch args[0] {
	case "create":
		if len(args) < 5 {
			return nil, fmt.Errorf("usage: order create <symbol> <type> <side> <amount> [price]")
		}
		price := ""
		if len(args) > 5 {
			price = args[5]
		}
		return client.CreateOrder(ctx, args[1],
			schema.OrderType(args[2]), schema.OrderSide(args[3]), args[4], price,
			adapters.OrderParams{})
	case "cancel":
		if len(args) != 3 {
			return nil, fmt.Errorf("usage: order cancel <symbol> <id>")
		}
		return client.CancelOrder(ctx, args[1], args[2])
	case "get":
		if len(args) != 3 {
			return nil, fmt.Errorf("usage: order get <symbol> <id>")
		}
		return client.FetchOrder(ctx, args[1], args[2], "")
	default:
		return nil, fmt.Errorf("unknown order action %q", args[0])
	}
}

func runTransfer(ctx context.Context, client adapters.Client, args []string) (any, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("usage: transfer <code> <amount> <from> <to> [symbol]")
	}
	params := adapters.TransferParams{FromAccount: args[2], ToAccount: args[3]}
	if len(args) > 4 {
		params.Symbol = args[4]
	}
	return client.Transfer(ctx, args[0], args[1], params)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "venuectl: "+err.Error())
	os.Exit(1)
}
