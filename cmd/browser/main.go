// Command browser is an interactive terminal front-end for the
// tickerboard API: a card grid per asset type, a per-symbol detail view
// with an optional comparison overlay, and a headline reader.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"tickerboard/internal/client"
	"tickerboard/internal/config"
	"tickerboard/internal/domain/models"
	"tickerboard/internal/logger"
)

func main() {
	var (
		help = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	api := client.NewAPIClient(cfg.Client.BaseURL,
		client.WithTimeout(time.Duration(cfg.Client.TimeoutSeconds)*time.Second),
		client.WithLogger(log),
	)

	controllers := map[string]*client.Controller{
		"stocks": client.NewController(api, client.Stocks, cfg.Client.GridWorkers, cfg.Client.GridLimit, log),
		"etfs":   client.NewController(api, client.ETFs, cfg.Client.GridWorkers, cfg.Client.GridLimit, log),
	}

	ctx := context.Background()
	active := controllers["stocks"]
	active.ShowGrid(ctx)
	client.RenderSnapshot(os.Stdout, active.Asset(), active.Snapshot())

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		command, args := strings.ToLower(fields[0]), fields[1:]
		switch command {
		case "quit", "exit":
			return

		case "help":
			printCommands()

		case "stocks", "etfs":
			active = controllers[command]
			active.ShowGrid(ctx)
			client.RenderSnapshot(os.Stdout, active.Asset(), active.Snapshot())

		case "select":
			if len(args) != 1 {
				fmt.Println("usage: select <SYMBOL>")
				break
			}
			active.SelectSymbol(ctx, strings.ToUpper(args[0]))
			client.RenderSnapshot(os.Stdout, active.Asset(), active.Snapshot())

		case "compare":
			if len(args) != 1 {
				fmt.Println("usage: compare <SYMBOL>")
				break
			}
			active.SetCompare(ctx, strings.ToUpper(args[0]))
			client.RenderSnapshot(os.Stdout, active.Asset(), active.Snapshot())

		case "clear":
			active.ClearCompare(ctx)
			client.RenderSnapshot(os.Stdout, active.Asset(), active.Snapshot())

		case "back":
			active.Back(ctx)
			client.RenderSnapshot(os.Stdout, active.Asset(), active.Snapshot())

		case "news":
			showNews(ctx, api, args)

		default:
			fmt.Printf("unknown command %q (try help)\n", command)
		}
		fmt.Print("> ")
	}
}

// showNews fetches headlines, optionally filtered by source. The first
// argument names the source when it matches a known one; anything left
// over becomes a text query, applied only from two characters up so a
// stray key press does not filter everything away.
func showNews(ctx context.Context, api *client.APIClient, args []string) {
	source := models.HeadlineSourceAll
	if len(args) > 0 && models.ValidHeadlineSource(args[0]) {
		source = args[0]
		args = args[1:]
	}

	records, err := api.Headlines(ctx, source, 0)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	query := strings.ToLower(strings.Join(args, " "))
	if len(query) >= 2 {
		filtered := records[:0]
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.Headline), query) ||
				strings.Contains(strings.ToLower(rec.Description), query) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	client.RenderHeadlines(os.Stdout, records)
}

func printCommands() {
	fmt.Println("Commands:")
	fmt.Println("  stocks                 show the stock card grid")
	fmt.Println("  etfs                   show the ETF card grid")
	fmt.Println("  select <SYMBOL>        open the detail view for a symbol")
	fmt.Println("  compare <SYMBOL>       overlay a second symbol on the detail view")
	fmt.Println("  clear                  drop the comparison overlay")
	fmt.Println("  back                   return to the grid")
	fmt.Println("  news [source] [query]  show headlines, optionally filtered")
	fmt.Println("  quit                   exit")
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  browser")
	fmt.Println("  browser --help")
	fmt.Println()
	fmt.Println("Interactive terminal browser for the tickerboard API.")
}
