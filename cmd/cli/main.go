// Command eatadmin is a CLI administration client for the food-ordering backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/darkcod/eatadmin/internal/api"
	"github.com/darkcod/eatadmin/internal/session"
	"github.com/darkcod/eatadmin/internal/session/sqlite"
)

// ---- config/state paths ----

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "eatadmin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "eatadmin")
}

func statePath() string { return filepath.Join(cfgDir(), "state.db") }

func defaultBaseURL() string {
	if v := os.Getenv("EATADMIN_BASE_URL"); v != "" {
		return v
	}
	return api.DefaultBaseURL
}

// ---- utils ----

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage() {
	fmt.Fprintf(os.Stderr, `eatadmin CLI
Usage:
  eatadmin [-base-url URL] [-db file] [-timeout dur] [-v] <cmd> [args]

Commands:
  version
  login          -u <email> -p <password>
  logout
  whoami
  dashboard
  orders
  order          -id <n>
  order-status   -id <n> -to <status>
  products
  product-add    -name <s> -price <n> [-desc <s>] [-category <n>] [-inactive]
  product-edit   -id <n> [-name <s>] [-price <n>] [-desc <s>] [-category <n>] [-active bool]
  product-rm     -id <n>
  categories
  category-add   -name <s> [-desc <s>]
  category-edit  -id <n> [-name <s>] [-desc <s>]
  category-rm    -id <n>
`)
	os.Exit(2)
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main opens the local credential store, wires the gateway and the session
// controller, and dispatches subcommands.
func main() {
	baseURL := flag.String("base-url", defaultBaseURL(), "backend origin")
	dbPath := flag.String("db", statePath(), "local state database")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("eatadmin %s (%s)\n", version, buildDate)
		return
	}

	logger := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	_ = os.MkdirAll(filepath.Dir(*dbPath), 0o700)
	store, err := sqlite.Open(ctx, *dbPath, logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	client := api.New(*baseURL, store, logger)
	ctrl := session.NewController(store, client, logger)
	ctrl.Bootstrap(ctx)

	app := &app{ctx: ctx, client: client, ctrl: ctrl}

	switch cmd {
	case "login":
		app.login(args)
	case "logout":
		app.logout()
	case "whoami":
		app.whoami()
	case "dashboard":
		app.dashboard()
	case "orders":
		app.orders()
	case "order":
		app.order(args)
	case "order-status":
		app.orderStatus(args)
	case "products":
		app.products()
	case "product-add":
		app.productAdd(args)
	case "product-edit":
		app.productEdit(args)
	case "product-rm":
		app.productRemove(args)
	case "categories":
		app.categories()
	case "category-add":
		app.categoryAdd(args)
	case "category-edit":
		app.categoryEdit(args)
	case "category-rm":
		app.categoryRemove(args)
	default:
		usage()
	}
}
