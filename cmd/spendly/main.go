package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"spendly/internal/config"
	"spendly/internal/core"
	"spendly/internal/events"
	"spendly/internal/expense"
	"spendly/internal/gateway"
	applog "spendly/internal/log"
	"spendly/internal/notify"
	"spendly/internal/session"
	"spendly/internal/store"
)

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := applog.New(applog.Config{
		Level:     logLevel(cfg.LogLevel),
		Component: "spendly",
	})
	applog.SetDefault(logger)

	sessions, err := store.NewSQLiteStore(cfg.StateDBPath)
	if err != nil {
		logger.Error("Failed to open state database", "path", cfg.StateDBPath, "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	var bus *events.Publisher
	if cfg.AMQPURL != "" {
		bus, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Event bus unavailable, continuing without it", "error", err)
			bus = nil
		} else {
			defer bus.Close()
		}
	}

	ctx := context.Background()
	sink := notify.NewLogSink(logger)
	gw := gateway.NewClient(cfg.APIBaseURL, sessions, sink, logger)
	auth := session.NewManager(ctx, gw, sessions, sink, sink, logger)
	expenses := expense.NewManager(gw, sink, bus, logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if !run(ctx, os.Args[1], os.Args[2:], auth, expenses) {
		os.Exit(1)
	}
}

// run dispatches one command against the core and reports whether it
// succeeded. Output is plain text; all state handling lives in the core.
func run(ctx context.Context, command string, args []string, auth *session.Manager, expenses *expense.Manager) bool {
	switch command {
	case "login":
		if len(args) != 2 {
			return usageError("login <email> <password>")
		}
		res := auth.Login(ctx, session.Credentials{Email: args[0], Password: args[1]})
		if res.Success {
			fmt.Printf("logged in as %s <%s>\n", res.User.Name(), res.User.Email())
		}
		return res.Success

	case "register":
		if len(args) != 3 {
			return usageError("register <name> <email> <password>")
		}
		res := auth.Register(ctx, session.Registration{Name: args[0], Email: args[1], Password: args[2]})
		if res.Success {
			fmt.Printf("account created for %s <%s>\n", res.User.Name(), res.User.Email())
		}
		return res.Success

	case "whoami":
		if !auth.RequireAuth() {
			return false
		}
		u := auth.CurrentUser()
		fmt.Printf("%s <%s>\n", u.Name(), u.Email())
		return true

	case "passwd":
		if len(args) != 3 {
			return usageError("passwd <current> <new> <confirm>")
		}
		return auth.SubmitPasswordForm(ctx, args[0], args[1], args[2]).Success

	case "logout":
		auth.Logout(ctx)
		return true

	case "list":
		if !auth.RequireAuth() {
			return false
		}
		filters := expense.ListFilters{}
		if len(args) > 0 {
			filters.Category = args[0]
		}
		res := expenses.List(ctx, filters)
		if !res.Success {
			return false
		}
		printExpenses(res.Expenses)
		t := expenses.Totals()
		fmt.Printf("total: %s\n", core.FormatAmount(t.Total))
		return true

	case "add":
		if len(args) < 3 {
			return usageError("add <amount> <category> <date> [description]")
		}
		form := expense.Form{
			Amount:      args[0],
			Category:    args[1],
			Date:        args[2],
			Description: strings.Join(args[3:], " "),
		}
		res := expenses.SubmitForm(ctx, form)
		if res.Success {
			fmt.Printf("added %s\n", res.Expense.ID)
		}
		return res.Success

	case "rm":
		if len(args) != 1 {
			return usageError("rm <id>")
		}
		return expenses.RequestDelete(ctx, args[0]).Success

	case "stats":
		period := "month"
		if len(args) > 0 {
			period = args[0]
		}
		res := expenses.Statistics(ctx, period)
		if res.Success {
			fmt.Println(string(res.Statistics))
		}
		return res.Success

	case "dashboard":
		if !auth.RequireAuth() {
			return false
		}
		res := expenses.LoadDashboard(ctx, expense.ListFilters{}, "month")
		if !res.Success {
			return false
		}
		printExpenses(res.Expenses)
		fmt.Println(string(res.Statistics))
		return true

	default:
		usage()
		return false
	}
}

func printExpenses(list []core.Expense) {
	for _, e := range list {
		cat := core.ResolveCategory(e.Category)
		fmt.Printf("%-26s %s %-20s %10s  %s\n",
			e.ID, cat.Icon, cat.Name, core.FormatAmount(e.Amount), core.FormatDate(e.Date))
		if e.Description != "" {
			fmt.Printf("    %s\n", e.Description)
		}
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: spendly <command> [args]

commands:
  login <email> <password>
  register <name> <email> <password>
  whoami
  passwd <current> <new> <confirm>
  logout
  list [category]
  add <amount> <category> <date> [description]
  rm <id>
  stats [period]
  dashboard`)
}

func usageError(form string) bool {
	fmt.Fprintf(os.Stderr, "usage: spendly %s\n", form)
	return false
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
