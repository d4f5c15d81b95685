package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/levitation-labs/invoicegen/internal/api"
	"github.com/levitation-labs/invoicegen/internal/config"
	"github.com/levitation-labs/invoicegen/internal/logging"
	"github.com/levitation-labs/invoicegen/internal/session"
	"github.com/levitation-labs/invoicegen/internal/tui"
)

func main() {
	// Root flags (parsed before the TUI takes over the terminal)
	serverFlag := flag.String("server", "", "override the backend base URL")
	flag.Parse()

	// optional .env in the working directory
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		fail(err)
	}
	if *serverFlag != "" {
		cfg.ServerBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	log, err := logging.Init(logging.Options{Level: cfg.LogLevel, Path: cfg.LogFile})
	if err != nil {
		fail(fmt.Errorf("init logging: %w", err))
	}

	sess, err := session.Restore(cfg.HomeDir)
	if err != nil {
		fail(fmt.Errorf("restore session: %w", err))
	}

	// The default screen is the protected product page; without a stored
	// session the route guard lands on login instead.
	initial := tui.RouteProducts
	switch flag.Arg(0) {
	case "":
	case "login":
		initial = tui.RouteLogin
	case "signup":
		initial = tui.RouteSignup
	case "help":
		printHelp()
		return
	default:
		fmt.Fprintln(os.Stderr, "unknown screen: "+flag.Arg(0))
		fmt.Fprintln(os.Stderr)
		printHelp()
		os.Exit(2)
	}

	client := api.New(cfg.ServerBaseURL, cfg.HTTPTimeout)
	app := tui.New(client, sess, log, initial)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fail(err)
	}
}

func printHelp() {
	fmt.Printf(`invoicegen - terminal client for the invoice generator

Usage:
  invoicegen [flags] [screen]

Screens:
  (none)     Product entry and invoice generation (requires login)
  login      Sign in with email and password
  signup     Create a new account

Flags:
  -server    Override the backend base URL (also INVOICEGEN_SERVER)

Environment:
  INVOICEGEN_SERVER, INVOICEGEN_TIMEOUT, INVOICEGEN_LOG_LEVEL,
  INVOICEGEN_LOG_FILE, INVOICEGEN_HOME, INVOICEGEN_TOKEN
`)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
