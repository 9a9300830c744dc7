package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/keen-tray/src/internal/commands"
	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = "keen-tray.toml"
	}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", defaultConfigPath, "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Keenetic Tray\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  status                  Select the active router and show this device's policy\n")
		fmt.Fprintf(os.Stderr, "  routers                 List configured routers\n")
		fmt.Fprintf(os.Stderr, "  add-router              Add or edit a router (verifies the credentials)\n")
		fmt.Fprintf(os.Stderr, "  remove-router           Remove a router and its stored password\n")
		fmt.Fprintf(os.Stderr, "  policy                  Set, reset or block the policy of a client\n")
		fmt.Fprintf(os.Stderr, "  dns                     Show DNS servers of the active router\n")
		fmt.Fprintf(os.Stderr, "  watch                   Periodically refresh and print state changes\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the local HTTP API for tray front-ends\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateStatusCommand(),
		commands.CreateRoutersCommand(),
		commands.CreateAddRouterCommand(),
		commands.CreateRemoveRouterCommand(),
		commands.CreatePolicyCommand(),
		commands.CreateDNSCommand(),
		commands.CreateWatchCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
