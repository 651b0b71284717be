package main

import (
	"fmt"
	"os"

	"github.com/mauv0809/bgstats/internal/config"
	"github.com/spf13/cobra"
)

var (
	host   string
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "bgstats-cli",
	Short: "A CLI to interact with the bgstats server",
	Long: `A command-line interface for importing analysed backgammon matches
and maintaining the match store of a running bgstats server.`,
}

func init() {
	defaultHost := config.New().ServerURL
	if cfg, err := config.Load(); err == nil {
		defaultHost = cfg.ServerURL
	}
	rootCmd.PersistentFlags().StringVar(&host, "host", defaultHost, "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Do not send notifications or publish events")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
