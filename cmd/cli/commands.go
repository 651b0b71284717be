package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/notifier"
	"github.com/mauv0809/bgstats/internal/pubsub"
	"github.com/spf13/cobra"
)

var (
	importEnv     int
	importReplace bool
	summaryNotify bool
)

func init() {
	importCmd.Flags().IntVar(&importEnv, "env", 0, "Environment the player names belong to")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Replace the match if it is already recorded")
	summaryCmd.Flags().BoolVar(&summaryNotify, "notify", false, "Also post the summary to Slack")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(erasePlayerCmd)
	rootCmd.AddCommand(eraseAllCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(decodeEventCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import analysed match files (.json or .msgpack)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("env", strconv.Itoa(importEnv))
		if importReplace {
			params.Set("replace", "true")
		}
		for _, path := range args {
			body, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			contentType := "application/json"
			if analysis.FormatFromPath(path) == analysis.FormatMsgpack {
				contentType = "application/msgpack"
			}
			if err := performPostRequest("/import", params, contentType, body); err != nil {
				return err
			}
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <name>",
	Short: "Show a player's aggregate statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{"name": {args[0]}}
		if summaryNotify {
			params.Set("notify", "true")
		}
		return performGetRequest("/players/summary", params)
	},
}

var erasePlayerCmd = &cobra.Command{
	Use:   "erase-player <name>",
	Short: "Erase a player and every match they played",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players/erase", url.Values{"name": {args[0]}}, "text/plain", nil)
	},
}

var eraseAllCmd = &cobra.Command{
	Use:   "erase-all",
	Short: "Erase all matches and players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/erase-all", nil, "text/plain", nil)
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <fragment>",
	Short: "Run SELECT <fragment> against the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/query/select", nil, "text/plain", []byte(strings.Join(args, " ")))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <fragment>",
	Short: "Run UPDATE <fragment> against the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/query/update", nil, "text/plain", []byte(strings.Join(args, " ")))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

var decodeEventCmd = &cobra.Command{
	Use:   "decode-event <file>",
	Short: "Print a saved match-imported event payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		var event notifier.MatchImported
		if err := pubsub.Decode(data, &event); err != nil {
			return fmt.Errorf("failed to decode event: %w", err)
		}
		fmt.Printf("Match #%d (%s): %s vs %s, length %d, result %d, replaced %t\n",
			event.MatchID, event.Checksum, event.Players[0], event.Players[1], event.Length, event.Result, event.Replaced)
		return nil
	},
}

func requestURL(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if dryRun {
		params.Set("dry_run", "true")
	}
	u := host + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func performGetRequest(endpoint string, params url.Values) error {
	url := requestURL(endpoint, params)
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func performPostRequest(endpoint string, params url.Values, contentType string, body []byte) error {
	url := requestURL(endpoint, params)
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, contentType, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
