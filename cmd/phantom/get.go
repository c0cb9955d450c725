package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	getJSON bool
)

var getCmd = &cobra.Command{
	Use:   "get [slug]",
	Short: "Get a single entry",
	Long:  `Get an entry by its slug. Outputs raw content by default, or a JSON object with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slug := args[0]

		service, err := newService()
		if err != nil {
			fatal("Error initializing phantom", err)
		}

		entry, err := service.Get(context.Background(), slug)
		if err != nil {
			fatal("Error getting entry", err)
		}

		if getJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(entry); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		// Default: Print Content
		fmt.Print(entry.Content)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
}
