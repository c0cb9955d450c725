package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/phantomcms/phantom"
	"github.com/phantomcms/phantom/pkg/core"
	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	listType    string
	listPattern string
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries resolved by the query pipeline",
	Long: `List entries for the content directory. Virtual entries from the spec
file are substituted into the results exactly as a query caller would see them.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fatal("Error initializing phantom", err)
		}

		res, err := service.Query(context.Background(), core.Query{
			Type:    listType,
			Pattern: listPattern,
			Limit:   listLimit,
		})
		if err != nil {
			fatal("Error listing entries", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(res.Entries); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, e := range res.Entries {
			title := ""
			if e.Title != "" {
				title = fmt.Sprintf("- %s", e.Title)
			}
			fmt.Printf("%s %s\n", e.Slug, title)
		}
		if !res.State.Found {
			fmt.Fprintln(os.Stderr, "no entries found")
		}
	},
}

// newService wires the service from the persistent flags.
func newService() (*core.Service, error) {
	opts := []phantom.Option{
		phantom.WithMustExist(true),
		phantom.WithLogger(slog.Default()),
	}
	if specFile != "" {
		opts = append(opts, phantom.WithSpecFile(specFile))
	}
	if siteURL != "" {
		opts = append(opts, phantom.WithSiteURL(siteURL))
	}
	return phantom.New(contentDir, opts...)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listType, "type", "", "Filter entries by type")
	listCmd.Flags().StringVar(&listPattern, "pattern", "", "Filter entries by slug glob pattern")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of entries (0 = unlimited)")
}
