package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phantomcms/phantom/internal/platform"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	contentDir string
	specFile   string
	siteURL    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "phantom",
	Short: "Serve content queries with virtual entries",
	Long: `Phantom resolves content queries against a directory of Markdown files
and lets spec files inject virtual entries that have no backing storage.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	e, err := platform.LoadEnv()
	if err != nil {
		// A malformed environment should not hide the CLI entirely.
		e = platform.Env{ContentDir: "."}
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&contentDir, "content", "c", e.ContentDir, "Content directory (env: PHANTOM_CONTENT_DIR)")
	rootCmd.PersistentFlags().StringVar(&specFile, "spec", e.SpecFile, "Virtual entry spec file (env: PHANTOM_SPEC_FILE)")
	rootCmd.PersistentFlags().StringVar(&siteURL, "site-url", e.SiteURL, "Site base URL for virtual entry GUIDs (env: PHANTOM_SITE_URL)")
}
