package main

import (
	"fmt"
	"log/slog"

	"github.com/phantomcms/phantom"
	"github.com/phantomcms/phantom/pkg/virtual"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [spec-file]",
	Short: "Validate a virtual entry spec file",
	Long: `Parse a spec file strictly and report the entries it would produce.
Unknown keys and invalid override names are rejected.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := specFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			fatal("No spec file", fmt.Errorf("pass a path or set PHANTOM_SPEC_FILE"))
		}

		var opts []virtual.Option
		if siteURL != "" {
			opts = append(opts, virtual.WithSiteURL(siteURL))
		}
		opts = append(opts, virtual.WithLogger(slog.Default()))

		provider, err := phantom.LoadSpecFile(path, opts...)
		if err != nil {
			fatal("Spec file invalid", err)
		}

		fmt.Printf("%s: ok (%d entries)\n", path, provider.Len())
		for _, e := range provider.Entries() {
			fmt.Printf("  %s (%s) -> %s\n", e.Slug, e.Type, e.GUID)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
