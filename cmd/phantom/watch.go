package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	lifecycleadapter "github.com/phantomcms/phantom/pkg/adapters/lifecycle"
	"github.com/spf13/cobra"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the content directory for changes",
	Long: `Watch prints repository change events until interrupted. Only entries
matching the glob pattern are reported when --pattern is set.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fatal("Error initializing phantom", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		// Bridge to the generic event source so the loop is tracked and
		// panic-safe like any other lifecycle goroutine.
		source := lifecycleadapter.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Error starting event source", err)
		}

		fmt.Fprintln(os.Stderr, "watching, press Ctrl+C to stop")
		for ev := range source.Events() {
			fmt.Println(ev.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Only report entries matching this glob pattern")
}
