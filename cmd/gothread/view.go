package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/gothread/internal/generator"
	"github.com/philipparndt/gothread/pkg/thread"
	"github.com/philipparndt/gothread/pkg/viewer"
	"github.com/spf13/cobra"
)

var viewFlags generateFlags

var viewCmd = &cobra.Command{
	Use:   "view [output...]",
	Short: "Generate a thread and show it in a window",
	Long: `Generate a thread with the same parameters as "generate" and show a shaded
preview. Drag to orbit, scroll to zoom. With --watch the window follows
changes of the parameter file.`,
	Run: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewFlags.register(viewCmd)
}

func runView(cmd *cobra.Command, args []string) {
	params, err := viewFlags.params(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g := generator.New(thread.DefaultTable(), logger)
	result, err := generateOnce(g, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	win := viewer.NewWindow("gothread", result.Mesh)

	if viewFlags.watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := watchParams(ctx, viewFlags.configFile, func() {
				params, err := viewFlags.params(cmd, args)
				if err != nil {
					logger.Error().Err(err).Msg("Invalid parameter file")
					return
				}
				result, err := generateOnce(g, params)
				if err != nil {
					logger.Error().Err(err).Msg("Generation failed")
					return
				}
				win.Update(result.Mesh)
			})
			if err != nil && err != context.Canceled {
				logger.Error().Err(err).Msg("Watcher stopped")
			}
		}()
	}

	win.ShowAndRun()
}
