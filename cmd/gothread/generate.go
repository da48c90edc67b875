package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/philipparndt/gothread/internal/config"
	"github.com/philipparndt/gothread/internal/generator"
	"github.com/philipparndt/gothread/pkg/thread"
	"github.com/philipparndt/gothread/pkg/viewer"
	"github.com/philipparndt/gothread/pkg/watcher"
	"github.com/spf13/cobra"
)

const watchDebounce = 200 * time.Millisecond

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate [output...]",
	Short: "Generate a thread mesh",
	Long: `Generate a closed thread mesh and write it to every output file.
The format follows the file suffix: .stl, .obj, .off or .3mf; any other
suffix is written as OBJ.

Examples:
  gothread generate -t m8 bolt.stl
  gothread generate -t m8 -i -x 200 nut.3mf
  gothread generate -d 3 -p 0.5 -l 10 -z thread.obj thread.off`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	genFlags.register(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	presets := thread.DefaultTable()

	params, err := genFlags.params(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if list, all := presetListing(params.Preset); list {
		printPresets(presets, all)
		return
	}

	g := generator.New(presets, logger)
	if _, err := generateOnce(g, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !genFlags.watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = watchParams(ctx, genFlags.configFile, func() {
		params, err := genFlags.params(cmd, args)
		if err != nil {
			logger.Error().Err(err).Msg("Invalid parameter file")
			return
		}
		if _, err := generateOnce(g, params); err != nil {
			logger.Error().Err(err).Msg("Generation failed")
		}
	})
	if err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", genFlags.configFile, err)
		os.Exit(1)
	}
}

// generateOnce builds, exports and optionally previews one mesh
func generateOnce(g *generator.Generator, params config.Params) (*generator.Result, error) {
	result, err := g.Run(params)
	if err != nil {
		return nil, err
	}

	if params.Preview != "" {
		logger.Info().Str("path", params.Preview).Msg("Rendering preview")
		img, err := viewer.RenderMesh(result.Mesh, viewer.DefaultOptions())
		if err != nil {
			return result, err
		}
		if err := viewer.WritePNG(params.Preview, img); err != nil {
			return result, err
		}
	}
	return result, nil
}

// watchParams calls regenerate after every change of path until ctx ends
func watchParams(ctx context.Context, path string, regenerate func()) error {
	fw, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(path); err != nil {
		return err
	}

	logger.Info().Str("path", path).Msg("Watching parameter file, press Ctrl+C to stop")
	return fw.Run(ctx, func(string) {
		logger.Info().Str("path", path).Msg("Parameter file changed, regenerating")
		regenerate()
	})
}
