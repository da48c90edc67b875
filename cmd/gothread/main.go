package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gothread/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  = newLogger(zerolog.InfoLevel)
)

var rootCmd = &cobra.Command{
	Use:   "gothread",
	Short: "Generate 3D printable screw thread meshes",
	Long: `gothread builds closed triangle meshes of ISO metric and Whitworth screw
threads. The thread profile is swept along a helix and capped at both ends,
so the result can be printed directly or combined with other solids in a
CAD tool. Meshes are written as STL, OBJ, OFF or 3MF.`,
	Version: version.GetFullVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger = newLogger(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
}

func newLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
