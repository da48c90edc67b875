package main

import (
	"fmt"

	"github.com/philipparndt/gothread/pkg/thread"
	"github.com/spf13/cobra"
)

var presetsAll bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the thread presets",
	Long:  "List preset names with major diameter and pitch. Fine pitch variants are shown with --all.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printPresets(thread.DefaultTable(), presetsAll)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)

	presetsCmd.Flags().BoolVarP(&presetsAll, "all", "a", false, "Include fine and extra fine pitches")
}

func printPresets(presets *thread.Table, all bool) {
	fmt.Printf("%-15s | %-10s | %-8s | %-8s\n", "Preset", "Standard", "Diameter", "Pitch")
	fmt.Println("--------------------------------------------------")
	for _, p := range presets.List(all) {
		fmt.Printf("%-15s | %-10s | %-8.2f | %-8.3f\n", p.Name, p.Standard, p.Diameter, p.Pitch)
	}
}
