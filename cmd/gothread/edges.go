package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gothread/pkg/analysis"
	"github.com/philipparndt/gothread/pkg/meshio"
	"github.com/spf13/cobra"
)

var (
	edgesCount    int
	edgesShortest bool
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "List the longest or shortest edges of a mesh file",
	Long:  "Useful to check that --segment-length keeps the helix edges below the intended length.",
	Args:  cobra.ExactArgs(1),
	Run:   runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest instead of longest edges")
}

func runEdges(cmd *cobra.Command, args []string) {
	filename := args[0]

	m, err := meshio.Import(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading mesh file: %v\n", err)
		os.Exit(1)
	}

	result, err := analysis.Analyze(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing mesh: %v\n", err)
		os.Exit(1)
	}

	var edges []analysis.Edge
	var title string
	if edgesShortest {
		edges = result.ShortestEdges(edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	} else {
		edges = result.LongestEdges(edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total edges in mesh: %d\n", result.EdgeCount)
	fmt.Printf("Min edge length: %.6f mm\n", result.MinEdgeLength)
	fmt.Printf("Max edge length: %.6f mm\n", result.MaxEdgeLength)
	fmt.Printf("Avg edge length: %.6f mm\n\n", result.AvgEdgeLength)

	if len(edges) == 0 {
		fmt.Println("Mesh has no edges.")
		return
	}

	fmt.Printf("%-6s %-35s %-35s %-15s\n", "Index", "Start", "End", "Length")
	fmt.Println("-----------------------------------------------------------------------------------------------------------")
	for i, edge := range edges {
		fmt.Printf("%-6d %-35s %-35s %-15.6f\n",
			i+1,
			analysis.FormatVector(m.Vertices[edge.A]),
			analysis.FormatVector(m.Vertices[edge.B]),
			edge.Length)
	}
}
