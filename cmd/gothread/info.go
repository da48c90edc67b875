package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gothread/pkg/analysis"
	"github.com/philipparndt/gothread/pkg/meshio"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a mesh file",
	Long: `Show dimensions, triangle count, surface area, volume and edge statistics
of an STL, OBJ or OFF file, and whether the mesh is closed.`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
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

	fmt.Println("Mesh File Information")
	fmt.Println("=====================")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Format: %s\n\n", meshio.FormatFromPath(filename))

	fmt.Println("Mesh Statistics:")
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f mm²\n", result.SurfaceArea)
	if result.Closed() {
		fmt.Printf("  Volume: %.6f mm³\n\n", result.Volume)
	} else {
		fmt.Printf("  Open mesh: %d boundary edges, %d non-manifold edges\n\n",
			result.BoundaryEdges, result.NonManifoldEdges)
	}

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f mm\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f mm\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f mm\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f mm\n\n", result.BoundingBox.Diagonal())

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f mm\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f mm\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f mm\n", result.AvgEdgeLength)
}
