// Package meshio writes and reads meshes in the supported file formats and
// dispatches on the output file suffix.
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gothread/pkg/mesh"
	"github.com/philipparndt/gothread/pkg/stl"
)

// Format identifies a mesh file format.
type Format int

const (
	FormatOBJ Format = iota
	FormatSTL
	FormatOFF
	Format3MF
)

func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "stl"
	case FormatOFF:
		return "off"
	case Format3MF:
		return "3mf"
	default:
		return "obj"
	}
}

// FormatFromPath picks the format by file suffix, case-insensitively.
// Unknown suffixes fall back to OBJ.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return FormatSTL
	case ".off":
		return FormatOFF
	case ".3mf":
		return Format3MF
	default:
		return FormatOBJ
	}
}

// ExportError records a failed export target.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Export writes m to path in the format given by its suffix.
func Export(path string, m *mesh.Mesh) error {
	switch FormatFromPath(path) {
	case FormatSTL:
		return stl.WriteFile(path, m)
	case Format3MF:
		return Write3MF(path, m)
	case FormatOFF:
		return writeFile(path, m, WriteOFF)
	default:
		return writeFile(path, m, WriteOBJ)
	}
}

// ExportAll writes m to every path. A failing target does not stop the
// others; the failures are joined into the returned error.
func ExportAll(paths []string, m *mesh.Mesh) error {
	var errs []error
	for _, path := range paths {
		if err := Export(path, m); err != nil {
			errs = append(errs, &ExportError{Path: path, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Import reads an STL, OFF or OBJ mesh, choosing the decoder by suffix.
// STL facets are not merged, so shared corners appear once per facet.
func Import(path string) (*mesh.Mesh, error) {
	if FormatFromPath(path) == FormatSTL {
		model, err := stl.Parse(path)
		if err != nil {
			return nil, err
		}
		return model.Mesh(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	switch FormatFromPath(path) {
	case FormatOFF:
		return ReadOFF(file)
	case Format3MF:
		return nil, fmt.Errorf("reading 3MF is not supported: %s", path)
	default:
		return ReadOBJ(file)
	}
}

func writeFile(path string, m *mesh.Mesh, write func(io.Writer, *mesh.Mesh) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := write(bw, m); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return file.Close()
}
