// Package viewer renders shaded previews of thread meshes, either to a PNG
// file or into a fyne window.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/nfnt/resize"
	"github.com/philipparndt/gothread/pkg/mesh"
)

// Options control the preview image
type Options struct {
	Width, Height int
	// Supersample renders at this multiple of the output size and scales
	// down, which smooths the edges of the many thin flank triangles.
	Supersample int
	Background  color.RGBA
	Color       color.RGBA
}

// DefaultOptions returns a 800x600 preview with 2x supersampling
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Supersample: 2,
		Background:  color.RGBA{R: 30, G: 30, B: 36, A: 255},
		Color:       color.RGBA{R: 190, G: 196, B: 206, A: 255},
	}
}

const ambient = 0.25

// Render draws m as seen from cam with a headlight. Faces pointing away
// from the camera are culled, which is exact for closed meshes with
// outward winding.
func Render(m *mesh.Mesh, cam *Camera, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", opts.Width, opts.Height)
	}
	if err := m.CheckIndices(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}
	ss := max(opts.Supersample, 1)
	w, h := opts.Width*ss, opts.Height*ss

	target := newZImage(w, h, opts.Background)
	forward, right, up := cam.basis()

	projected := make([][3]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		x, y, z := cam.project(v, forward, right, up, float64(w), float64(h))
		projected[i] = [3]float64{x, y, z}
	}

	for i, f := range m.Faces {
		tri := m.Triangle(i)
		toFace := tri.V1.Sub(cam.Position)
		facing := -tri.Normal.Dot(toFace.Normalize())
		if facing <= 0 {
			continue
		}
		shade := ambient + (1-ambient)*facing
		col := color.RGBA{
			R: uint8(math.Min(255, float64(opts.Color.R)*shade)),
			G: uint8(math.Min(255, float64(opts.Color.G)*shade)),
			B: uint8(math.Min(255, float64(opts.Color.B)*shade)),
			A: 255,
		}
		for k := 1; k+1 < len(f); k++ {
			target.fillTriangle(projected[f[0]], projected[f[k]], projected[f[k+1]], col)
		}
	}

	if ss == 1 {
		return target.img, nil
	}
	return resize.Resize(uint(opts.Width), uint(opts.Height), target.img, resize.Bilinear), nil
}

// RenderMesh frames m with a fresh camera and renders it
func RenderMesh(m *mesh.Mesh, opts Options) (image.Image, error) {
	return Render(m, NewCamera(m.BoundingBox()), opts)
}

// WritePNG encodes img to path
func WritePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
