package viewer

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gothread/pkg/geometry"
	"github.com/philipparndt/gothread/pkg/mesh"
)

func cube() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []geometry.Vector3{
			{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
		},
		Faces: []mesh.Face{
			{0, 3, 2}, {0, 2, 1},
			{4, 5, 6}, {4, 6, 7},
			{0, 1, 5}, {0, 5, 4},
			{1, 2, 6}, {1, 6, 5},
			{2, 3, 7}, {2, 7, 6},
			{3, 0, 4}, {3, 4, 7},
		},
	}
}

func TestNewCameraFramesBox(t *testing.T) {
	bbox := geometry.BoundingBoxOf([]geometry.Vector3{{X: -1, Y: -2, Z: -3}, {X: 1, Y: 2, Z: 3}})
	cam := NewCamera(bbox)

	if cam.Distance != 12 {
		t.Errorf("expected distance 12, got %f", cam.Distance)
	}
	if d := cam.Position.Distance(cam.Target); math.Abs(d-cam.Distance) > 1e-10 {
		t.Errorf("expected camera on orbit sphere, got distance %f", d)
	}

	x, y, _ := cam.Project(cam.Target, 200, 100)
	if math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("expected target at screen center, got (%f, %f)", x, y)
	}
}

func TestCameraRotateClampsElevation(t *testing.T) {
	cam := NewCamera(cube().BoundingBox())
	cam.Rotate(10, 0)
	if cam.RotationX != maxElevation {
		t.Errorf("expected elevation clamped to %f, got %f", maxElevation, cam.RotationX)
	}
	cam.Zoom(-2)
	if cam.Distance != minDistance {
		t.Errorf("expected distance clamped to %f, got %f", minDistance, cam.Distance)
	}
}

func TestRenderCube(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48

	m := cube()
	cam := NewCamera(m.BoundingBox())
	cam.Distance = 20
	cam.UpdatePosition()

	img, err := Render(m, cam, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("expected 64x48, got %v", b)
	}

	bg := opts.Background
	corner := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if absDiff(corner.R, bg.R) > 1 || absDiff(corner.G, bg.G) > 1 || absDiff(corner.B, bg.B) > 1 {
		t.Errorf("expected background in the corner, got %v", corner)
	}
	if got := color.RGBAModel.Convert(img.At(32, 24)).(color.RGBA); got == bg {
		t.Error("expected the cube to cover the image center")
	}
}

func TestRenderInvalid(t *testing.T) {
	if _, err := RenderMesh(cube(), Options{}); err == nil {
		t.Error("expected error for zero size")
	}
	m := cube()
	m.Faces = append(m.Faces, mesh.Face{0, 1, 42})
	if _, err := RenderMesh(m, DefaultOptions()); err == nil {
		t.Error("expected error for invalid mesh")
	}
}

func TestWritePNG(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 32, 32
	opts.Supersample = 1

	img, err := RenderMesh(cube(), opts)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if decoded.Bounds().Dx() != 32 {
		t.Errorf("expected width 32, got %d", decoded.Bounds().Dx())
	}
}

func TestFillTriangleDepth(t *testing.T) {
	bg := color.RGBA{A: 255}
	near := color.RGBA{R: 255, A: 255}
	far := color.RGBA{B: 255, A: 255}

	z := newZImage(10, 10, bg)
	z.fillTriangle([3]float64{0, 0, 1}, [3]float64{9, 0, 1}, [3]float64{0, 9, 1}, near)
	z.fillTriangle([3]float64{0, 0, 2}, [3]float64{9, 0, 2}, [3]float64{0, 9, 2}, far)

	if got := z.img.RGBAAt(2, 2); got != near {
		t.Errorf("expected nearer triangle to win, got %v", got)
	}
	if got := z.img.RGBAAt(9, 9); got != bg {
		t.Errorf("expected background outside the triangle, got %v", got)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
