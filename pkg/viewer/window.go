package viewer

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gothread/pkg/mesh"
)

// MeshView is a fyne widget showing a shaded mesh. Drag to orbit, scroll
// to zoom.
type MeshView struct {
	widget.BaseWidget
	mesh   *mesh.Mesh
	camera *Camera
	opts   Options
	raster *canvas.Raster
}

// NewMeshView creates a view framing m
func NewMeshView(m *mesh.Mesh) *MeshView {
	v := &MeshView{
		mesh:   m,
		camera: NewCamera(m.BoundingBox()),
		opts:   DefaultOptions(),
	}
	// Interactive redraws skip supersampling.
	v.opts.Supersample = 1
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// SetMesh replaces the mesh and reframes the camera. Call it on the fyne
// goroutine, e.g. via fyne.Do.
func (v *MeshView) SetMesh(m *mesh.Mesh) {
	v.mesh = m
	v.camera = NewCamera(m.BoundingBox())
	v.raster.Refresh()
}

func (v *MeshView) draw(w, h int) image.Image {
	opts := v.opts
	opts.Width, opts.Height = w, h
	img, err := Render(v.mesh, v.camera, opts)
	if err != nil {
		return image.NewUniform(color.RGBA{R: 80, A: 255})
	}
	return img
}

// CreateRenderer creates the renderer for the widget
func (v *MeshView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize keeps the preview usable when the window shrinks
func (v *MeshView) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Dragged handles mouse drag events for rotation
func (v *MeshView) Dragged(event *fyne.DragEvent) {
	v.camera.Rotate(float64(event.Dragged.DY)*0.01, float64(-event.Dragged.DX)*0.01)
	v.raster.Refresh()
}

// DragEnd handles the end of a drag event
func (v *MeshView) DragEnd() {}

// Scrolled handles scroll events for zooming
func (v *MeshView) Scrolled(event *fyne.ScrollEvent) {
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.raster.Refresh()
}

// Window wraps the fyne application showing one MeshView
type Window struct {
	app    fyne.App
	window fyne.Window
	View   *MeshView
}

// NewWindow creates the application window for m
func NewWindow(title string, m *mesh.Mesh) *Window {
	a := app.New()
	w := a.NewWindow(title)
	view := NewMeshView(m)
	w.SetContent(view)
	w.Resize(fyne.NewSize(900, 700))
	return &Window{app: a, window: w, View: view}
}

// Update swaps the shown mesh from any goroutine
func (w *Window) Update(m *mesh.Mesh) {
	fyne.Do(func() {
		w.View.SetMesh(m)
	})
}

// ShowAndRun blocks until the window is closed
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
}
