package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/philipparndt/gothread/pkg/mesh"
)

const (
	headerSize = 80
	recordSize = 50
)

// header is the fixed 80 byte STL header. Its content carries no meaning.
var header = func() [headerSize]byte {
	var h [headerSize]byte
	for i := range h {
		h[i] = "STL"[i%3]
	}
	return h
}()

// Write encodes the triangles of m as binary STL. Normals are computed from
// the winding in float32; zero-area triangles get a zero normal.
func Write(w io.Writer, m *mesh.Mesh) error {
	if err := m.CheckIndices(); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}
	if uint64(len(m.Faces)) > math.MaxUint32 {
		return fmt.Errorf("too many triangles for STL: %d", len(m.Faces))
	}

	var head [headerSize + 4]byte
	copy(head[:], header[:])
	binary.LittleEndian.PutUint32(head[headerSize:], uint32(len(m.Faces)))
	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	var rec [recordSize]byte
	for i, f := range m.Faces {
		var v [3][3]float32
		for k := 0; k < 3; k++ {
			p := m.Vertices[f[k]]
			v[k] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
		}
		put3F32(rec[0:], normal32(v[0], v[1], v[2]))
		put3F32(rec[12:], v[0])
		put3F32(rec[24:], v[1])
		put3F32(rec[36:], v[2])
		binary.LittleEndian.PutUint16(rec[48:], 0)
		if _, err := w.Write(rec[:]); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile writes m as binary STL to path.
func WriteFile(path string, m *mesh.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := Write(bw, m); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return file.Close()
}

// normal32 returns the normalised (v1-v0)x(v2-v1).
func normal32(v0, v1, v2 [3]float32) [3]float32 {
	a := [3]float32{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
	b := [3]float32{v2[0] - v1[0], v2[1] - v1[1], v2[2] - v1[2]}
	n := [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
	length := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if length == 0 {
		return [3]float32{}
	}
	return [3]float32{n[0] / length, n[1] / length, n[2] / length}
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte) [3]float32 {
	_ = b[11] // early bounds check
	return [3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b)),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}
