package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gothread/pkg/geometry"
)

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read decodes ASCII or binary STL from r.
func Read(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)

	// ASCII files start with "solid". Some binary exporters do too, so a
	// binary header is only ruled out when the rest of the line is text.
	peek, err := br.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if string(peek) == "solid" && looksASCII(br) {
		return parseASCII(br)
	}
	return parseBinary(br)
}

func looksASCII(br *bufio.Reader) bool {
	peek, _ := br.Peek(headerSize + 4)
	return bytes.Contains(peek, []byte("facet")) || bytes.Contains(peek, []byte("endsolid"))
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3

	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				n, err := parseVector(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				currentNormal = n
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", line, len(vertices))
			}
			model.AddTriangle(geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	var head [headerSize + 4]byte
	if _, err := io.ReadFull(reader, head[:]); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	model := NewModel(string(bytes.TrimRight(head[:headerSize], "\x00 ")))
	count := binary.LittleEndian.Uint32(head[headerSize:])

	var rec [recordSize]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(reader, rec[:]); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d of %d: %w", i, count, err)
		}
		model.AddTriangle(geometry.NewTriangle(
			vector64(get3F32(rec[0:])),
			vector64(get3F32(rec[12:])),
			vector64(get3F32(rec[24:])),
			vector64(get3F32(rec[36:])),
		))
	}

	return model, nil
}

func vector64(f [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(f[0]), float64(f[1]), float64(f[2]))
}
