package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gothread/pkg/mesh"
)

// WriteOFF writes m in Object File Format with 0-based indices.
func WriteOFF(w io.Writer, m *mesh.Mesh) error {
	if err := m.CheckIndices(); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "OFF\n%d %d 0\n", len(m.Vertices), len(m.Faces))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "%.8f %.8f %.8f\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		bw.WriteString(strconv.Itoa(len(f)))
		for _, idx := range f {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(idx))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OFF: %w", err)
	}
	return nil
}

// ReadOFF reads an OFF file. Comments after '#' and trailing colour values
// on face lines are ignored.
func ReadOFF(r io.Reader) (*mesh.Mesh, error) {
	tokens := offTokens(r)

	magic, err := tokens.next()
	if err != nil || magic != "OFF" {
		return nil, fmt.Errorf("missing OFF header")
	}

	var counts [3]int
	for i := range counts {
		if counts[i], err = tokens.nextInt(); err != nil {
			return nil, fmt.Errorf("invalid OFF counts: %w", err)
		}
	}
	nv, nf := counts[0], counts[1]
	if nv < 0 || nf < 0 {
		return nil, fmt.Errorf("invalid OFF counts %d %d", nv, nf)
	}

	m := &mesh.Mesh{}
	for i := 0; i < nv; i++ {
		var fields [3]string
		for k := range fields {
			if fields[k], err = tokens.next(); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
		}
		v, err := parseVertex(fields[:])
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		m.Vertices = append(m.Vertices, v)
	}

	for i := 0; i < nf; i++ {
		line, err := tokens.line()
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		n, err := strconv.Atoi(line[0])
		if err != nil || n < 0 || n > len(line)-1 {
			return nil, fmt.Errorf("face %d: invalid vertex count %q", i, line[0])
		}
		face := make(mesh.Face, n)
		for k := range face {
			if face[k], err = strconv.Atoi(line[k+1]); err != nil {
				return nil, fmt.Errorf("face %d: invalid index %q", i, line[k+1])
			}
		}
		m.Faces = append(m.Faces, face)
	}

	if err := m.CheckIndices(); err != nil {
		return nil, err
	}
	return m, nil
}

// tokenizer walks the whitespace separated fields of an OFF stream. Header
// and vertex values may wrap lines; face records are read one line at a time.
type tokenizer struct {
	scanner *bufio.Scanner
	pending []string
}

func offTokens(r io.Reader) *tokenizer {
	return &tokenizer{scanner: bufio.NewScanner(r)}
}

func (t *tokenizer) fill() error {
	for len(t.pending) == 0 {
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		text := t.scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		t.pending = strings.Fields(text)
	}
	return nil
}

func (t *tokenizer) next() (string, error) {
	if err := t.fill(); err != nil {
		return "", err
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok, nil
}

func (t *tokenizer) nextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

// line returns the rest of the current line, or the next non-empty one.
func (t *tokenizer) line() ([]string, error) {
	if err := t.fill(); err != nil {
		return nil, err
	}
	fields := t.pending
	t.pending = nil
	return fields, nil
}
