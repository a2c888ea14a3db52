package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOBJIO              = errors.New("OBJ read failed")
	ErrOBJMalformedLine   = errors.New("malformed OBJ line")
	ErrOBJIndexOutOfRange = errors.New("OBJ face index out of range")
)

// objMaxLine is the longest line the scanner accepts.
const objMaxLine = 1 << 20

// OBJLineError reports a failure on a specific line of an OBJ file.
type OBJLineError struct {
	Line int    // 1-based line number
	Text string // raw line content
	Err  error  // ErrOBJMalformedLine or ErrOBJIndexOutOfRange
}

func (e *OBJLineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *OBJLineError) Unwrap() error {
	return e.Err
}

// OBJVertex is a vertex position.
type OBJVertex [3]float32

// OBJFace is a triangle referencing three vertices by 1-based index.
type OBJFace [3]int

// OBJBounds is the axis-aligned bounding box of the declared vertices.
type OBJBounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent on each axis.
func (b OBJBounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the midpoint of the box.
func (b OBJBounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// OBJ is a parsed Wavefront OBJ subset: vertex positions and triangular faces.
type OBJ struct {
	// vertices[0] is a sentinel so face indices address the slice directly.
	vertices []OBJVertex
	Faces    []OBJFace
}

// Vertices returns the declared vertices, without the sentinel.
func (o *OBJ) Vertices() []OBJVertex {
	if len(o.vertices) == 0 {
		return nil
	}
	return o.vertices[1:]
}

// VertexCount returns the number of declared vertices.
func (o *OBJ) VertexCount() int {
	return len(o.Vertices())
}

// TriangleCount returns the number of faces.
func (o *OBJ) TriangleCount() int {
	return len(o.Faces)
}

// Triangles expands every face into its three vertex positions, in face order.
// The result holds 9 floats per face and is ready for a tightly packed
// GL_ARRAY_BUFFER.
func (o *OBJ) Triangles() ([]float32, error) {
	data := make([]float32, 0, len(o.Faces)*9)
	for i, f := range o.Faces {
		for _, idx := range f {
			if idx <= 0 || idx >= len(o.vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d",
					ErrOBJIndexOutOfRange, i+1, idx, o.VertexCount())
			}
			v := o.vertices[idx]
			data = append(data, v[0], v[1], v[2])
		}
	}
	return data, nil
}

// Bounds returns the bounding box of all declared vertices.
// An empty OBJ yields a zero box.
func (o *OBJ) Bounds() OBJBounds {
	verts := o.Vertices()
	if len(verts) == 0 {
		return OBJBounds{}
	}

	b := OBJBounds{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		for axis := 0; axis < 3; axis++ {
			b.Min[axis] = min(b.Min[axis], v[axis])
			b.Max[axis] = max(b.Max[axis], v[axis])
		}
	}
	return b
}

// DecodeOBJ reads an OBJ document in a single forward pass.
//
// Only "v" and "f" records are interpreted; every other line is skipped.
// A face must name exactly three vertices that were declared before it.
func DecodeOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{
		vertices: make([]OBJVertex, 1, 256),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), objMaxLine)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = obj.parseVertex(fields[1:])
		case "f":
			err = obj.parseFace(fields[1:])
		}
		if err != nil {
			return nil, &OBJLineError{Line: lineNum, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOBJIO, err)
	}

	return obj, nil
}

// parseVertex handles the arguments of a "v" record. Tokens past z are ignored.
func (o *OBJ) parseVertex(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrOBJMalformedLine, len(args))
	}

	var v OBJVertex
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return fmt.Errorf("%w: coordinate %q is not a number", ErrOBJMalformedLine, args[i])
		}
		v[i] = float32(f)
	}
	o.vertices = append(o.vertices, v)
	return nil
}

// parseFace handles the arguments of an "f" record. A "//" suffix on an index
// (normal annotation) is dropped.
func (o *OBJ) parseFace(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: face needs exactly 3 indices, got %d", ErrOBJMalformedLine, len(args))
	}

	var f OBJFace
	for i, tok := range args {
		ref, _, _ := strings.Cut(tok, "//")
		idx, err := strconv.Atoi(ref)
		if err != nil {
			return fmt.Errorf("%w: index %q is not an integer", ErrOBJMalformedLine, tok)
		}
		if idx <= 0 || idx >= len(o.vertices) {
			return fmt.Errorf("%w: vertex %d of %d declared", ErrOBJIndexOutOfRange, idx, len(o.vertices)-1)
		}
		f[i] = idx
	}
	o.Faces = append(o.Faces, f)
	return nil
}

// ParseOBJ parses an OBJ document from raw bytes.
func ParseOBJ(data []byte) (*OBJ, error) {
	return DecodeOBJ(bytes.NewReader(data))
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOBJIO, err)
	}
	defer file.Close()

	obj, err := DecodeOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// LoadOBJFile reads an OBJ file and returns its faces as a flat triangle list:
// 3 floats per vertex, 3 vertices per face, in file order.
func LoadOBJFile(path string) ([]float32, error) {
	obj, err := ParseOBJFile(path)
	if err != nil {
		return nil, err
	}
	return obj.Triangles()
}
