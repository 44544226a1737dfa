package isosurface

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// SaveMesh writes m to fileName, picking the format from the extension:
// .ply, .obj or .dxf.
func SaveMesh(m *Mesh, fileName string) error {
	var write func(io.Writer, *Mesh) error
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ply":
		write = WritePLY
	case ".obj":
		write = WriteOBJ
	case ".dxf":
		write = WriteDXF
	default:
		return fmt.Errorf("unsupported mesh format %q", filepath.Ext(fileName))
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create mesh file %s: %w", fileName, err)
	}
	if err := write(file, m); err != nil {
		file.Close()
		return fmt.Errorf("error writing mesh file %s: %w", fileName, err)
	}
	return file.Close()
}

// WritePLY writes m as an ASCII PLY file with one triangle per face.
func WritePLY(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment Generated by isosurface")
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", m.VertexCount())
	_, _ = fmt.Fprintln(writer, "property float x")
	_, _ = fmt.Fprintln(writer, "property float y")
	_, _ = fmt.Fprintln(writer, "property float z")
	_, _ = fmt.Fprintf(writer, "element face %d\n", m.TriangleCount())
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(writer, "end_header")

	for _, p := range m.Positions {
		_, _ = fmt.Fprintf(writer, "%s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		_, _ = fmt.Fprintf(writer, "3 %d %d %d\n", m.Indices[i], m.Indices[i+1], m.Indices[i+2])
	}
	return writer.Flush()
}

// WriteOBJ writes m as a Wavefront OBJ file. OBJ indices are 1-based.
func WriteOBJ(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)
	_, _ = fmt.Fprintf(writer, "# isosurface: %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	for _, p := range m.Positions {
		_, _ = fmt.Fprintf(writer, "v %s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		_, _ = fmt.Fprintf(writer, "f %d %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1)
	}
	return writer.Flush()
}

// WriteDXF writes every triangle as a 3DFACE entity. 3DFACE takes four
// vertices, so the third is repeated.
func WriteDXF(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)
	writePair := func(code int, value string) {
		_, _ = fmt.Fprintf(writer, "%d\n%s\n", code, value)
	}
	writePoint := func(n int, p mgl64.Vec3) {
		writePair(10+n, formatFloat(p[0]))
		writePair(20+n, formatFloat(p[1]))
		writePair(30+n, formatFloat(p[2]))
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")

	writePair(0, "SECTION")
	writePair(2, "ENTITIES")
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		writePair(0, "3DFACE")
		writePair(8, "0")
		writePoint(0, t[0])
		writePoint(1, t[1])
		writePoint(2, t[2])
		writePoint(3, t[2])
	}
	writePair(0, "ENDSEC")
	writePair(0, "EOF")
	return writer.Flush()
}

// LoadMeshFromPLYFile reads an ASCII PLY file written by WritePLY or any
// other tool producing x y z vertices and polygon faces.
func LoadMeshFromPLYFile(fileName string) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	m, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return m, nil
}

// ReadPLY parses an ASCII PLY mesh. Polygons with more than three vertices
// are fanned into triangles.
func ReadPLY(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)

	var vertexCount, faceCount int
	var ascii, ended bool
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "format":
			ascii = len(parts) > 1 && parts[1] == "ascii"
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("element count %q: %w", parts[2], err)
			}
			switch parts[1] {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "end_header":
			ended = true
		}
		if ended {
			break
		}
	}
	if !ended {
		return nil, fmt.Errorf("missing end_header")
	}
	if !ascii {
		return nil, fmt.Errorf("only ascii PLY is supported")
	}

	m := NewMesh()
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertex %d", i)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		var p mgl64.Vec3
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(parts[k], 64)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			p[k] = v
		}
		m.Positions = append(m.Positions, p)
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading face %d", i)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil || n < 3 || len(parts) < n+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}
		idx := make([]uint32, n)
		for j := range idx {
			v, err := strconv.ParseUint(parts[j+1], 10, 32)
			if err != nil || int(v) >= vertexCount {
				return nil, fmt.Errorf("invalid vertex index %q in face %d", parts[j+1], i)
			}
			idx[j] = uint32(v)
		}
		for j := 2; j < n; j++ {
			m.Indices = append(m.Indices, idx[0], idx[j-1], idx[j])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return m, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
