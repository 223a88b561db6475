package mesh

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// ErrFileWrite is returned when a mesh file cannot be created or written.
var ErrFileWrite = errors.New("cannot write mesh file")

// WriteSTL writes m to w as an ASCII STL solid named "mesh". Each facet
// carries the unit normal from Mesh.Normal.
func WriteSTL(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("solid mesh\n")
	for _, f := range m.faces {
		a, b, c := m.Triangle(f)
		bw.WriteString("  facet normal ")
		writeCoord(bw, m.Normal(f))
		bw.WriteString("\n    outer loop\n")
		for _, v := range [3]Vertex{a, b, c} {
			bw.WriteString("      vertex ")
			writeCoord(bw, v)
			bw.WriteByte('\n')
		}
		bw.WriteString("    endloop\n  endfacet\n")
	}
	bw.WriteString("endsolid mesh\n")
	return bw.Flush()
}

func writeCoord(bw *bufio.Writer, v Vertex) {
	bw.WriteString(formatFloat(v.X))
	bw.WriteByte(' ')
	bw.WriteString(formatFloat(v.Y))
	bw.WriteByte(' ')
	bw.WriteString(formatFloat(v.Z))
}

func formatFloat(v float64) string {
	if v == 0 {
		// Normalize negative zero.
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SaveSTL writes m to path as ASCII STL, creating missing parent
// directories. Failures wrap ErrFileWrite.
func SaveSTL(m *Mesh, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(ErrFileWrite, "%s: %v", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrFileWrite, "%s: %v", path, err)
	}
	if err := WriteSTL(f, m); err != nil {
		f.Close()
		return errors.Wrapf(ErrFileWrite, "%s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(ErrFileWrite, "%s: %v", path, err)
	}
	return nil
}

// ExportSTL writes m to path and reports success. Failures are logged.
func ExportSTL(m *Mesh, path string) bool {
	if err := SaveSTL(m, path); err != nil {
		log.Printf("[ERROR] export STL: %v", err)
		return false
	}
	return true
}
