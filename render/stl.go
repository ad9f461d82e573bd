/*

STL export

ToSTL writes a mesh.RenderMesh as a binary STL file per §6.3: an 80-byte
header, a little-endian uint32 triangle count, then 50 bytes per
triangle (a float32 normal followed by three float32 vertices and a
trailing uint16 attribute byte count). Face normals are recomputed per
triangle via sdf.Triangle3.Normal() rather than trusting
mesh.RenderMesh's welded per-vertex normals, since STL stores one
normal per facet.

*/

package render

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
	"github.com/sequoia-hope/waffle-iron-sub001/mesh"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ToSTL writes m to path as a binary STL file.
func ToSTL(path string, m mesh.RenderMesh) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)

	var header [80]byte
	copy(header[:], "waffle-iron STL export")
	writeErr := multierr.Append(nil, binaryWrite(w, header[:]))
	writeErr = multierr.Append(writeErr, binaryWrite(w, uint32(len(m.Triangles))))

	for _, tri := range m.Triangles {
		p0, p1, p2 := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
		n := (&sdf.Triangle3{p0, p1, p2}).Normal()
		writeErr = multierr.Append(writeErr, binaryWrite(w, toFloat32x3(n)))
		writeErr = multierr.Append(writeErr, binaryWrite(w, toFloat32x3(p0)))
		writeErr = multierr.Append(writeErr, binaryWrite(w, toFloat32x3(p1)))
		writeErr = multierr.Append(writeErr, binaryWrite(w, toFloat32x3(p2)))
		writeErr = multierr.Append(writeErr, binaryWrite(w, uint16(0)))
	}

	writeErr = multierr.Append(writeErr, w.Flush())
	writeErr = multierr.Append(writeErr, file.Close())
	if writeErr != nil {
		return writeErr
	}
	telemetry.L().Info("render: STL export complete", zap.String("path", path), zap.Int("triangles", len(m.Triangles)))
	return nil
}

func binaryWrite(w *bufio.Writer, data any) error {
	return binary.Write(w, binary.LittleEndian, data)
}

type float32x3 [3]float32

func toFloat32x3(v v3.Vec) float32x3 {
	return float32x3{float32(v.X), float32(v.Y), float32(v.Z)}
}
