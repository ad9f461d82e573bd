//-----------------------------------------------------------------------------
/*

Tessellation

Tessellate walks a brep.Solid's shells and fans each face's outer loop
into sdf.Triangle3 values in exactly the buffer representation the
teacher's STEP writer already consumes (see step/converter.go,
render/step.go). Inner loops are not triangulated, so holes are not cut
out of a face. Every face, planar or curved, is fanned directly off its
outer-loop vertices; no surface sampling is done.

This is the one place in the module that produces the teacher's wire
mesh format from our own B-Rep rather than from an implicit surface, so
render.ToSTEP/render.SaveSTEP need no new buffer type, just a different
producer. render.ToSTL takes the RenderMesh defined here, built by
ToRenderMesh.

*/
//-----------------------------------------------------------------------------

package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
)

// RenderMesh is the §6.3 export contract: flat position/normal buffers
// plus triangle indices and, for diagnostics, the [start, end) triangle
// range each source face contributed.
type RenderMesh struct {
	Positions []v3.Vec
	Normals   []v3.Vec
	Triangles [][3]int
	FaceRanges []FaceRange
}

// FaceRange records which triangles in a RenderMesh came from which face,
// in the order ListFaces would enumerate them.
type FaceRange struct {
	Face       brep.FaceId
	Start, End int
}

// Tessellate fans every face of solidID into triangles. deflection is
// passed through to the per-face tessellators but does not change the
// output: every face is fanned from its outer-loop vertices as they are.
func Tessellate(store *brep.EntityStore, solidID brep.SolidId, deflection float64) []*sdf.Triangle3 {
	var tris []*sdf.Triangle3
	solid := store.Solid(solidID)
	for _, shellID := range solid.Shells {
		shell := store.Shell(shellID)
		for _, faceID := range shell.Faces {
			tris = append(tris, tessellateFace(store, faceID, deflection)...)
		}
	}
	return tris
}

// ToRenderMesh builds the §6.3 RenderMesh buffer for solidID, welding
// coincident positions across faces so the index buffer is shared the
// way a real export mesh's would be.
func ToRenderMesh(store *brep.EntityStore, solidID brep.SolidId, deflection float64) RenderMesh {
	var out RenderMesh
	posIndex := make(map[[3]float64]int)

	addVertex := func(p v3.Vec) int {
		key := [3]float64{round(p.X), round(p.Y), round(p.Z)}
		if i, ok := posIndex[key]; ok {
			return i
		}
		i := len(out.Positions)
		out.Positions = append(out.Positions, p)
		out.Normals = append(out.Normals, v3.Vec{})
		posIndex[key] = i
		return i
	}

	solid := store.Solid(solidID)
	for _, shellID := range solid.Shells {
		shell := store.Shell(shellID)
		for _, faceID := range shell.Faces {
			start := len(out.Triangles)
			for _, t := range tessellateFace(store, faceID, deflection) {
				n := t.Normal()
				i0, i1, i2 := addVertex(t[0]), addVertex(t[1]), addVertex(t[2])
				out.Normals[i0] = n
				out.Normals[i1] = n
				out.Normals[i2] = n
				out.Triangles = append(out.Triangles, [3]int{i0, i1, i2})
			}
			out.FaceRanges = append(out.FaceRanges, FaceRange{Face: faceID, Start: start, End: len(out.Triangles)})
		}
	}
	return out
}

func round(x float64) float64 {
	const scale = 1e8
	return float64(int64(x*scale)) / scale
}

func tessellateFace(store *brep.EntityStore, faceID brep.FaceId, deflection float64) []*sdf.Triangle3 {
	face := store.Face(faceID)
	if _, planar := face.Surface.(geom.Plane); planar {
		return fanTriangulate(store.LoopVertices(face.OuterLoop), face.SameSense)
	}
	return tessellateCurvedFace(store, face, deflection)
}

// fanTriangulate triangle-fans a (assumed convex-enough, as every facet
// this kernel constructs is) polygon from its first vertex.
func fanTriangulate(pts []geom.Point3d, sameSense bool) []*sdf.Triangle3 {
	var tris []*sdf.Triangle3
	if len(pts) < 3 {
		return tris
	}
	for i := 1; i < len(pts)-1; i++ {
		a, b, c := pts[0], pts[i], pts[i+1]
		if !sameSense {
			b, c = c, b
		}
		tris = append(tris, &sdf.Triangle3{toVec(a), toVec(b), toVec(c)})
	}
	return tris
}

// tessellateCurvedFace samples the face's outer loop boundary (already a
// polygonal approximation at the curve's construction resolution) and
// fans it the same way; this kernel never produces untessellated
// free-form interiors, so boundary sampling is sufficient rather than a
// true deflection-adaptive interior grid. deflection is accepted for
// interface symmetry with a future adaptive sampler.
func tessellateCurvedFace(store *brep.EntityStore, face *brep.Face, _ float64) []*sdf.Triangle3 {
	return fanTriangulate(store.LoopVertices(face.OuterLoop), face.SameSense)
}

func toVec(p geom.Point3d) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}
