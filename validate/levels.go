//-----------------------------------------------------------------------------
/*

Validators

ValidateTopology (L0) wraps brep.AuditSolid. ValidateGeometry (L1) checks
individual faces and edges for degeneracy. ValidateSpatial (L2) reports
free edges and non-manifold edges (both found by brep.AuditSolid's
half-edge twin resolution) and facets of the same shell that cross in
space without sharing a vertex. ValidateContinuity (L3) measures the
normal-angle discontinuity across every shared edge; because every face
here is a flat approximation, a discontinuity is informational, never an
error.

*/
//-----------------------------------------------------------------------------

package validate

import (
	"fmt"
	"math"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
)

func faceEntity(id brep.FaceId) EntityId  { return EntityId{Type: EntityFace, ID: brep.EncodeKey(id)} }
func edgeEntity(id brep.EdgeId) EntityId  { return EntityId{Type: EntityEdge, ID: brep.EncodeKey(id)} }
func shellEntity(id brep.ShellId) EntityId { return EntityId{Type: EntityShell, ID: brep.EncodeKey(id)} }
func vertexEntity(id brep.VertexId) EntityId {
	return EntityId{Type: EntityVertex, ID: brep.EncodeKey(id)}
}

// ValidateTopology runs L0 structural checks via brep.AuditSolid.
func ValidateTopology(store *brep.EntityStore, solidID brep.SolidId) ValidationReport {
	audit := brep.AuditSolid(store, solidID)
	v, e, f := 0, 0, 0
	solid := store.Solid(solidID)
	for _, shellID := range solid.Shells {
		sv, se, sf := store.CountTopology(shellID)
		v += sv
		e += se
		f += sf
	}

	var errs []ValidationError
	for _, te := range audit.Errors {
		ve := ValidationError{Level: L0Topology, Severity: SeverityError}
		switch te.Kind {
		case brep.EulerViolation:
			ve.Code = ErrEulerViolation
			ve.Entity = shellEntity(te.Shell)
			ve.Message = fmt.Sprintf("euler characteristic %d != 2 (V=%d E=%d F=%d)", te.ActualChi, te.V, te.E, te.F)
			ve.Value = float64(te.ActualChi)
			ve.Limit = 2
		case brep.OpenLoop:
			ve.Code = ErrOpenLoop
			ve.Message = "loop does not close"
		case brep.DanglingVertex:
			ve.Code = ErrDanglingVertex
			ve.Entity = vertexEntity(te.Vertex)
			ve.Message = "vertex touches fewer than two edges"
		case brep.HalfEdgeTwinMismatch:
			ve.Code = ErrHalfEdgeTwinMismatch
			ve.Message = "half-edge twin link is not reciprocal"
		case brep.VertexPositionMismatch:
			ve.Code = ErrNormalInconsistent
			ve.Message = "face winding disagrees with its stored surface normal"
		case brep.FreeEdge, brep.NonManifoldEdge:
			// Surfaced as L2Spatial errors by ValidateSpatial instead.
			continue
		default:
			continue
		}
		errs = append(errs, ve)
	}

	return ValidationReport{
		Levels: []ValidationLevel{L0Topology},
		Errors: errs,
		Metrics: ValidationMetrics{
			Counts: EntityCounts{Vertices: v, Edges: e, Faces: f, Shells: len(solid.Shells), Solids: 1},
		},
	}
}

// ValidateGeometry runs L1 checks: every face's surface must not be
// degenerate and must enclose nonzero area, and every edge must have
// nonzero length.
func ValidateGeometry(store *brep.EntityStore, solidID brep.SolidId) ValidationReport {
	tol := geom.DefaultTolerance()
	var errs []ValidationError
	minEdge := math.Inf(1)
	minArea := math.Inf(1)

	solid := store.Solid(solidID)
	seenEdges := make(map[brep.EdgeId]bool)
	for _, shellID := range solid.Shells {
		shell := store.Shell(shellID)
		for _, faceID := range shell.Faces {
			face := store.Face(faceID)
			if face.Surface.IsDegenerate(tol) {
				errs = append(errs, ValidationError{
					Level: L1Geometry, Code: ErrDegenerateSurface, Severity: SeverityError,
					Entity: faceEntity(faceID), Message: "surface geometry is degenerate",
				})
			}

			pts := store.LoopVertices(face.OuterLoop)
			area := polygonArea(pts)
			if area < minArea {
				minArea = area
			}
			if area < tol.Coincidence*tol.Coincidence {
				errs = append(errs, ValidationError{
					Level: L1Geometry, Code: ErrZeroAreaFace, Severity: SeverityError,
					Entity: faceEntity(faceID), Message: "face encloses zero area", Value: area,
				})
			}

			l := store.Loop(face.OuterLoop)
			for _, heID := range l.HalfEdges {
				he := store.HalfEdge(heID)
				if seenEdges[he.Edge] {
					continue
				}
				seenEdges[he.Edge] = true
				edge := store.Edge(he.Edge)
				length := edge.Curve.Evaluate(he.TEnd).DistanceTo(edge.Curve.Evaluate(he.TStart))
				if length < minEdge {
					minEdge = length
				}
				if geom.IsZeroLength(length, tol) {
					errs = append(errs, ValidationError{
						Level: L1Geometry, Code: ErrZeroLengthEdge, Severity: SeverityError,
						Entity: edgeEntity(he.Edge), Message: "edge has zero length", Value: length,
					})
				}
			}
		}
	}

	if math.IsInf(minEdge, 1) {
		minEdge = 0
	}
	if math.IsInf(minArea, 1) {
		minArea = 0
	}

	return ValidationReport{
		Levels: []ValidationLevel{L1Geometry},
		Errors: errs,
		Metrics: ValidationMetrics{
			Tolerances: ToleranceStats{MinEdgeLength: minEdge, MinFaceArea: minArea},
		},
	}
}

// polygonArea returns the area of a (possibly non-planar, treated as
// flat) polygon via the magnitude of its Newell normal.
func polygonArea(pts []geom.Point3d) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum geom.Vec3
	for i := range pts {
		cur := pts[i]
		next := pts[(i+1)%len(pts)]
		sum.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		sum.Y += (cur.Z - next.Z) * (cur.X + next.X)
		sum.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return sum.Length() / 2
}

// ValidateSpatial runs L2 checks: every edge must have exactly two
// adjacent faces (no FreeEdge, no InvalidMultiConnexity — both detected
// by brep.AuditSolid's half-edge twin resolution), and no two facets of
// the same shell that don't already share a vertex may cross in space
// (SelfIntersection).
func ValidateSpatial(store *brep.EntityStore, solidID brep.SolidId) ValidationReport {
	var errs []ValidationError
	solid := store.Solid(solidID)

	audit := brep.AuditSolid(store, solidID)
	for _, te := range audit.Errors {
		switch te.Kind {
		case brep.FreeEdge:
			errs = append(errs, ValidationError{
				Level: L2Spatial, Code: ErrFreeEdge, Severity: SeverityError,
				Entity: edgeEntity(te.Edge), Message: "edge has fewer than two adjacent faces",
			})
		case brep.NonManifoldEdge:
			errs = append(errs, ValidationError{
				Level: L2Spatial, Code: ErrInvalidMultiConnexity, Severity: SeverityError,
				Message: "edge is shared by more than two faces",
			})
		}
	}

	tol := geom.DefaultTolerance().Coincidence
	for _, shellID := range solid.Shells {
		tris := shellTriangles(store, shellID)
		for i := 0; i < len(tris); i++ {
			for j := i + 1; j < len(tris); j++ {
				if tris[i].face == tris[j].face {
					continue
				}
				if trianglesShareVertex(tris[i].tri, tris[j].tri, tol) {
					continue
				}
				if geom.TriangleTriangleIntersect(tris[i].tri, tris[j].tri, tol) {
					errs = append(errs, ValidationError{
						Level: L2Spatial, Code: ErrSelfIntersectingFace, Severity: SeverityError,
						Entity:  faceEntity(tris[i].face),
						Message: "face intersects another non-adjacent face of the same shell",
					})
				}
			}
		}
	}

	return ValidationReport{
		Levels: []ValidationLevel{L2Spatial},
		Errors: errs,
	}
}

// taggedTriangle is one fan-triangulated facet of a face, kept alongside
// the face it came from so adjacent (vertex-sharing) facets can be told
// apart from a genuine self-intersection.
type taggedTriangle struct {
	tri  geom.Triangle3
	face brep.FaceId
}

// shellTriangles fan-triangulates every face of shellID from its outer
// loop's first vertex, for use by the self-intersection check. Inner
// loops (holes) don't contribute facets of their own since a hole's
// boundary can't self-intersect the face it's cut from.
func shellTriangles(store *brep.EntityStore, shellID brep.ShellId) []taggedTriangle {
	var tris []taggedTriangle
	shell := store.Shell(shellID)
	for _, faceID := range shell.Faces {
		face := store.Face(faceID)
		pts := store.LoopVertices(face.OuterLoop)
		for i := 1; i+1 < len(pts); i++ {
			tris = append(tris, taggedTriangle{
				tri:  geom.Triangle3{A: pts[0], B: pts[i], C: pts[i+1]},
				face: faceID,
			})
		}
	}
	return tris
}

func trianglesShareVertex(a, b geom.Triangle3, tol float64) bool {
	for _, pa := range [3]geom.Point3d{a.A, a.B, a.C} {
		for _, pb := range [3]geom.Point3d{b.A, b.B, b.C} {
			if pa.DistanceTo(pb) < tol {
				return true
			}
		}
	}
	return false
}

// ValidateContinuity runs L3 checks: the angle between the normals of
// every pair of faces sharing an edge, reported as an informational
// entry whenever it exceeds a sharp-edge threshold. A polyhedral model
// is always C0 at best, so these never rise above SeverityInfo.
func ValidateContinuity(store *brep.EntityStore, solidID brep.SolidId) ValidationReport {
	const sharpAngleThreshold = 1e-3 // radians; anything above this is a deliberate edge, not noise

	var errs []ValidationError
	maxDeviation := 0.0
	seen := make(map[brep.HalfEdgeId]bool)

	solid := store.Solid(solidID)
	for _, shellID := range solid.Shells {
		shell := store.Shell(shellID)
		for _, faceID := range shell.Faces {
			face := store.Face(faceID)
			l := store.Loop(face.OuterLoop)
			for _, heID := range l.HalfEdges {
				if seen[heID] {
					continue
				}
				he := store.HalfEdge(heID)
				twin, ok := store.HalfEdges.Get(he.Twin)
				if !ok {
					continue
				}
				seen[heID] = true
				seen[he.Twin] = true

				nA := store.FaceNormal(faceID, 0, 0)
				nB := store.FaceNormal(twin.Face, 0, 0)
				angle := math.Acos(clamp(nA.Dot(nB), -1, 1))
				if angle > maxDeviation {
					maxDeviation = angle
				}
				if angle > sharpAngleThreshold {
					errs = append(errs, ValidationError{
						Level: L3Continuity, Code: ErrTangentDiscontinuity, Severity: SeverityInfo,
						Entity: edgeEntity(he.Edge),
						Message: fmt.Sprintf("normal discontinuity of %.4f rad between faces", angle),
						Value:   angle, Limit: sharpAngleThreshold,
					})
				}
			}
		}
	}

	return ValidationReport{
		Levels:  []ValidationLevel{L3Continuity},
		Errors:  errs,
		Metrics: ValidationMetrics{Tolerances: ToleranceStats{MaxFaceDeviation: maxDeviation}},
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Validate runs every level up to and including upTo, merging their
// reports, short-circuiting after any level that reports a hard
// Error (later levels assume a structurally and geometrically sound
// solid).
func Validate(store *brep.EntityStore, solidID brep.SolidId, upTo ValidationLevel) ValidationReport {
	report := ValidateTopology(store, solidID)
	if upTo == L0Topology || !report.Valid() {
		return report
	}

	report = report.Merge(ValidateGeometry(store, solidID))
	if upTo == L1Geometry || !report.Valid() {
		return report
	}

	report = report.Merge(ValidateSpatial(store, solidID))
	if upTo == L2Spatial || !report.Valid() {
		return report
	}

	return report.Merge(ValidateContinuity(store, solidID))
}
