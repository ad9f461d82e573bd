//-----------------------------------------------------------------------------
/*

Kernel Façade

Kernel is the narrow, backend-agnostic surface the feature engine drives:
it owns the single EntityStore for one model instance and exposes the
consumed operations (make_faces_from_profiles, extrude_face, ...,
export_step) plus the introspection calls the engine needs to resolve
GeomRefs against a fresh rebuild (list_faces, list_edges, face/edge/vertex
signatures).
Everything it hands back (KernelId, KernelSolidHandle, FaceHandle) is
opaque and good only for the lifetime of the current rebuild; nothing
here is ever persisted; only a naming.GeomRef survives a save/load round
trip.

*/
//-----------------------------------------------------------------------------

package kernel

import (
	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
	"github.com/sequoia-hope/waffle-iron-sub001/mesh"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
	"github.com/sequoia-hope/waffle-iron-sub001/ops"
	"github.com/sequoia-hope/waffle-iron-sub001/render"
	"go.uber.org/zap"
)

// KernelId is the opaque, transient identity of one topological entity,
// valid only for the lifetime of the Kernel that produced it.
type KernelId = naming.KernelID

// KernelSolidHandle is the opaque, transient identity of one solid body.
type KernelSolidHandle struct {
	id brep.SolidId
}

// FaceHandle is the opaque, transient identity of one face, returned by
// MakeFacesFromProfiles before any solid exists to attach it to.
type FaceHandle struct {
	id brep.FaceId
}

// SolidID exposes the arena key a KernelSolidHandle wraps, for callers
// (validate, mesh) that operate directly against a brep.EntityStore
// rather than through this façade. The key is as transient as the
// handle itself: good only for the Kernel that produced it.
func (h KernelSolidHandle) SolidID() brep.SolidId { return h.id }

// Kernel owns the single EntityStore backing one model instance. It is
// not safe for concurrent use; per spec.md's concurrency model, callers
// run one Kernel per thread.
type Kernel struct {
	store *brep.EntityStore

	// solids tracks every SolidId this Kernel has produced, keyed by the
	// KernelSolidHandle it returned, so introspection calls can look a
	// handle back up without round-tripping through the arena directly.
	solids map[brep.SolidId]struct{}
}

// New returns a Kernel with a fresh, empty EntityStore.
func New() *Kernel {
	return &Kernel{
		store:  brep.NewEntityStore(),
		solids: make(map[brep.SolidId]struct{}),
	}
}

// Store exposes the underlying EntityStore for callers (validate,
// render) that operate directly against brep rather than through this
// façade.
func (k *Kernel) Store() *brep.EntityStore { return k.store }

func (k *Kernel) track(id brep.SolidId) KernelSolidHandle {
	k.solids[id] = struct{}{}
	return KernelSolidHandle{id: id}
}

func wrapOp(res ops.OpResult, err error, k *Kernel) (KernelSolidHandle, ops.Provenance, error) {
	if err != nil {
		return KernelSolidHandle{}, ops.Provenance{}, err
	}
	return k.track(res.Solid), res.Provenance, nil
}

// MakeFacesFromProfiles builds one planar face per closed profile,
// mapping each profile's 2D (u, v) positions into 3D via the plane
// transform implied by planeOrigin/planeNormal/uAxis, matching the
// SolvedSketch contract consumed from the sketch solver (§6.1).
func (k *Kernel) MakeFacesFromProfiles(profiles [][]geom.Point2d, planeOrigin geom.Point3d, planeNormal, uAxis geom.Vec3) ([]FaceHandle, error) {
	n := planeNormal.Normalize()
	u := uAxis.Normalize()
	plane := geom.Plane{Origin: planeOrigin, Normal: n, UAxis: u, VAxis: n.Cross(u)}

	solidID := k.store.Solids.Insert(brep.Solid{})
	shellID := k.store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: solidID})
	k.store.Solid(solidID).Shells = append(k.store.Solid(solidID).Shells, shellID)
	edgeMap := brep.NewEdgeMap()

	handles := make([]FaceHandle, 0, len(profiles))
	for _, profile := range profiles {
		verts := make([]brep.VertexId, len(profile))
		for i, p2 := range profile {
			p3 := plane.Evaluate(p2.X, p2.Y)
			verts[i] = k.store.Vertices.Insert(brep.Vertex{Point: p3})
		}
		faceID := brep.NewPlanarFace(k.store, shellID, verts, planeNormal, edgeMap)
		handles = append(handles, FaceHandle{id: faceID})
	}
	telemetry.L().Debug("kernel: built faces from profiles", zap.Int("count", len(handles)))
	return handles, nil
}

// ExtrudeFace extrudes the profile polygon sampled from face along
// direction by distance.
func (k *Kernel) ExtrudeFace(face FaceHandle, direction geom.Vec3, distance float64) (KernelSolidHandle, ops.Provenance, error) {
	poly := k.store.LoopVertices(k.store.Face(face.id).OuterLoop)
	res, err := ops.ExtrudeProfile(k.store, ops.ProfileFromPoints(poly), direction, distance)
	return wrapOp(res, err, k)
}

// RevolveFace revolves the profile polygon sampled from face around the
// given axis by angle (radians).
func (k *Kernel) RevolveFace(face FaceHandle, axisOrigin geom.Point3d, axisDir geom.Vec3, angle float64, segments int) (KernelSolidHandle, ops.Provenance, error) {
	poly := k.store.LoopVertices(k.store.Face(face.id).OuterLoop)
	res, err := ops.RevolveProfile(k.store, poly, axisOrigin, axisDir, angle, segments)
	return wrapOp(res, err, k)
}

// FilletEdges fillets every edge in edges to radius, applying them in
// sequence (the i-th fillet operates on the solid produced by the
// (i-1)-th), since ops.FilletEdge only ever takes a single edge.
func (k *Kernel) FilletEdges(handle KernelSolidHandle, edges []EdgeRef, radius float64, segments int) (KernelSolidHandle, ops.Provenance, error) {
	current := handle.id
	var provenance ops.Provenance
	for _, e := range edges {
		res, err := ops.FilletEdge(k.store, current, e.V0, e.V1, radius, segments)
		if err != nil {
			return KernelSolidHandle{}, ops.Provenance{}, err
		}
		current = res.Solid
		provenance = res.Provenance
	}
	return k.track(current), provenance, nil
}

// ChamferEdges chamfers every edge in edges by distance, chaining as
// FilletEdges does.
func (k *Kernel) ChamferEdges(handle KernelSolidHandle, edges []EdgeRef, distance float64) (KernelSolidHandle, ops.Provenance, error) {
	current := handle.id
	var provenance ops.Provenance
	for _, e := range edges {
		res, err := ops.ChamferEdge(k.store, current, e.V0, e.V1, distance)
		if err != nil {
			return KernelSolidHandle{}, ops.Provenance{}, err
		}
		current = res.Solid
		provenance = res.Provenance
	}
	return k.track(current), provenance, nil
}

// Shell hollows handle to thickness, opening the faces at
// openFaceIndices.
func (k *Kernel) Shell(handle KernelSolidHandle, openFaceIndices []int, thickness float64) (KernelSolidHandle, ops.Provenance, error) {
	res, err := ops.ShellSolid(k.store, handle.id, thickness, openFaceIndices)
	return wrapOp(res, err, k)
}

// BooleanKind names the three boolean combination rules the engine can
// request.
type BooleanKind int

const (
	BooleanUnion BooleanKind = iota
	BooleanSubtract
	BooleanIntersect
)

// Boolean combines a and b per kind.
func (k *Kernel) Boolean(a, b KernelSolidHandle, kind BooleanKind) (KernelSolidHandle, ops.Provenance, error) {
	var res ops.OpResult
	var err error
	switch kind {
	case BooleanUnion:
		res, err = ops.Union(k.store, a.id, b.id)
	case BooleanSubtract:
		res, err = ops.Subtract(k.store, a.id, b.id)
	case BooleanIntersect:
		res, err = ops.Intersect(k.store, a.id, b.id)
	}
	return wrapOp(res, err, k)
}

// EdgeRef identifies an edge by the two vertex positions spanning it, the
// same edge-lookup convention ops.FilletEdge/ops.ChamferEdge already use.
type EdgeRef struct {
	V0, V1 geom.Point3d
}

// Tessellate walks handle's solid into a mesh.RenderMesh at the given
// deflection, the consumed interface's tessellate(handle, deflection).
func (k *Kernel) Tessellate(handle KernelSolidHandle, deflection float64) (mesh.RenderMesh, error) {
	if err := k.checkHandle(handle); err != nil {
		return mesh.RenderMesh{}, err
	}
	return mesh.ToRenderMesh(k.store, handle.id, deflection), nil
}

// ExportSTEP tessellates handle and writes it to path as a STEP AP214
// file via the teacher's step.Writer, naming the product name.
func (k *Kernel) ExportSTEP(handle KernelSolidHandle, path, name string) error {
	if err := k.checkHandle(handle); err != nil {
		return err
	}
	tris := mesh.Tessellate(k.store, handle.id, 0.1)
	return render.SaveSTEPWithOptions(path, tris, render.STEPOptions{ProductName: name})
}

// ExportSTL tessellates handle and writes it to path as a binary STL
// file per §6.3.
func (k *Kernel) ExportSTL(handle KernelSolidHandle, path string, deflection float64) error {
	if err := k.checkHandle(handle); err != nil {
		return err
	}
	m := mesh.ToRenderMesh(k.store, handle.id, deflection)
	return render.ToSTL(path, m)
}
