package brep

import (
	"testing"

	"github.com/sequoia-hope/waffle-iron-sub001/geom"
)

func TestMakeBoxTopology(t *testing.T) {
	store := NewEntityStore()
	solidID := MakeBox(store, 0, 0, 0, 10, 10, 10)

	audit := AuditSolid(store, solidID)
	if !audit.AllValid() {
		t.Fatalf("box audit failed: %+v", audit.Errors)
	}

	shellID := store.Solid(solidID).Shells[0]
	v, e, f := store.CountTopology(shellID)
	if v != 8 || e != 12 || f != 6 {
		t.Errorf("box topology = (V=%d E=%d F=%d), want (8,12,6)", v, e, f)
	}
	if v-e+f != 2 {
		t.Errorf("Euler-Poincare violated: V-E+F = %d, want 2", v-e+f)
	}
}

func TestMakeCylinderTopology(t *testing.T) {
	store := NewEntityStore()
	solidID := MakeCylinder(store, geom.Point3dOrigin, 5, 10, 8)

	audit := AuditSolid(store, solidID)
	if !audit.AllValid() {
		t.Fatalf("cylinder audit failed: %+v", audit.Errors)
	}

	shellID := store.Solid(solidID).Shells[0]
	v, e, f := store.CountTopology(shellID)
	// 8 segments: 16 vertices (top+bottom rings), 8 side faces + 2 caps.
	if v != 16 || f != 10 {
		t.Errorf("cylinder topology = (V=%d F=%d), want (16,10)", v, f)
	}
	if v-e+f != 2 {
		t.Errorf("Euler-Poincare violated: V-E+F = %d, want 2", v-e+f)
	}
}

func TestMakeSphereTopology(t *testing.T) {
	store := NewEntityStore()
	solidID := MakeSphere(store, geom.Point3dOrigin, 5, 8, 4)

	audit := AuditSolid(store, solidID)
	if !audit.AllValid() {
		t.Fatalf("sphere audit failed: %+v", audit.Errors)
	}

	shellID := store.Solid(solidID).Shells[0]
	v, e, f := store.CountTopology(shellID)
	if v-e+f != 2 {
		t.Errorf("Euler-Poincare violated: V-E+F = %d, want 2", v-e+f)
	}
}

func TestMvfsMevExtendsOpenLoop(t *testing.T) {
	store := NewEntityStore()
	_, shellID, v0 := Mvfs(store, geom.NewPoint3d(0, 0, 0))

	loopID := store.Face(store.Shell(shellID).Faces[0]).OuterLoop
	if n := len(store.Loop(loopID).HalfEdges); n != 0 {
		t.Fatalf("fresh Mvfs loop should have 0 half-edges, got %d", n)
	}

	_, v1 := Mev(store, v0, geom.NewPoint3d(1, 0, 0), loopID)
	if n := len(store.Loop(loopID).HalfEdges); n != 1 {
		t.Errorf("loop after one Mev should have 1 half-edge, got %d", n)
	}
	if store.Vertex(v1).Point.X != 1 {
		t.Errorf("Mev's new vertex should be at the given point")
	}
}

// TestMefSplitsQuadIntoTriangles exercises Mef in its designed role:
// partitioning an already-closed loop's half-edges between the two loops a
// chord produces, rather than closing an open path.
func TestMefSplitsQuadIntoTriangles(t *testing.T) {
	store := NewEntityStore()
	solidID := store.Solids.Insert(Solid{})
	shellID := store.Shells.Insert(Shell{Orientation: ShellOutward, Solid: solidID})
	store.Solid(solidID).Shells = append(store.Solid(solidID).Shells, shellID)

	v0 := store.Vertices.Insert(Vertex{Point: geom.NewPoint3d(0, 0, 0)})
	v1 := store.Vertices.Insert(Vertex{Point: geom.NewPoint3d(1, 0, 0)})
	v2 := store.Vertices.Insert(Vertex{Point: geom.NewPoint3d(1, 1, 0)})
	v3 := store.Vertices.Insert(Vertex{Point: geom.NewPoint3d(0, 1, 0)})

	edgeMap := NewEdgeMap()
	faceID := newPlanarFace(store, shellID, []VertexId{v0, v1, v2, v3}, geom.Vec3Z, edgeMap)
	loopID := store.Face(faceID).OuterLoop
	if n := len(store.Loop(loopID).HalfEdges); n != 4 {
		t.Fatalf("quad loop should have 4 half-edges, got %d", n)
	}

	_, newFaceID := Mef(store, v0, v2, loopID, shellID, geom.NewPlane(geom.NewPoint3d(0, 0, 0), geom.Vec3Z))

	if n := len(store.Loop(loopID).HalfEdges); n != 3 {
		t.Errorf("existing loop after Mef should have 3 half-edges, got %d", n)
	}
	newLoopID := store.Face(newFaceID).OuterLoop
	if n := len(store.Loop(newLoopID).HalfEdges); n != 3 {
		t.Errorf("new loop after Mef should have 3 half-edges, got %d", n)
	}
	if len(store.Shell(shellID).Faces) != 2 {
		t.Errorf("shell should have 2 faces after Mef, got %d", len(store.Shell(shellID).Faces))
	}
}
