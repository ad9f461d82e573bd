//-----------------------------------------------------------------------------
/*

B-Rep Topology

The half-edge (doubly-connected edge list) representation: every interior
Edge owns exactly two HalfEdges, each bound to one Face and to the Loop
that walks that face's boundary in order. Twin linking is the single
invariant every constructor in this package must uphold: he.Twin.Twin ==
he, and a half-edge is never its own twin.

*/
//-----------------------------------------------------------------------------

package brep

import "github.com/sequoia-hope/waffle-iron-sub001/geom"

// VertexId, EdgeId, HalfEdgeId, LoopId, FaceId, ShellId and SolidId are
// opaque, generation-tagged references into an EntityStore.
type (
	VertexId   = Key[Vertex]
	EdgeId     = Key[Edge]
	HalfEdgeId = Key[HalfEdge]
	LoopId     = Key[Loop]
	FaceId     = Key[Face]
	ShellId    = Key[Shell]
	SolidId    = Key[Solid]
)

// Vertex is a point in space with its own coincidence tolerance.
type Vertex struct {
	Point     geom.Point3d
	Tolerance float64
}

// Edge owns a 3D curve and the pair of half-edges that traverse it in
// opposite directions.
type Edge struct {
	Curve       geom.Curve
	HalfEdges   [2]HalfEdgeId
	StartVertex VertexId
	EndVertex   VertexId
}

// HalfEdge is one directed traversal of an Edge, bound to a single Face via
// the Loop it belongs to.
type HalfEdge struct {
	Edge        EdgeId
	Twin        HalfEdgeId
	Face        FaceId
	Loop        LoopId
	StartVertex VertexId
	EndVertex   VertexId
	TStart      float64
	TEnd        float64
	Forward     bool
}

// Loop is an ordered, closed chain of half-edges bounding a Face (either the
// outer boundary or one of its inner boundaries/holes).
type Loop struct {
	HalfEdges []HalfEdgeId
	Face      FaceId
}

// Face is a trimmed region of a Surface, bounded by one outer Loop and zero
// or more inner Loops (holes).
type Face struct {
	Surface    geom.Surface
	OuterLoop  LoopId
	InnerLoops []LoopId
	SameSense  bool
	Shell      ShellId
}

// ShellOrientation distinguishes a shell that bounds a solid from the
// outside (Outward) from one that bounds an internal void (Inward, as
// produced by the shell/hollow operation).
type ShellOrientation int

const (
	ShellOutward ShellOrientation = iota
	ShellInward
)

// Shell is a connected set of faces forming a closed (or open, mid-rebuild)
// boundary component of a Solid.
type Shell struct {
	Faces       []FaceId
	Orientation ShellOrientation
	Solid       SolidId
}

// Solid is one or more shells: exactly one outer shell plus zero or more
// inward shells describing internal voids.
type Solid struct {
	Shells []ShellId
}

// EntityStore is the arena holding every topological entity in a model.
// Entities reference each other by Key, never by pointer, so the store can
// be freely copied, serialized piecemeal, or rebuilt incrementally.
type EntityStore struct {
	Vertices  Arena[Vertex]
	Edges     Arena[Edge]
	HalfEdges Arena[HalfEdge]
	Loops     Arena[Loop]
	Faces     Arena[Face]
	Shells    Arena[Shell]
	Solids    Arena[Solid]
}

// NewEntityStore returns an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{}
}

// Vertex returns the vertex referenced by id, panicking if it does not
// resolve. Used at call sites that just created id from the same store.
func (s *EntityStore) Vertex(id VertexId) *Vertex { return s.Vertices.MustGet(id) }

// Edge returns the edge referenced by id.
func (s *EntityStore) Edge(id EdgeId) *Edge { return s.Edges.MustGet(id) }

// HalfEdge returns the half-edge referenced by id.
func (s *EntityStore) HalfEdge(id HalfEdgeId) *HalfEdge { return s.HalfEdges.MustGet(id) }

// Loop returns the loop referenced by id.
func (s *EntityStore) Loop(id LoopId) *Loop { return s.Loops.MustGet(id) }

// Face returns the face referenced by id.
func (s *EntityStore) Face(id FaceId) *Face { return s.Faces.MustGet(id) }

// Shell returns the shell referenced by id.
func (s *EntityStore) Shell(id ShellId) *Shell { return s.Shells.MustGet(id) }

// Solid returns the solid referenced by id.
func (s *EntityStore) Solid(id SolidId) *Solid { return s.Solids.MustGet(id) }

// LoopVertices returns the sequence of vertex positions the loop's
// half-edges start from, in traversal order.
func (s *EntityStore) LoopVertices(loopID LoopId) []geom.Point3d {
	l := s.Loop(loopID)
	pts := make([]geom.Point3d, 0, len(l.HalfEdges))
	for _, heID := range l.HalfEdges {
		he := s.HalfEdge(heID)
		pts = append(pts, s.Vertex(he.StartVertex).Point)
	}
	return pts
}

// FaceNormal evaluates the face's surface normal at parameters (u, v),
// flipping it when the face's SameSense flag indicates the topology
// traverses the surface in the reverse sense.
func (s *EntityStore) FaceNormal(faceID FaceId, u, v float64) geom.Vec3 {
	f := s.Face(faceID)
	n := f.Surface.NormalAt(u, v)
	if !f.SameSense {
		return n.Neg()
	}
	return n
}
