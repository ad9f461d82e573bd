//-----------------------------------------------------------------------------
/*

Sweep

Sweeps a closed profile (specified in a local frame, profile X along the
frame normal, Y along the binormal, Z along the tangent) along a polyline
path, using a rotation-minimizing frame (double-reflection method) so the
cross-section doesn't twist between waypoints the way a naive
Frenet frame would around an inflection.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

type frame struct {
	Tangent, Normal, Binormal geom.Vec3
}

func computeFrames(path []geom.Point3d) []frame {
	n := len(path)
	frames := make([]frame, 0, n)

	t0 := path[1].Sub(path[0]).Normalize()
	initialNormal := geom.NewVec3(1, 0, 0)
	if absF(t0.X) >= 0.9 {
		initialNormal = geom.NewVec3(0, 1, 0)
	}
	n0 := initialNormal.Sub(t0.Scale(initialNormal.Dot(t0))).Normalize()
	b0 := t0.Cross(n0)
	frames = append(frames, frame{Tangent: t0, Normal: n0, Binormal: b0})

	for i := 1; i < n; i++ {
		prev := frames[i-1]

		var ti geom.Vec3
		if i < n-1 {
			segIn := path[i].Sub(path[i-1]).Normalize()
			segOut := path[i+1].Sub(path[i]).Normalize()
			if sum, ok := segIn.Add(segOut).Normalized(); ok {
				ti = sum
			} else {
				ti = segIn
			}
		} else {
			ti = path[i].Sub(path[i-1]).Normalize()
		}

		v1 := path[i].Sub(path[i-1])
		c1 := v1.Dot(v1)
		if c1 < 1e-30 {
			frames = append(frames, frame{Tangent: ti, Normal: prev.Normal, Binormal: prev.Binormal})
			continue
		}

		rL := prev.Normal.Sub(v1.Scale(2 * v1.Dot(prev.Normal) / c1))
		tL := prev.Tangent.Sub(v1.Scale(2 * v1.Dot(prev.Tangent) / c1))

		v2 := ti.Sub(tL)
		c2 := v2.Dot(v2)
		var ni geom.Vec3
		if c2 < 1e-30 {
			ni = rL
		} else {
			ni = rL.Sub(v2.Scale(2 * v2.Dot(rL) / c2))
		}
		bi := ti.Cross(ni)
		frames = append(frames, frame{Tangent: ti, Normal: ni, Binormal: bi})
	}

	return frames
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// SweepProfile sweeps profile (a closed polygon, >= 3 points, specified in
// a local frame centered at the origin) along path (a polyline, >= 2
// waypoints), producing side faces between consecutive rings plus start
// and end caps.
func SweepProfile(store *brep.EntityStore, profile, path []geom.Point3d) (OpResult, error) {
	nProf := len(profile)
	if nProf < 3 {
		return OpResult{}, errInsufficientProfile(3, nProf)
	}
	nPath := len(path)
	if nPath < 2 {
		return OpResult{}, errInsufficientPath(2, nPath)
	}

	frames := computeFrames(path)

	rings := make([][]brep.VertexId, nPath)
	for segIdx, fr := range frames {
		origin := path[segIdx]
		ring := make([]brep.VertexId, nProf)
		for i, p := range profile {
			world := origin.Add(fr.Normal.Scale(p.X)).Add(fr.Binormal.Scale(p.Y)).Add(fr.Tangent.Scale(p.Z))
			ring[i] = store.Vertices.Insert(brep.Vertex{Point: world, Tolerance: geom.DefaultTolerance().Coincidence})
		}
		rings[segIdx] = ring
	}

	solidID := store.Solids.Insert(brep.Solid{})
	shellID := store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: solidID})
	store.Solid(solidID).Shells = append(store.Solid(solidID).Shells, shellID)

	edgeMap := brep.NewEdgeMap()

	ringPoints := func(ring []brep.VertexId) []geom.Point3d {
		pts := make([]geom.Point3d, len(ring))
		for i, v := range ring {
			pts[i] = store.Vertex(v).Point
		}
		return pts
	}

	// Start cap: reversed winding, normal opposite the initial tangent.
	startReversed := make([]brep.VertexId, nProf)
	for i := 0; i < nProf; i++ {
		from := (nProf - i) % nProf
		startReversed[i] = rings[0][from]
	}
	var faces []EntityRecord
	startFace := brep.NewPlanarFace(store, shellID, startReversed, frames[0].Tangent.Neg(), edgeMap)
	faces = append(faces, EntityRecord{Face: startFace, Role: naming.EndCapNegative})

	// End cap: forward winding, normal along the final tangent.
	last := nPath - 1
	endFace := brep.NewPlanarFace(store, shellID, rings[last], frames[last].Tangent, edgeMap)
	faces = append(faces, EntityRecord{Face: endFace, Role: naming.EndCapPositive})

	// Side quads between consecutive rings.
	sideIdx := 0
	for seg := 0; seg < nPath-1; seg++ {
		a, b := rings[seg], rings[seg+1]
		aPts, bPts := ringPoints(a), ringPoints(b)
		for i := 0; i < nProf; i++ {
			next := (i + 1) % nProf
			v0, v1 := a[i], a[next]
			v2, v3 := b[next], b[i]

			p0, p1, p3 := aPts[i], aPts[next], bPts[i]
			normal, ok := p1.Sub(p0).Cross(p3.Sub(p0)).Normalized()
			if !ok {
				normal = geom.Vec3Z
			}
			f := brep.NewPlanarFace(store, shellID, []brep.VertexId{v0, v1, v2, v3}, normal, edgeMap)
			faces = append(faces, EntityRecord{Face: f, Role: naming.SideFace(sideIdx)})
			sideIdx++
		}
	}

	return mainBody(solidID, faces), nil
}
