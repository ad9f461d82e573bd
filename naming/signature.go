//-----------------------------------------------------------------------------
/*

Signature Matching

signatureEqual and SignatureSimilarity implement the two comparison modes
a TopoSignature supports: exact-within-tolerance equality for strict
Selector::Signature resolution, and a weighted [0,1] similarity score
over whichever fields both signatures populate, for best-effort fallback
and for ranking candidates when an exact match fails.

*/
//-----------------------------------------------------------------------------

package naming

import "math"

const (
	areaEqualTol     = 1e-6
	centroidEqualTol = 1e-6
	normalEqualTol   = 1e-6
	lengthEqualTol   = 1e-6
)

// signatureEqual reports whether a and b match on every field both
// populate, within a fixed equality tolerance per field. Fields that
// only one side populates do not block equality (the populated side is
// trusted); two entirely empty signatures never count as equal, since an
// empty signature carries no information at all.
func signatureEqual(a, b TopoSignature) bool {
	any := false
	if a.HasSurfaceType && b.HasSurfaceType {
		any = true
		if a.SurfaceType != b.SurfaceType {
			return false
		}
	}
	if a.HasArea && b.HasArea {
		any = true
		if math.Abs(a.Area-b.Area) > areaEqualTol*math.Max(1, math.Abs(a.Area)) {
			return false
		}
	}
	if a.HasCentroid && b.HasCentroid {
		any = true
		if dist3(a.Centroid, b.Centroid) > centroidEqualTol {
			return false
		}
	}
	if a.HasNormal && b.HasNormal {
		any = true
		if dist3(a.Normal, b.Normal) > normalEqualTol {
			return false
		}
	}
	if a.HasBBox && b.HasBBox {
		any = true
		for i := 0; i < 6; i++ {
			if math.Abs(a.BBox[i]-b.BBox[i]) > centroidEqualTol {
				return false
			}
		}
	}
	if a.HasAdjacency && b.HasAdjacency {
		any = true
		if a.AdjacencyHash != b.AdjacencyHash {
			return false
		}
	}
	if a.HasLength && b.HasLength {
		any = true
		if math.Abs(a.Length-b.Length) > lengthEqualTol*math.Max(1, math.Abs(a.Length)) {
			return false
		}
	}
	return any
}

// SignatureSimilarity scores a against b in [0, 1]: a weighted sum over
// every field both populate, each normalized to [0, 1] individually.
// Populated-by-only-one-side fields do not contribute. Two signatures
// that share no populated field score 0, matching the "empty signatures
// score 0" rule.
func SignatureSimilarity(a, b TopoSignature) float64 {
	type term struct {
		weight, score float64
	}
	var terms []term

	if a.HasSurfaceType && b.HasSurfaceType {
		s := 0.0
		if a.SurfaceType == b.SurfaceType {
			s = 1.0
		}
		terms = append(terms, term{2.0, s})
	}
	if a.HasArea && b.HasArea {
		terms = append(terms, term{1.5, ratioScore(a.Area, b.Area)})
	}
	if a.HasCentroid && b.HasCentroid {
		terms = append(terms, term{1.5, inverseDistanceScore(dist3(a.Centroid, b.Centroid))})
	}
	if a.HasNormal && b.HasNormal {
		dot := a.Normal[0]*b.Normal[0] + a.Normal[1]*b.Normal[1] + a.Normal[2]*b.Normal[2]
		na, nb := norm3(a.Normal), norm3(b.Normal)
		s := 0.0
		if na > 1e-15 && nb > 1e-15 {
			s = (dot/(na*nb) + 1) / 2 // remap [-1,1] to [0,1]
		}
		terms = append(terms, term{2.0, s})
	}
	if a.HasBBox && b.HasBBox {
		terms = append(terms, term{1.0, bboxOverlapScore(a.BBox, b.BBox)})
	}
	if a.HasAdjacency && b.HasAdjacency {
		s := 0.0
		if a.AdjacencyHash == b.AdjacencyHash {
			s = 1.0
		}
		terms = append(terms, term{1.0, s})
	}
	if a.HasLength && b.HasLength {
		terms = append(terms, term{1.0, ratioScore(a.Length, b.Length)})
	}

	if len(terms) == 0 {
		return 0
	}
	var sum, weight float64
	for _, t := range terms {
		sum += t.weight * t.score
		weight += t.weight
	}
	return sum / weight
}

func dist3(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func norm3(a [3]float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

func ratioScore(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	lo, hi := math.Abs(a), math.Abs(b)
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < 1e-15 {
		return 1
	}
	return lo / hi
}

func inverseDistanceScore(d float64) float64 {
	return 1.0 / (1.0 + d)
}

func bboxOverlapScore(a, b [6]float64) float64 {
	overlap := 1.0
	for i := 0; i < 3; i++ {
		aMin, aMax := a[i], a[i+3]
		bMin, bMax := b[i], b[i+3]
		lo := math.Max(aMin, bMin)
		hi := math.Min(aMax, bMax)
		span := math.Max(aMax-aMin, bMax-bMin)
		if span < 1e-15 {
			continue
		}
		axisOverlap := math.Max(0, hi-lo) / span
		overlap *= axisOverlap
	}
	return overlap
}
