package geom

// Tolerance bundles the three tolerance values used throughout the kernel:
// coincidence (distance), angular, and parametric.
type Tolerance struct {
	// Coincidence is the maximum distance for two points to be considered
	// the same point.
	Coincidence float64
	// Angular is the maximum angle (radians) for two directions to be
	// considered parallel/coincident.
	Angular float64
	// Parametric is the maximum parameter-space gap considered negligible.
	Parametric float64
}

// DefaultTolerance returns the kernel's default tolerance set.
func DefaultTolerance() Tolerance {
	return Tolerance{
		Coincidence: 1e-7,
		Angular:     1e-10,
		Parametric:  1e-9,
	}
}

// PointsCoincident reports whether a and b are within tol.Coincidence of
// each other.
func PointsCoincident(a, b Point3d, tol Tolerance) bool {
	return a.DistanceTo(b) <= tol.Coincidence
}

// IsZeroLength reports whether length is within tol.Coincidence of zero.
func IsZeroLength(length float64, tol Tolerance) bool {
	return length <= tol.Coincidence
}

// IsZeroAngle reports whether angle is within tol.Angular of zero.
func IsZeroAngle(angle float64, tol Tolerance) bool {
	if angle < 0 {
		angle = -angle
	}
	return angle <= tol.Angular
}
