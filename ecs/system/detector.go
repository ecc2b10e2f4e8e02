package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hollowblade/ecs"
)

// RayHit is the first shape a raycast touched.
type RayHit struct {
	Entity ecs.Entity
	// Category is the collision category of the hit entity.
	Category uint32
	Point    cp.Vector
}

// Detector answers spatial queries. Masks are collision layer bits from the
// component package.
type Detector interface {
	// Raycast returns the first hit between from and to among shapes whose
	// category is in mask.
	Raycast(from, to cp.Vector, mask uint32) (RayHit, bool)
	// Overlap returns every entity whose shape touches the circle.
	Overlap(center cp.Vector, radius float64, mask uint32) []ecs.Entity
}
