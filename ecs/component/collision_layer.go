package component

// Collision categories. Raycasts and overlap queries use the same bits as
// shape filters in the physics space.
const (
	LayerGround uint32 = 1 << iota
	LayerPlayer
	LayerEnemy
	LayerUntargetable
)

// CollisionLayer allows entities to declare a collision category and mask
// so the physics system can selectively enable/disable collisions between
// groups of objects.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system will treat it as category 1.
	Category uint32
	// Mask is a bitmask of categories this entity should collide with. If
	// zero, the physics system will treat it as all-bits set.
	Mask uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
