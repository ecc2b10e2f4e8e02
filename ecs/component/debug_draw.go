package component

import "image/color"

// DebugDraw is the flat color the arena viewer fills an entity's collider
// with. Headless runs ignore it.
type DebugDraw struct {
	Color color.Color
}

var DebugDrawComponent = NewComponent[DebugDraw]()
