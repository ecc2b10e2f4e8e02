package component

// Transform is the entity position in world units (y up). The sign of
// ScaleX is the facing direction.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

// FacingDir returns +1 when facing right and -1 when facing left.
func (t *Transform) FacingDir() int {
	if t != nil && t.ScaleX < 0 {
		return -1
	}
	return 1
}

// Flip mirrors the facing direction.
func (t *Transform) Flip() {
	if t == nil {
		return
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	t.ScaleX = -t.ScaleX
}

var TransformComponent = NewComponent[Transform]()
