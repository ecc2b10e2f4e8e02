package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hollowblade/common"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

// PhysicsSystem owns the Chipmunk space. It creates bodies for new
// PhysicsBody components, keeps shape filters in sync with collision
// layers, steps the space by the world delta and copies positions back to
// transforms. It is also the production Detector.
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	static   bool
	category uint32
	mask     uint32
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	ps.pushVelocities(w)

	if dt := w.Delta(); dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			info.body.SetVelocity(v.X, v.Y)
		}
	}
}

// Sync creates bodies for entities added since the last step without
// stepping the space. Builders call it so spawned entities are queryable
// in the same tick.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.syncEntities(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(info)
		delete(ps.entities, e)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		info, ok := ps.entities[e]
		if !ok {
			info = ps.createBody(w, e, pb, t)
			ps.entities[e] = info
		}
		ps.syncFilter(w, e, info)
	})
}

func (ps *PhysicsSystem) createBody(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) *bodyInfo {
	width := math.Max(pb.Width, 0.01)
	height := math.Max(pb.Height, 0.01)

	var body *cp.Body
	if pb.Static {
		body = cp.NewStaticBody()
	} else {
		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		// infinite moment keeps characters upright
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.UserData = e

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(pb.Friction)
	shape.UserData = e

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	pb.Body = body
	pb.Shape = shape

	info := &bodyInfo{body: body, shape: shape, static: pb.Static}
	ps.syncFilter(w, e, info)
	return info
}

func (ps *PhysicsSystem) removeBody(info *bodyInfo) {
	if info == nil {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

func (ps *PhysicsSystem) syncFilter(w *ecs.World, e ecs.Entity, info *bodyInfo) {
	category, mask := uint32(1), ^uint32(0)
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		if layer.Category != 0 {
			category = layer.Category
		}
		if layer.Mask != 0 {
			mask = layer.Mask
		}
	}
	if info.category == category && info.mask == mask {
		return
	}
	info.category = category
	info.mask = mask
	info.shape.SetFilter(cp.ShapeFilter{
		Group:      0,
		Categories: uint(category),
		Mask:       uint(mask),
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y

		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vel := info.body.Velocity()
			v.X, v.Y = vel.X, vel.Y
		}
	}
}

func (ps *PhysicsSystem) Raycast(from, to cp.Vector, mask uint32) (RayHit, bool) {
	if ps == nil || ps.space == nil {
		return RayHit{}, false
	}
	info := ps.space.SegmentQueryFirst(from, to, 0, queryFilter(mask))
	if info.Shape == nil {
		return RayHit{}, false
	}
	e, ok := info.Shape.UserData.(ecs.Entity)
	if !ok {
		return RayHit{}, false
	}
	return RayHit{
		Entity:   e,
		Category: uint32(info.Shape.Filter.Categories),
		Point:    info.Point,
	}, true
}

func (ps *PhysicsSystem) Overlap(center cp.Vector, radius float64, mask uint32) []ecs.Entity {
	if ps == nil || ps.space == nil {
		return nil
	}
	circle := cp.NewBBForCircle(center, radius)
	seen := make(map[ecs.Entity]struct{})
	var out []ecs.Entity
	ps.space.BBQuery(circle, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		e, ok := shape.UserData.(ecs.Entity)
		if !ok {
			return
		}
		if _, dup := seen[e]; dup {
			return
		}
		if !circleTouchesBB(center, radius, shape.BB()) {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}, nil)
	return out
}

func queryFilter(mask uint32) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      0,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(mask),
	}
}

func circleTouchesBB(c cp.Vector, r float64, bb cp.BB) bool {
	x := common.Clamp(c.X, bb.L, bb.R)
	y := common.Clamp(c.Y, bb.B, bb.T)
	dx, dy := c.X-x, c.Y-y
	return dx*dx+dy*dy <= r*r
}
