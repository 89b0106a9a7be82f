package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/coinpath/common"
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
)

const (
	collisionTypeAgent cp.CollisionType = iota + 1
	collisionTypeWaypoint
	collisionTypeSolid
)

const solverIterations = 10

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk space, steps
// it once per tick and reports agent overlap-begins with sensor shapes as
// trigger events.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	dt            float64

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	pending  []ecs.TriggerEvent
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	ps := &PhysicsSystem{dt: common.FixedTimestep}
	ps.Reset()
	return ps
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(cp.Vector{})
	return space
}

// Reset drops every body and starts over with an empty space. The level
// system calls it before rebuilding the world.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = newSpace()
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapes = make(map[*cp.Shape]ecs.Entity)
	ps.pending = nil
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
	if ps.space == nil {
		ps.Reset()
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.applyMotion(w)

	ps.space.Step(ps.dt)

	ps.settleKinematics(w)
	ps.syncTransforms(w)
	ps.flushTriggers(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewWildcardCollisionHandler(collisionTypeAgent)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		if shapeA.Sensor() && !shapeB.Sensor() {
			shapeA, shapeB = shapeB, shapeA
		}
		agent, okA := sys.shapes[shapeA]
		other, okB := sys.shapes[shapeB]
		if !okA || !okB || !shapeB.Sensor() {
			return true
		}
		sys.pending = append(sys.pending, ecs.TriggerEvent{Entity: agent, Other: other})
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil || bodyComp.Shape == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			return
		}

		info := ps.createBodyInfo(*transform, *bodyComp)
		if info == nil {
			return
		}
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapes[shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

func collisionTypeFor(role component.BodyRole) cp.CollisionType {
	switch role {
	case component.BodyRoleAgent:
		return collisionTypeAgent
	case component.BodyRoleWaypoint:
		return collisionTypeWaypoint
	default:
		return collisionTypeSolid
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius

	if radius <= 0 && (width <= 0 || height <= 0) {
		width = common.TileSize
		height = common.TileSize
	}

	centerX, centerY := transform.X, transform.Y
	if radius <= 0 {
		centerX += width / 2
		centerY += height / 2
	}

	info := &bodyInfo{static: bodyComp.Static}

	var body *cp.Body
	var shape *cp.Shape
	if bodyComp.Static {
		body = ps.space.StaticBody
		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{X: centerX, Y: centerY})
		} else {
			bb := cp.BB{L: transform.X, B: transform.Y, R: transform.X + width, T: transform.Y + height}
			shape = cp.NewBox2(body, bb, 0)
		}
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// Heading is owned by gameplay code, so contacts must never spin the body.
		body = cp.NewBody(mass, cp.INFINITY)
		body.SetPosition(cp.Vector{X: centerX, Y: centerY})
		body.SetAngle(transform.Rotation)
		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
		ps.space.AddBody(body)
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeFor(bodyComp.Role))
	shape.SetSensor(bodyComp.Sensor)
	ps.space.AddShape(shape)

	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
}

// applyMotion converts pending moves into the velocity that reaches the
// target in exactly one step.
func (ps *PhysicsSystem) applyMotion(w *ecs.World) {
	ecs.ForEach2(w, component.MotionComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, motion *component.Motion, bodyComp *component.PhysicsBody) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		if !motion.Pending {
			bodyComp.Body.SetVelocity(0, 0)
			return
		}
		pos := bodyComp.Body.Position()
		bodyComp.Body.SetVelocity((motion.TargetX-pos.X)/ps.dt, (motion.TargetY-pos.Y)/ps.dt)
		motion.Pending = false
	})
}

func (ps *PhysicsSystem) settleKinematics(w *ecs.World) {
	ecs.ForEach2(w, component.MotionComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, _ *component.Motion, bodyComp *component.PhysicsBody) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		bodyComp.Body.SetVelocity(0, 0)
		bodyComp.Body.SetAngularVelocity(0)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		if bodyComp.Radius > 0 {
			transform.X = pos.X
			transform.Y = pos.Y
		} else {
			transform.X = pos.X - bodyComp.Width/2
			transform.Y = pos.Y - bodyComp.Height/2
		}
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) flushTriggers(w *ecs.World) {
	if len(ps.pending) == 0 {
		return
	}
	events := w.Events()
	for _, evt := range ps.pending {
		if !ecs.IsAlive(w, evt.Entity) || !ecs.IsAlive(w, evt.Other) {
			continue
		}
		events.Push(ecs.Event{Type: ecs.EventTriggerEnter, Data: evt})
	}
	ps.pending = ps.pending[:0]
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) {
			if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind()) {
				continue
			}
		}

		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.shapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
