package system

import (
	"math"
	"testing"

	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
)

func addTestAgentBody(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Role: component.BodyRoleAgent, Radius: 5, Mass: 1}))
	mustAdd(t, ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{TargetX: x, TargetY: y}))
	mustAdd(t, ecs.Add(w, e, component.AgentTagComponent.Kind(), &component.AgentTag{}))
	return e
}

func addTestCoin(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: "Coin"}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Role: component.BodyRoleWaypoint, Radius: 5, Static: true, Sensor: true}))
	return e
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func requestMove(t *testing.T, w *ecs.World, e ecs.Entity, x, y float64) {
	t.Helper()
	m, ok := ecs.Get(w, e, component.MotionComponent.Kind())
	if !ok {
		t.Fatalf("missing motion")
	}
	m.TargetX, m.TargetY, m.Pending = x, y, true
}

func TestPhysicsAppliesMotion(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	agent := addTestAgentBody(t, w, 0, 0)

	requestMove(t, w, agent, 10, -4)
	ps.Update(w)

	tf, _ := ecs.Get(w, agent, component.TransformComponent.Kind())
	if math.Abs(tf.X-10) > 1e-6 || math.Abs(tf.Y+4) > 1e-6 {
		t.Fatalf("expected agent at 10,-4, got %v,%v", tf.X, tf.Y)
	}

	// Without a new request the body must stay put.
	ps.Update(w)
	tf, _ = ecs.Get(w, agent, component.TransformComponent.Kind())
	if math.Abs(tf.X-10) > 1e-6 || math.Abs(tf.Y+4) > 1e-6 {
		t.Fatalf("expected agent to stay at 10,-4, got %v,%v", tf.X, tf.Y)
	}
}

func TestPhysicsReportsSensorOverlapOnce(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	agent := addTestAgentBody(t, w, 0, 0)
	coin := addTestCoin(t, w, 30, 0)

	ps.Update(w)
	if n := w.Events().Len(); n != 0 {
		t.Fatalf("expected no events while apart, got %d", n)
	}

	requestMove(t, w, agent, 25, 0)
	ps.Update(w)
	events := w.Events().Drain()
	if len(events) != 1 {
		t.Fatalf("expected one trigger event, got %d", len(events))
	}
	trig, ok := events[0].Data.(ecs.TriggerEvent)
	if !ok || events[0].Type != ecs.EventTriggerEnter {
		t.Fatalf("unexpected event %+v", events[0])
	}
	if trig.Entity != agent || trig.Other != coin {
		t.Fatalf("expected agent/coin pair, got %+v", trig)
	}

	// Still overlapping: no new begin.
	requestMove(t, w, agent, 27, 0)
	ps.Update(w)
	if n := w.Events().Len(); n != 0 {
		t.Fatalf("expected no repeat event, got %d", n)
	}
}

func TestPhysicsDropsBodiesOfRemovedEntities(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	addTestAgentBody(t, w, 0, 0)
	coin := addTestCoin(t, w, 100, 0)

	ps.Update(w)
	if len(ps.entities) != 2 {
		t.Fatalf("expected 2 tracked bodies, got %d", len(ps.entities))
	}

	ecs.Remove(w, coin, component.PhysicsBodyComponent.Kind())
	ps.Update(w)
	if _, ok := ps.entities[coin]; ok {
		t.Fatalf("expected coin body to be removed")
	}

	ps.Reset()
	if len(ps.entities) != 0 || len(ps.shapes) != 0 {
		t.Fatalf("expected reset to forget every body")
	}
}

func TestPhysicsWallsBlockAgent(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	agent := addTestAgentBody(t, w, 0, 0)
	wall := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, wall, component.TransformComponent.Kind(), &component.Transform{X: 20, Y: -50}))
	mustAdd(t, ecs.Add(w, wall, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Role: component.BodyRoleWall, Width: 32, Height: 100, Static: true}))

	for i := 0; i < 30; i++ {
		tf, _ := ecs.Get(w, agent, component.TransformComponent.Kind())
		requestMove(t, w, agent, tf.X+2, tf.Y)
		ps.Update(w)
	}

	tf, _ := ecs.Get(w, agent, component.TransformComponent.Kind())
	if tf.X > 20 {
		t.Fatalf("expected wall to stop the agent before x=20, got %v", tf.X)
	}
}

func TestTTLSystem(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewTTLSystem()
	short := ecs.CreateEntity(w)
	long := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, short, component.TTLComponent.Kind(), &component.TTL{Frames: 1}))
	mustAdd(t, ecs.Add(w, long, component.TTLComponent.Kind(), &component.TTL{Frames: 2}))

	sys.Update(w)
	if ecs.IsAlive(w, short) {
		t.Fatalf("expected 1-frame ttl to expire")
	}
	if !ecs.IsAlive(w, long) {
		t.Fatalf("expected 2-frame ttl to survive one tick")
	}
	sys.Update(w)
	if ecs.IsAlive(w, long) {
		t.Fatalf("expected 2-frame ttl to expire on the second tick")
	}
}
