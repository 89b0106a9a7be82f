package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinpath/common"
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/waypoint"
)

// WaypointAgentSystem owns the waypoint brains. It starts each agent the
// first tick its entity is seen and then drives one FixedUpdate per tick.
type WaypointAgentSystem struct {
	log *slog.Logger
	dt  float64
}

func NewWaypointAgentSystem(logger *slog.Logger) *WaypointAgentSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &WaypointAgentSystem{log: logger, dt: common.FixedTimestep}
}

func (s *WaypointAgentSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.WaypointAgentComponent.Kind(), func(e ecs.Entity, wa *component.WaypointAgent) {
		if wa.Agent == nil {
			wa.Agent = waypoint.New(wa.Config, waypoint.Resources{
				Body:   &bodyAdapter{w: w, e: e},
				Path:   &pathAdapter{w: w, e: e},
				Levels: worldLevels{w: w},
				Logger: s.log.With("entity", uint64(e)),
			})
			wa.Agent.Start(worldScene{w: w})
		}
		wa.Agent.FixedUpdate(s.dt)
	})
}

// ecsTarget is the waypoint handle for an entity. It is comparable, so the
// agent can match contacts against its list.
type ecsTarget struct {
	w *ecs.World
	e ecs.Entity
}

var _ waypoint.Target = ecsTarget{}

func (t ecsTarget) Position() mgl64.Vec3 {
	tf, ok := ecs.Get(t.w, t.e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{tf.X, tf.Y, 0}
}

func (t ecsTarget) Entity() ecs.Entity { return t.e }

type worldScene struct {
	w *ecs.World
}

func (s worldScene) FindTargets(tag string) []waypoint.Target {
	var out []waypoint.Target
	ecs.ForEach2(s.w, component.TagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Tag, _ *component.Transform) {
		if t.Name == tag {
			out = append(out, ecsTarget{w: s.w, e: e})
		}
	})
	return out
}

// Destroy strips the entity of everything that makes it visible or
// collidable and leaves the actual teardown to the TTL system.
func (s worldScene) Destroy(t waypoint.Target) {
	target, ok := t.(ecsTarget)
	if !ok || !ecs.IsAlive(s.w, target.e) {
		return
	}
	ecs.Remove(s.w, target.e, component.TagComponent.Kind())
	ecs.Remove(s.w, target.e, component.SpriteComponent.Kind())
	ecs.Remove(s.w, target.e, component.PhysicsBodyComponent.Kind())
	_ = ecs.Add(s.w, target.e, component.TTLComponent.Kind(), &component.TTL{Frames: 1})
}

type bodyAdapter struct {
	w *ecs.World
	e ecs.Entity
}

func (b *bodyAdapter) Position() mgl64.Vec3 {
	if pb, ok := ecs.Get(b.w, b.e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		p := pb.Body.Position()
		return mgl64.Vec3{p.X, p.Y, 0}
	}
	if tf, ok := ecs.Get(b.w, b.e, component.TransformComponent.Kind()); ok {
		return mgl64.Vec3{tf.X, tf.Y, 0}
	}
	return mgl64.Vec3{}
}

func (b *bodyAdapter) Rotation() mgl64.Quat {
	tf, ok := ecs.Get(b.w, b.e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.QuatIdent()
	}
	return waypoint.FromYaw(tf.Rotation)
}

func (b *bodyAdapter) MovePosition(p mgl64.Vec3) {
	motion, ok := ecs.Get(b.w, b.e, component.MotionComponent.Kind())
	if !ok {
		_ = ecs.Add(b.w, b.e, component.MotionComponent.Kind(), &component.Motion{TargetX: p.X(), TargetY: p.Y(), Pending: true})
		return
	}
	motion.TargetX = p.X()
	motion.TargetY = p.Y()
	motion.Pending = true
}

func (b *bodyAdapter) MoveRotation(q mgl64.Quat) {
	yaw := waypoint.Yaw(q)
	if tf, ok := ecs.Get(b.w, b.e, component.TransformComponent.Kind()); ok {
		tf.Rotation = yaw
	}
	if pb, ok := ecs.Get(b.w, b.e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetAngle(yaw)
	}
}

type pathAdapter struct {
	w *ecs.World
	e ecs.Entity
}

func (p *pathAdapter) line() *component.PathLine {
	line, ok := ecs.Get(p.w, p.e, component.PathLineComponent.Kind())
	if !ok {
		line = &component.PathLine{}
		_ = ecs.Add(p.w, p.e, component.PathLineComponent.Kind(), line)
	}
	return line
}

func (p *pathAdapter) SetPointCount(n int) {
	line := p.line()
	if n < 0 {
		n = 0
	}
	if cap(line.Points) >= n {
		line.Points = line.Points[:n]
		return
	}
	points := make([]component.PathPoint, n)
	copy(points, line.Points)
	line.Points = points
}

func (p *pathAdapter) SetPoint(i int, pos mgl64.Vec3) {
	line := p.line()
	if i < 0 || i >= len(line.Points) {
		return
	}
	line.Points[i] = component.PathPoint{X: pos.X(), Y: pos.Y()}
}

// worldLevels exposes the loaded LevelState and turns Load into a
// LevelChangeRequest for the level system.
type worldLevels struct {
	w *ecs.World
}

func (l worldLevels) state() *component.LevelState {
	e, ok := ecs.First(l.w, component.LevelStateComponent.Kind())
	if !ok {
		return nil
	}
	st, _ := ecs.Get(l.w, e, component.LevelStateComponent.Kind())
	return st
}

func (l worldLevels) CurrentIndex() int {
	if st := l.state(); st != nil {
		return st.Index
	}
	return 0
}

func (l worldLevels) Count() int {
	if st := l.state(); st != nil {
		return st.Count
	}
	return 0
}

func (l worldLevels) Load(index int) {
	if e, ok := ecs.First(l.w, component.LevelChangeRequestComponent.Kind()); ok {
		if req, ok := ecs.Get(l.w, e, component.LevelChangeRequestComponent.Kind()); ok {
			req.Index = index
			return
		}
	}
	e := ecs.CreateEntity(l.w)
	_ = ecs.Add(l.w, e, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{Index: index})
}
