package entity

import (
	"math"

	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/prefabs"
	"github.com/milk9111/coinpath/waypoint"
	"golang.org/x/image/colornames"
)

// NewAgentAt spawns the waypoint follower centred on (x, y), facing the given
// heading in degrees.
func NewAgentAt(w *ecs.World, spec *prefabs.AgentSpec, tuning Tuning, x, y, facingDegrees float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.AgentTagComponent.Kind(), &component.AgentTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        x,
		Y:        y,
		Rotation: facingDegrees * math.Pi / 180,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Role:       component.BodyRoleAgent,
		Radius:     spec.Collider.Radius,
		Mass:       spec.Collider.Mass,
		Friction:   spec.Collider.Friction,
		Elasticity: spec.Collider.Elasticity,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{TargetX: x, TargetY: y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Radius:  float32(spec.Sprite.Radius),
		Fill:    spec.Sprite.Color.Or(colornames.Turquoise),
		Outline: spec.Sprite.Outline.Or(colornames.Darkslategray),
		Heading: true,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Sprite.RenderLayer}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PathLineComponent.Kind(), &component.PathLine{
		Width:     spec.Path.Width,
		Color:     spec.Path.Color.Or(colornames.White),
		AntiAlias: spec.Path.AntiAlias,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.WaypointAgentComponent.Kind(), &component.WaypointAgent{
		Config: waypoint.Config{
			Speed:        tuning.Speed,
			TurnRate:     tuning.TurnRate,
			Tag:          spec.Tag,
			AlignDegrees: spec.AlignDegrees,
		},
	}); err != nil {
		return 0, err
	}

	return e, nil
}
