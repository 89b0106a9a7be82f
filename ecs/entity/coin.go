package entity

import (
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/prefabs"
	"golang.org/x/image/colornames"
)

// NewCoinAt spawns a collectible waypoint: a static sensor disc the agent
// passes through.
func NewCoinAt(w *ecs.World, spec *prefabs.CoinSpec, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: spec.Tag}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Role:   component.BodyRoleWaypoint,
		Radius: spec.Collider.Radius,
		Static: true,
		Sensor: true,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Radius:  float32(spec.Sprite.Radius),
		Fill:    spec.Sprite.Color.Or(colornames.Gold),
		Outline: spec.Sprite.Outline.Or(colornames.Darkgoldenrod),
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Sprite.RenderLayer}); err != nil {
		return 0, err
	}

	return e, nil
}
