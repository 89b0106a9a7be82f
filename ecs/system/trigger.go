package system

import (
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/waypoint"
)

// TriggerSystem hands physics overlap-begins to waypoint agents, one at a
// time and in the order physics reported them.
type TriggerSystem struct{}

func NewTriggerSystem() *TriggerSystem {
	return &TriggerSystem{}
}

func (s *TriggerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventTriggerEnter {
			continue
		}
		trig, ok := evt.Data.(ecs.TriggerEvent)
		if !ok {
			continue
		}
		wa, ok := ecs.Get(w, trig.Entity, component.WaypointAgentComponent.Kind())
		if !ok || wa.Agent == nil {
			continue
		}
		if !ecs.IsAlive(w, trig.Other) {
			continue
		}

		tag := ""
		if t, ok := ecs.Get(w, trig.Other, component.TagComponent.Kind()); ok {
			tag = t.Name
		}
		wa.Agent.OnTriggerEnter(waypoint.Contact{Tag: tag, Target: ecsTarget{w: w, e: trig.Other}})
	}
}
