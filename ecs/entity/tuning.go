package entity

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/coinpath/prefabs"
)

// TuningInput is exposed to the tuning script as globals.
type TuningInput struct {
	BaseSpeed     float64
	BaseTurnRate  float64
	LevelIndex    int
	LevelCount    int
	WaypointCount int
}

type Tuning struct {
	Speed    float64
	TurnRate float64
}

// RunTuningScript runs a prefab script that may override the agent's speed
// and turn_rate. An empty name keeps the base values.
func RunTuningScript(name string, in TuningInput) (Tuning, error) {
	out := Tuning{Speed: in.BaseSpeed, TurnRate: in.BaseTurnRate}
	if name == "" {
		return out, nil
	}

	scriptBytes, err := prefabs.LoadScript(name)
	if err != nil {
		return out, fmt.Errorf("tuning script %s: %w", name, err)
	}

	script := tengo.NewScript(scriptBytes)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	globals := map[string]float64{
		"base_speed":     in.BaseSpeed,
		"base_turn_rate": in.BaseTurnRate,
		"level_index":    float64(in.LevelIndex),
		"level_count":    float64(in.LevelCount),
		"waypoint_count": float64(in.WaypointCount),
	}
	for k, v := range globals {
		if err := script.Add(k, v); err != nil {
			return out, fmt.Errorf("tuning script %s: %w", name, err)
		}
	}

	compiled, err := script.Run()
	if err != nil {
		return out, fmt.Errorf("tuning script %s: %w", name, err)
	}

	if compiled.IsDefined("speed") {
		out.Speed = compiled.Get("speed").Float()
	}
	if compiled.IsDefined("turn_rate") {
		out.TurnRate = compiled.Get("turn_rate").Float()
	}
	return out, nil
}
