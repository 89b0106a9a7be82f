package entity

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/milk9111/coinpath/common"
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/levels"
	"github.com/milk9111/coinpath/prefabs"
	"golang.org/x/image/colornames"
)

// LevelInfo places a level within the level sequence.
type LevelInfo struct {
	Index  int
	Count  int
	Logger *slog.Logger
}

var (
	defaultWallColor  = colornames.Steelblue
	defaultBackground = colornames.Midnightblue
)

// LoadLevelToWorld builds walls, the agent and its coins for lvl.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, info LevelInfo) error {
	if lvl == nil {
		return fmt.Errorf("load level: nil level")
	}
	logger := info.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tileSize := float64(common.TileSize)
	boundsEntity := ecs.CreateEntity(world)
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:      float64(lvl.Width) * tileSize,
		Height:     float64(lvl.Height) * tileSize,
		Background: defaultBackground,
	}); err != nil {
		return err
	}

	for layerIdx, layer := range lvl.Layers {
		if !lvl.IsPhysicsLayer(layerIdx) {
			continue
		}
		wallColor := color.Color(defaultWallColor)
		if raw := lvl.LayerMeta[layerIdx].Color; raw != "" {
			c, err := prefabs.ParseHexColor(raw)
			if err != nil {
				return fmt.Errorf("layer %d: %w", layerIdx, err)
			}
			wallColor = c
		}
		if err := addMergedTileColliders(world, layer, lvl.Width, lvl.Height, tileSize, wallColor); err != nil {
			return err
		}
	}

	coinSpec, err := prefabs.LoadCoinSpec()
	if err != nil {
		return err
	}
	agentSpec, err := prefabs.LoadAgentSpec()
	if err != nil {
		return err
	}

	coins := 0
	for _, ent := range lvl.Entities {
		if strings.EqualFold(ent.Type, "coin") {
			coins++
		}
	}

	for _, ent := range lvl.Entities {
		x := float64(ent.X)*tileSize + tileSize/2
		y := float64(ent.Y)*tileSize + tileSize/2
		switch strings.ToLower(ent.Type) {
		case "coin":
			if _, err := NewCoinAt(world, coinSpec, x, y); err != nil {
				return err
			}
		case "agent":
			tuning, err := RunTuningScript(agentSpec.Script, TuningInput{
				BaseSpeed:     agentSpec.Speed,
				BaseTurnRate:  agentSpec.TurnRate,
				LevelIndex:    info.Index,
				LevelCount:    info.Count,
				WaypointCount: coins,
			})
			if err != nil {
				return err
			}
			facing := propFloat(ent.Props, "facing")
			if _, err := NewAgentAt(world, agentSpec, tuning, x, y, facing); err != nil {
				return err
			}
		default:
			logger.Warn("unknown level entity", "type", ent.Type, "x", ent.X, "y", ent.Y)
		}
	}

	return nil
}

func propFloat(props map[string]interface{}, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// addMergedTileColliders greedily merges solid tiles into rectangles so a
// wall run becomes one static box instead of one per tile.
func addMergedTileColliders(world *ecs.World, layer []int, width, height int, tileSize float64, wallColor color.Color) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	solid := func(idx int) bool { return idx < len(layer) && !visited[idx] && layer[idx] > 0 }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(index(x, y)) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && solid(index(x2, y)); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !solid(index(x2, y2)) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			w := float64(maxW) * tileSize
			h := float64(maxH) * tileSize
			e := ecs.CreateEntity(world)
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X: float64(x) * tileSize,
				Y: float64(y) * tileSize,
			}); err != nil {
				return err
			}
			if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Role:     component.BodyRoleWall,
				Width:    w,
				Height:   h,
				Friction: 0.2,
				Static:   true,
			}); err != nil {
				return err
			}
			if err := ecs.Add(world, e, component.WallComponent.Kind(), &component.Wall{Width: w, Height: h, Color: wallColor}); err != nil {
				return err
			}
			if err := ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 0}); err != nil {
				return err
			}
		}
	}

	return nil
}
