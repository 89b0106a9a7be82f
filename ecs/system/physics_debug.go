package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/waypoint"
	"github.com/samber/lo"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawPhysicsDebug outlines every shape in space on top of the scene.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	bounds := screen.Bounds()
	offX, offY := Offset(w, bounds.Dx(), bounds.Dy())
	drawer := &physicsDebugDrawer{screen: screen, offX: offX, offY: offY}
	cp.DrawSpace(space, drawer)
}

// DrawAgentDebug prints each agent's remaining waypoints and draws a line to
// its current target.
func DrawAgentDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	bounds := screen.Bounds()
	offX, offY := Offset(w, bounds.Dx(), bounds.Dy())

	for i, info := range collectAgentDebug(w) {
		if info.hasTarget {
			vector.StrokeLine(screen,
				float32(info.pos.X()+offX), float32(info.pos.Y()+offY),
				float32(info.target.X()+offX), float32(info.target.Y()+offY),
				1, color.NRGBA{R: 255, G: 80, B: 80, A: 200}, true)
		}
		ebitenutil.DebugPrintAt(screen, info.text, 10, 40+i*80)
	}
}

type agentDebug struct {
	pos       mgl64.Vec3
	target    mgl64.Vec3
	hasTarget bool
	text      string
}

func collectAgentDebug(w *ecs.World) []agentDebug {
	var out []agentDebug
	ecs.ForEach3(w, component.AgentTagComponent.Kind(), component.WaypointAgentComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.AgentTag, wa *component.WaypointAgent, t *component.Transform) {
		if wa.Agent == nil {
			return
		}
		info := agentDebug{pos: mgl64.Vec3{t.X, t.Y, 0}}
		label := "none"
		if cur, ok := wa.Agent.Current(); ok {
			info.target = cur.Position()
			info.hasTarget = true
			label = fmt.Sprintf("%.0f,%.0f", info.target.X(), info.target.Y())
		}
		cfg := wa.Agent.Config()
		info.text = fmt.Sprintf("Waypoints: %d\nCurrent: %d (%s)\nHeading: %.1f\nSpeed: %.1f Turn: %.2f",
			wa.Agent.Len(), wa.Agent.CurrentIndex(), label, t.Rotation*180/math.Pi, cfg.Speed, cfg.TurnRate)
		out = append(out, info)
	})
	return out
}

// PathText renders the agent's remaining path as one "x,y" pair per line.
func PathText(w *ecs.World) string {
	e, ok := ecs.First(w, component.WaypointAgentComponent.Kind())
	if !ok {
		return ""
	}
	wa, ok := ecs.Get(w, e, component.WaypointAgentComponent.Kind())
	if !ok || wa.Agent == nil {
		return ""
	}
	current := wa.Agent.CurrentIndex()
	lines := lo.Map(wa.Agent.Waypoints(), func(t waypoint.Target, i int) string {
		p := t.Position()
		marker := " "
		if i == current {
			marker = ">"
		}
		return fmt.Sprintf("%s%d %.1f,%.1f", marker, i, p.X(), p.Y())
	})
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	offX   float64
	offY   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return cp.FColor{R: 1, G: 0.8, B: 0.1, A: 0.9}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	vector.StrokeLine(d.screen,
		float32(a.X+d.offX), float32(a.Y+d.offY),
		float32(b.X+d.offX), float32(b.Y+d.offY),
		1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
