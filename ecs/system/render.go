package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
)

// RenderSystem draws the level centred on the screen: walls first, then path
// lines, then sprites by render layer.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Offset returns the world to screen translation for a screen of the given
// size. Levels smaller than the screen are centred.
func Offset(w *ecs.World, screenW, screenH int) (float64, float64) {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return 0, 0
	}
	b, _ := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	return math.Max(0, (float64(screenW)-b.Width)/2), math.Max(0, (float64(screenH)-b.Height)/2)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	bounds := screen.Bounds()
	offX, offY := Offset(w, bounds.Dx(), bounds.Dy())

	if e, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind()); ok && b.Background != nil {
			vector.FillRect(screen, float32(offX), float32(offY), float32(b.Width), float32(b.Height), b.Background, false)
		}
	}

	ecs.ForEach2(w, component.WallComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, wall *component.Wall, t *component.Transform) {
		if wall.Color == nil {
			return
		}
		vector.FillRect(screen, float32(t.X+offX), float32(t.Y+offY), float32(wall.Width), float32(wall.Height), wall.Color, false)
	})

	ecs.ForEach(w, component.PathLineComponent.Kind(), func(_ ecs.Entity, line *component.PathLine) {
		drawPolyline(screen, line, offX, offY)
	})

	entities := make([]ecs.Entity, 0)
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Sprite, _ *component.Transform) {
		entities = append(entities, e)
	})
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := renderLayer(w, entities[i]), renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		drawSprite(screen, s, float32(t.X+offX), float32(t.Y+offY), t.Rotation)
	}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func drawPolyline(screen *ebiten.Image, line *component.PathLine, offX, offY float64) {
	if len(line.Points) < 2 {
		return
	}
	width := line.Width
	if width <= 0 {
		width = 1
	}
	clr := line.Color
	if clr == nil {
		clr = color.White
	}
	for i := 1; i < len(line.Points); i++ {
		a, b := line.Points[i-1], line.Points[i]
		vector.StrokeLine(screen, float32(a.X+offX), float32(a.Y+offY), float32(b.X+offX), float32(b.Y+offY), width, clr, line.AntiAlias)
	}
}

func drawSprite(screen *ebiten.Image, s *component.Sprite, x, y float32, rotation float64) {
	if s.Radius <= 0 {
		return
	}
	if s.Fill != nil {
		vector.FillCircle(screen, x, y, s.Radius, s.Fill, true)
	}
	if s.Outline != nil {
		vector.StrokeCircle(screen, x, y, s.Radius, 2, s.Outline, true)
		if s.Heading {
			hx := x + s.Radius*float32(math.Cos(rotation))
			hy := y + s.Radius*float32(math.Sin(rotation))
			vector.StrokeLine(screen, x, y, hx, hy, 2, s.Outline, true)
		}
	}
}
