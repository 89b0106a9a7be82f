package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/coinpath/common"
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/ecs/system"
	"github.com/milk9111/coinpath/levels"
	"github.com/milk9111/coinpath/prefabs"
	"golang.design/x/clipboard"
)

type GameConfig struct {
	LevelName string
	Debug     bool
	Logger    *slog.Logger
}

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	levels    *system.LevelSystem
	render    *system.RenderSystem

	pauseUI     *ebitenui.UI
	watcher     *prefabs.Watcher
	clipboardOK bool
	log         *slog.Logger
}

func NewGame(cfg GameConfig) (*Game, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seq, err := levels.LoadSequence()
	if err != nil {
		return nil, err
	}
	start := resolveStartLevel(seq, cfg.LevelName, logger)

	physics := system.NewPhysicsSystem()
	levelSys := system.NewLevelSystem(seq, start, physics.Reset, logger)

	g := &Game{
		debug:   cfg.Debug,
		world:   ecs.NewWorld(),
		physics: physics,
		levels:  levelSys,
		render:  system.NewRenderSystem(),
		log:     logger,
	}
	g.scheduler = ecs.NewScheduler(
		system.NewWaypointAgentSystem(logger),
		physics,
		system.NewTriggerSystem(),
		system.NewTTLSystem(),
		levelSys,
	)
	g.pauseUI = NewPauseUI(g)

	if cfg.Debug {
		g.watcher = startWatcher(logger)
		if err := clipboard.Init(); err != nil {
			logger.Warn("clipboard unavailable", "err", err)
		} else {
			g.clipboardOK = true
		}
	}

	return g, nil
}

// resolveStartLevel maps a -level flag to a sequence index. Unknown names
// fall back to the first level.
func resolveStartLevel(seq *levels.Sequence, name string, logger *slog.Logger) int {
	if name == "" {
		return 0
	}
	idx := seq.Index(name)
	if idx < 0 {
		logger.Warn("level not in sequence, starting from the first level", "level", name)
		return 0
	}
	return idx
}

func startWatcher(logger *slog.Logger) *prefabs.Watcher {
	var dirs []string
	for _, dir := range []string{prefabs.Dir, levels.Dir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		logger.Warn("hot reload disabled", "err", err)
		return nil
	}
	logger.Debug("watching for prefab changes", "dirs", dirs)
	return w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) requestReload() {
	e := ecs.CreateEntity(g.world)
	_ = ecs.Add(g.world, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{})
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info("reloading after change", "path", path)
			changed = true
		case err := <-g.watcher.Errors:
			if err != nil {
				g.log.Warn("prefab watcher", "err", err)
			}
		default:
			if changed {
				g.requestReload()
			}
			return
		}
	}
}

func (g *Game) copyPath() {
	text := system.PathText(g.world)
	if !g.clipboardOK || text == "" {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	g.log.Info("copied agent path to clipboard")
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.requestReload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyPath()
	}

	g.frames++
	g.scheduler.Update(g.world)
	if err := g.levels.Err(); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	ebitenutil.DebugPrint(screen, g.hud())

	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		system.DrawAgentDebug(g.world, screen)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hud() string {
	level := "-"
	if e, ok := ecs.First(g.world, component.LevelStateComponent.Kind()); ok {
		if st, ok := ecs.Get(g.world, e, component.LevelStateComponent.Kind()); ok {
			level = fmt.Sprintf("%s (%d/%d)", st.Name, st.Index+1, st.Count)
		}
	}
	left, index := 0, 0
	if e, ok := ecs.First(g.world, component.WaypointAgentComponent.Kind()); ok {
		if wa, ok := ecs.Get(g.world, e, component.WaypointAgentComponent.Kind()); ok && wa.Agent != nil {
			left = wa.Agent.Len()
			index = wa.Agent.CurrentIndex()
		}
	}
	return fmt.Sprintf("Level: %s    Coins: %d    Target: %d    FPS: %.0f", level, left, index, ebiten.ActualFPS())
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
