// Command simulate plays the level sequence headlessly and reports how many
// ticks the agent needs to clear each level. It is handy for checking that
// edited levels and tuning scripts are still completable.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/milk9111/coinpath/common"
	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/ecs/system"
	"github.com/milk9111/coinpath/levels"
)

func main() {
	levelName := flag.String("level", "", "level to start on (defaults to the first in the sequence)")
	maxSeconds := flag.Float64("timeout", 120, "simulated seconds to allow per level")
	preview := flag.Bool("preview", false, "print an ASCII preview of each level before running it")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	seq, err := levels.LoadSequence()
	if err != nil {
		logger.Error("load sequence", "err", err)
		os.Exit(1)
	}

	start := 0
	if *levelName != "" {
		if start = seq.Index(*levelName); start < 0 {
			logger.Error("level not in sequence", "level", *levelName)
			os.Exit(1)
		}
	}

	if *preview {
		for i := start; i < seq.Count(); i++ {
			name, _ := seq.Name(i)
			lvl, err := levels.LoadLevelFromFS(name)
			if err != nil {
				logger.Error("load level", "level", name, "err", err)
				os.Exit(1)
			}
			fmt.Printf("%s\n%s\n", name, render(lvl))
		}
	}

	results, err := run(seq, start, int(*maxSeconds*common.TicksPerSecond), logger)
	for _, r := range results {
		fmt.Printf("%-12s %6d ticks  %6.2fs  coins %d\n", r.name, r.ticks, float64(r.ticks)*common.FixedTimestep, r.coins)
	}
	if err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

type result struct {
	name  string
	ticks int
	coins int
}

func run(seq *levels.Sequence, start, maxTicks int, logger *slog.Logger) ([]result, error) {
	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem()
	levelSys := system.NewLevelSystem(seq, start, physics.Reset, logger)
	sched := ecs.NewScheduler(
		system.NewWaypointAgentSystem(logger),
		physics,
		system.NewTriggerSystem(),
		system.NewTTLSystem(),
		levelSys,
	)

	// The first update only loads the level.
	sched.Update(w)
	if err := levelSys.Err(); err != nil {
		return nil, err
	}

	var results []result
	for {
		st := currentState(w)
		name, _ := seq.Name(st.Index)
		coins := countCoins(w)
		ticks := 0
		for {
			if ticks >= maxTicks {
				return results, fmt.Errorf("%s not cleared after %d ticks, %d coins left", name, ticks, countCoins(w))
			}
			sched.Update(w)
			ticks++
			if err := levelSys.Err(); err != nil {
				return results, err
			}
			if currentState(w).Sequence != st.Sequence || finished(w) {
				break
			}
		}
		results = append(results, result{name: name, ticks: ticks, coins: coins})
		if finished(w) {
			return results, nil
		}
	}
}

func currentState(w *ecs.World) component.LevelState {
	e, ok := ecs.First(w, component.LevelStateComponent.Kind())
	if !ok {
		return component.LevelState{}
	}
	st, _ := ecs.Get(w, e, component.LevelStateComponent.Kind())
	return *st
}

// finished reports whether the last level of the sequence has no waypoints left.
func finished(w *ecs.World) bool {
	st := currentState(w)
	if st.Index < st.Count-1 {
		return false
	}
	e, ok := ecs.First(w, component.WaypointAgentComponent.Kind())
	if !ok {
		return false
	}
	wa, _ := ecs.Get(w, e, component.WaypointAgentComponent.Kind())
	return wa.Agent != nil && wa.Agent.Started() && wa.Agent.Len() == 0
}

func countCoins(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.TagComponent.Kind(), func(_ ecs.Entity, t *component.Tag) {
		if t.Name == "Coin" {
			n++
		}
	})
	return n
}

func render(lvl *levels.Level) string {
	grid := make([][]byte, lvl.Height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", lvl.Width))
		for x := 0; x < lvl.Width; x++ {
			for layer := range lvl.Layers {
				if lvl.IsPhysicsLayer(layer) && lvl.Tile(layer, x, y) > 0 {
					grid[y][x] = '#'
				}
			}
		}
	}
	for _, e := range lvl.Entities {
		if e.Y < 0 || e.Y >= lvl.Height || e.X < 0 || e.X >= lvl.Width {
			continue
		}
		switch e.Type {
		case "agent":
			grid[e.Y][e.X] = 'A'
		case "coin":
			grid[e.Y][e.X] = 'o'
		}
	}
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
