package system

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/coinpath/ecs"
	"github.com/milk9111/coinpath/ecs/component"
	"github.com/milk9111/coinpath/ecs/entity"
	"github.com/milk9111/coinpath/levels"
)

// LevelSystem owns the level sequence. It performs the initial load and then
// rebuilds the world whenever a ReloadRequest or LevelChangeRequest shows up.
// Requests are only consumed here, at the end of a tick.
type LevelSystem struct {
	seq          *levels.Sequence
	index        int
	physicsReset func()
	log          *slog.Logger

	initialized  bool
	loadSequence uint64
	err          error
}

func NewLevelSystem(seq *levels.Sequence, startIndex int, physicsReset func(), logger *slog.Logger) *LevelSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &LevelSystem{
		seq:          seq,
		index:        startIndex,
		physicsReset: physicsReset,
		log:          logger,
	}
}

// Err is the load failure that stopped the system, if any.
func (l *LevelSystem) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

func (l *LevelSystem) Index() int {
	if l == nil {
		return 0
	}
	return l.index
}

func (l *LevelSystem) Update(w *ecs.World) {
	if l == nil || w == nil || l.err != nil {
		return
	}

	if !l.initialized {
		l.initialized = true
		l.err = l.reloadWorld(w)
		return
	}

	if _, ok := ecs.First(w, component.ReloadRequestComponent.Kind()); ok {
		l.err = l.reloadWorld(w)
		return
	}

	if req, ok := l.firstLevelChangeRequest(w); ok {
		ecs.ForEach(w, component.LevelChangeRequestComponent.Kind(), func(e ecs.Entity, _ *component.LevelChangeRequest) {
			ecs.DestroyEntity(w, e)
		})
		if req.Index < 0 || req.Index >= l.seq.Count() {
			l.log.Warn("ignoring level change outside the sequence", "index", req.Index, "count", l.seq.Count())
			return
		}
		l.index = req.Index
		l.err = l.reloadWorld(w)
	}
}

func (l *LevelSystem) firstLevelChangeRequest(w *ecs.World) (component.LevelChangeRequest, bool) {
	ent, ok := ecs.First(w, component.LevelChangeRequestComponent.Kind())
	if !ok {
		return component.LevelChangeRequest{}, false
	}
	req, ok := ecs.Get(w, ent, component.LevelChangeRequestComponent.Kind())
	if !ok || req == nil {
		return component.LevelChangeRequest{}, false
	}
	return *req, true
}

func (l *LevelSystem) reloadWorld(w *ecs.World) error {
	w.Clear()
	if l.physicsReset != nil {
		l.physicsReset()
	}

	name, ok := l.seq.Name(l.index)
	if !ok {
		return fmt.Errorf("level index %d outside sequence of %d", l.index, l.seq.Count())
	}

	level, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return fmt.Errorf("load level %q: %w", name, err)
	}

	if err := entity.LoadLevelToWorld(w, level, entity.LevelInfo{
		Index:  l.index,
		Count:  l.seq.Count(),
		Logger: l.log,
	}); err != nil {
		return fmt.Errorf("build level %q: %w", name, err)
	}

	l.loadSequence++
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.LevelStateComponent.Kind(), &component.LevelState{
		Index:    l.index,
		Name:     name,
		Count:    l.seq.Count(),
		Sequence: l.loadSequence,
	}); err != nil {
		return err
	}

	l.log.Info("level loaded", "name", name, "index", l.index, "count", l.seq.Count())
	return nil
}
