// Package waypoint implements an agent that steers through an ordered list of
// tagged scene entities, collecting each one on contact and asking the host
// for the next level once nothing is left.
//
// The agent never loops or blocks. The host calls Start once, FixedUpdate on
// every physics tick and OnTriggerEnter for each overlap-begin, strictly one
// at a time.
package waypoint

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

const (
	DefaultSpeed        = 5.0
	DefaultTurnRate     = 5.0
	DefaultTag          = "Coin"
	DefaultAlignDegrees = 1.0
)

// Config tunes an agent. Speed and TurnRate are taken as given, so zero
// keeps the agent still or unable to turn; negative values count as zero.
// An empty Tag or a non-positive AlignDegrees falls back to the default.
type Config struct {
	Speed        float64
	TurnRate     float64
	Tag          string
	AlignDegrees float64
}

// DefaultConfig is the configuration prefabs start from before overrides.
func DefaultConfig() Config {
	return Config{
		Speed:        DefaultSpeed,
		TurnRate:     DefaultTurnRate,
		Tag:          DefaultTag,
		AlignDegrees: DefaultAlignDegrees,
	}
}

func (c Config) withDefaults() Config {
	c.Speed = max(c.Speed, 0)
	c.TurnRate = max(c.TurnRate, 0)
	if c.Tag == "" {
		c.Tag = DefaultTag
	}
	if c.AlignDegrees <= 0 {
		c.AlignDegrees = DefaultAlignDegrees
	}
	return c
}

// Resources are the host facilities an agent drives.
type Resources struct {
	Body   Body
	Path   PathRenderer
	Levels LevelSequence
	Logger *slog.Logger
}

type Agent struct {
	cfg    Config
	body   Body
	path   PathRenderer
	levels LevelSequence
	log    *slog.Logger

	scene     Scene
	waypoints []Target
	current   int
	started   bool
}

func New(cfg Config, res Resources) *Agent {
	logger := res.Logger
	if logger == nil {
		logger = slog.Default()
	}
	path := res.Path
	if path == nil {
		path = nopPath{}
	}
	return &Agent{
		cfg:    cfg.withDefaults(),
		body:   res.Body,
		path:   path,
		levels: res.Levels,
		log:    logger,
	}
}

// Config returns the effective configuration.
func (a *Agent) Config() Config { return a.cfg }

// Start captures the tagged entities of scene. Calling it again is a no-op.
func (a *Agent) Start(scene Scene) {
	if a == nil || a.started {
		return
	}
	a.started = true
	a.scene = scene

	if scene != nil {
		a.waypoints = append(a.waypoints, scene.FindTargets(a.cfg.Tag)...)
	}
	a.current = 0
	a.syncPath()

	if len(a.waypoints) == 0 {
		a.log.Error("no waypoints found, make sure waypoints are tagged", "tag", a.cfg.Tag)
	}
}

// FixedUpdate advances the agent by one physics tick of length dt seconds.
func (a *Agent) FixedUpdate(dt float64) {
	if a == nil {
		return
	}
	if len(a.waypoints) == 0 {
		a.loadNextLevel()
		return
	}
	if a.body == nil {
		return
	}

	a.rotateTowardsWaypoint(dt)
	a.moveForward(dt)
}

// OnTriggerEnter handles the start of an overlap with another entity.
func (a *Agent) OnTriggerEnter(c Contact) {
	if a == nil || c.Tag != a.cfg.Tag || c.Target == nil {
		return
	}
	a.removeWaypoint(c.Target)
}

func (a *Agent) rotateTowardsWaypoint(dt float64) {
	if a.current < 0 || a.current >= len(a.waypoints) {
		return
	}

	dir := a.waypoints[a.current].Position().Sub(a.body.Position())
	target, ok := LookRotation(dir)
	if !ok {
		// Sitting on the waypoint: whatever we face already points at it.
		target = a.body.Rotation()
	}

	blend := lo.Clamp(a.cfg.TurnRate*dt, 0, 1)
	a.body.MoveRotation(mgl64.QuatSlerp(a.body.Rotation(), target, blend))

	if Angle(a.body.Rotation(), target) < a.cfg.AlignDegrees {
		a.current = lo.Clamp(a.current+1, 0, len(a.waypoints)-1)
		a.syncPath()
	}
}

func (a *Agent) moveForward(dt float64) {
	step := Forward(a.body.Rotation()).Mul(a.cfg.Speed * dt)
	a.body.MovePosition(a.body.Position().Add(step))
}

func (a *Agent) removeWaypoint(t Target) {
	if i := lo.IndexOf(a.waypoints, t); i >= 0 {
		a.waypoints = append(a.waypoints[:i], a.waypoints[i+1:]...)
	}
	if a.scene != nil {
		a.scene.Destroy(t)
	}

	if len(a.waypoints) == 0 {
		a.current = 0
	} else {
		a.current = lo.Clamp(a.current, 0, len(a.waypoints)-1)
	}
	a.syncPath()
}

func (a *Agent) syncPath() {
	a.path.SetPointCount(len(a.waypoints) + 1)
	if a.body != nil {
		a.path.SetPoint(0, a.body.Position())
	}
	for i, wp := range a.waypoints {
		a.path.SetPoint(i+1, wp.Position())
	}
}

func (a *Agent) loadNextLevel() {
	if a.levels == nil {
		a.log.Warn("no level sequence attached, cannot load next level")
		return
	}
	next := a.levels.CurrentIndex() + 1
	if next < a.levels.Count() {
		a.levels.Load(next)
		return
	}
	a.log.Warn("no next level available, check the level sequence", "current", a.levels.CurrentIndex(), "count", a.levels.Count())
}

// Waypoints returns a copy of the remaining waypoints in path order.
func (a *Agent) Waypoints() []Target {
	return append([]Target(nil), a.waypoints...)
}

// Len is the number of remaining waypoints.
func (a *Agent) Len() int { return len(a.waypoints) }

// CurrentIndex is the index of the waypoint the agent is steering toward.
func (a *Agent) CurrentIndex() int { return a.current }

// Current returns the waypoint the agent is steering toward.
func (a *Agent) Current() (Target, bool) {
	if a.current < 0 || a.current >= len(a.waypoints) {
		return nil, false
	}
	return a.waypoints[a.current], true
}

func (a *Agent) Started() bool { return a.started }

type nopPath struct{}

func (nopPath) SetPointCount(int)        {}
func (nopPath) SetPoint(int, mgl64.Vec3) {}
