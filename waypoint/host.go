package waypoint

import "github.com/go-gl/mathgl/mgl64"

// Target is a non-owning handle to a scene entity the agent can steer toward.
// Implementations must be comparable so the agent can find them again on contact.
type Target interface {
	Position() mgl64.Vec3
}

// Contact is delivered by the host when the agent's trigger volume begins
// overlapping another entity.
type Contact struct {
	Tag    string
	Target Target
}

// Scene is the host's entity set as seen by the agent.
type Scene interface {
	// FindTargets returns every entity carrying tag, in host enumeration order.
	FindTargets(tag string) []Target
	// Destroy tears down the entity behind t. The host may defer the teardown.
	Destroy(t Target)
}

// Body is the rigid-body motion resource driven by the agent.
type Body interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	// MovePosition moves the body toward p through the physics step so collision
	// response still applies.
	MovePosition(p mgl64.Vec3)
	// MoveRotation sets the orientation; the next Rotation call must observe it.
	MoveRotation(q mgl64.Quat)
}

// PathRenderer is a polyline the agent keeps in sync with its remaining path.
type PathRenderer interface {
	SetPointCount(n int)
	SetPoint(i int, p mgl64.Vec3)
}

// LevelSequence is the ordered list of levels the host can load.
type LevelSequence interface {
	CurrentIndex() int
	Count() int
	// Load requests a switch to the level at index. The switch may happen later.
	Load(index int)
}
