package component

import "github.com/jakecoffman/cp"

// BodyRole selects the collision type a body registers with.
type BodyRole string

const (
	BodyRoleAgent    BodyRole = "agent"
	BodyRoleWaypoint BodyRole = "waypoint"
	BodyRoleWall     BodyRole = "wall"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Radius > 0 builds a circle centred on the transform, otherwise a
// Width x Height box whose top-left corner sits on the transform.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Role       BodyRole
	Radius     float64
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Sensor     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Motion is a pending kinematic move for a dynamic body. The physics system
// turns it into a velocity for one step so contacts still resolve.
type Motion struct {
	TargetX float64
	TargetY float64
	Pending bool
}

var MotionComponent = NewComponent[Motion]()
