package component

import "github.com/milk9111/coinpath/waypoint"

// WaypointAgent attaches a waypoint-following brain to an entity. Agent is
// created and started by the WaypointAgentSystem the first tick it sees the
// entity.
type WaypointAgent struct {
	Config waypoint.Config
	Agent  *waypoint.Agent
}

var WaypointAgentComponent = NewComponent[WaypointAgent]()
