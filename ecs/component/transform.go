package component

// Transform places an entity in world space (pixels). Rotation is the heading
// in radians, 0 facing +X, matching Chipmunk body angles.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
