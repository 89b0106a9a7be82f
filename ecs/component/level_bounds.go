package component

import "image/color"

// LevelBounds is the playable area of the loaded level in world pixels. The
// physics system closes it off with static segments.
type LevelBounds struct {
	Width      float64
	Height     float64
	Background color.Color
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
