package component

import "image/color"

// Wall is a solid rectangle merged from physics tiles.
type Wall struct {
	Width  float64
	Height float64
	Color  color.Color
}

var WallComponent = NewComponent[Wall]()
