package component

import "image/color"

type PathPoint struct {
	X float64
	Y float64
}

// PathLine is a world-space polyline drawn through Points in order.
type PathLine struct {
	Points    []PathPoint
	Width     float32
	Color     color.Color
	AntiAlias bool
}

var PathLineComponent = NewComponent[PathLine]()
