package component

import "image/color"

// Sprite is a procedurally drawn disc centred on the transform. Heading adds
// a tick mark along Transform.Rotation.
type Sprite struct {
	Radius  float32
	Fill    color.Color
	Outline color.Color
	Heading bool
}

var SpriteComponent = NewComponent[Sprite]()
