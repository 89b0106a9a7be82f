package component

// TTL is a frame-based time-to-live. The TTLSystem destroys the entity once
// Frames reaches zero, which gives other systems a tick to let go of it.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
