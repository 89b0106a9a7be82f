package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	TileSize = 32

	// TicksPerSecond is the fixed simulation rate; ebiten calls Update this often.
	TicksPerSecond = 60
	FixedTimestep  = 1.0 / TicksPerSecond
)
