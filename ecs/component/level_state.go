package component

// LevelState describes the loaded level. The LevelSystem keeps exactly one.
type LevelState struct {
	Index int
	Name  string
	Count int
	// Sequence increments on every load, including reloads.
	Sequence uint64
}

var LevelStateComponent = NewComponent[LevelState]()
