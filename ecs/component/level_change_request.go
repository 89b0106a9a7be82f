package component

// LevelChangeRequest is a one-shot request emitted by gameplay code to ask the
// LevelSystem to load the level at Index of the level sequence.
//
// Systems only emit data; the LevelSystem owns IO and world reinitialization.
type LevelChangeRequest struct {
	Index int
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()
