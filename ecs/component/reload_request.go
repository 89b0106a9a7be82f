package component

// ReloadRequest asks the LevelSystem to rebuild the current level from
// scratch (pause menu restart, prefab hot reload).
type ReloadRequest struct{}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
