package component

// Tag is a free-form label that gameplay code looks entities up by.
type Tag struct {
	Name string
}

var TagComponent = NewComponent[Tag]()

type AgentTag struct{}

var AgentTagComponent = NewComponent[AgentTag]()
