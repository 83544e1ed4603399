package pvarray

// PostHandler is notified after every successful change to an Array's contents.
type PostHandler interface {
	PostPut()
}

// PostHandlerFunc adapts a function to a PostHandler.
type PostHandlerFunc func()

// PostPut implements PostHandler.
func (f PostHandlerFunc) PostPut() {
	f()
}
