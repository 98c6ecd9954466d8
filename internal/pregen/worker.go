package pregen

// Worker is a background job whose status can be polled over the API.
type Worker interface {
	StartWork()
	Result() interface{}
	Progress() float64
	Done() bool
	Error() error
}
