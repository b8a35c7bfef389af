package depgraph

// ParseFileEvent is delivered once per successfully loaded file, before the
// file's module is added to the graph.
type ParseFileEvent struct {
	Filename string
	Source   string
}

// AddModuleEvent is delivered once per node added to the graph.
type AddModuleEvent struct {
	ID           string
	Dependencies []string
}

// Observer receives progress notifications from a graph build. Events are
// delivered serially, in discovery order, from the goroutine calling Build.
type Observer interface {
	OnParseFile(ParseFileEvent)
	OnAddModule(AddModuleEvent)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	ParseFile func(ParseFileEvent)
	AddModule func(AddModuleEvent)
}

func (o ObserverFuncs) OnParseFile(e ParseFileEvent) {
	if o.ParseFile != nil {
		o.ParseFile(e)
	}
}

func (o ObserverFuncs) OnAddModule(e AddModuleEvent) {
	if o.AddModule != nil {
		o.AddModule(e)
	}
}

type nopObserver struct{}

func (nopObserver) OnParseFile(ParseFileEvent) {}
func (nopObserver) OnAddModule(AddModuleEvent) {}
