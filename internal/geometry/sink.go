package geometry

// Sink receives finished objects from a generator. It replaces the host
// editor's implicit display hook: callers that want results displayed or
// captured inject a Sink explicitly, callers that don't pass nil.
type Sink interface {
	Show(name string, program *Program)
	ShowAssembly(name string, assembly *Assembly)
}

// SinkFunc adapts two functions to the Sink interface. Either may be nil.
type SinkFunc struct {
	Programs   func(name string, program *Program)
	Assemblies func(name string, assembly *Assembly)
}

func (s SinkFunc) Show(name string, program *Program) {
	if s.Programs != nil {
		s.Programs(name, program)
	}
}

func (s SinkFunc) ShowAssembly(name string, assembly *Assembly) {
	if s.Assemblies != nil {
		s.Assemblies(name, assembly)
	}
}

// Emit sends a program to the sink when one is present
func Emit(sink Sink, name string, program *Program) {
	if sink != nil {
		sink.Show(name, program)
	}
}

// EmitAssembly sends an assembly to the sink when one is present
func EmitAssembly(sink Sink, name string, assembly *Assembly) {
	if sink != nil {
		sink.ShowAssembly(name, assembly)
	}
}
