package profile

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty selects a temporary directory
	Quiet bool   // suppress the profiler's own log output
}

// Start begins profiling and returns the value that stops it.
// Both Start and Stop are always safe to call; an unknown or empty Mode, or a
// build without the pprof tag, yields a no-op.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// WithMode returns a copy of p profiling the given mode.
func (p Profiler) WithMode(mode string) Profiler {
	p.Mode = mode

	return p
}

// WithPath returns a copy of p writing into path.
func (p Profiler) WithPath(path string) Profiler {
	p.Path = path

	return p
}

// WithQuiet returns a copy of p with its quiet flag set.
func (p Profiler) WithQuiet(quiet bool) Profiler {
	p.Quiet = quiet

	return p
}

type ignore struct{}

func (ignore) Stop() {}
