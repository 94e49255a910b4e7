// Package profile provides optional runtime profiling for kaleido.
//
// Profiling is built on [github.com/pkg/profile] and is compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag [Profiler.Start] returns a no-op and [Modes] is empty.
//
// # Modes
//
//   - allocs:    memory allocations
//   - block:     blocking on synchronization primitives
//   - clock:     wall-clock time
//   - cpu:       CPU time
//   - goroutine: goroutine stacks
//   - heap:      live heap
//   - mem:       memory (sampled)
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/kaleido"}
//	defer p.Start().Stop()
//
// Each mode writes its own file (cpu.pprof, mem.pprof, ...) into Path.
// Analyze it with:
//
//	go tool pprof -http=: /tmp/kaleido/cpu.pprof
//
// With the tag, the package also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
