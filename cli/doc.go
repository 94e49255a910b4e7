// Package cli contains the command line interface for kaleido.
//
// # Usage
//
// Without a command, kaleido starts the interactive loop, reading one
// top-level item at a time and reporting what was parsed:
//
//	kaleido
//	ready> def f(x) x*2;
//	Parsed a function definition.
//
// The remaining commands operate on source files, or stdin when none are
// named:
//
//	kaleido parse --format=yaml prog.ks
//	kaleido tokens prog.ks
//	kaleido prec --binop '^=50'
//	kaleido init
//
// # Language Options
//
//   - --binop OP=PREC: Define or override a binary operator (repeatable)
//   - --no-default-binops: Start from an empty operator table
//   - --max-depth: Limit expression nesting
//   - --comma-numbers: Continue numeric literals with ',' instead of '.'
//   - --path: Directories searched for relative source names
//
// Relative source names are also searched in the directories listed by the
// KALEIDO_PATH environment variable, after those given with --path.
//
// # Configuration
//
// Flag defaults are read from config.yaml (or config.json) in the user
// configuration directory. Keys are flag names; nested maps are joined with
// '-', so the following are equivalent:
//
//	log-level: debug
//	log:
//	  level: debug
//
// The init command writes the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
// Such a build adds:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/kaleido/pprof)
package cli
