//go:build pprof

package profile

import "github.com/pkg/profile"

// option adds one setting to a profile.Start call.
type option func([]func(*profile.Profile)) []func(*profile.Profile)

func options(opts ...option) []func(*profile.Profile) {
	var out []func(*profile.Profile)

	for _, opt := range opts {
		out = opt(out)
	}

	return out
}

func withMode(m string) option {
	return func(o []func(*profile.Profile)) []func(*profile.Profile) {
		if fn, ok := modes[m]; ok {
			o = append(o, fn)
		}

		return o
	}
}

func withPath(p string) option {
	return func(o []func(*profile.Profile)) []func(*profile.Profile) {
		if p != "" {
			o = append(o, profile.ProfilePath(p))
		}

		return o
	}
}

func withQuiet(v bool) option {
	return func(o []func(*profile.Profile)) []func(*profile.Profile) {
		if v {
			o = append(o, profile.Quiet)
		}

		return o
	}
}

// withNoShutdownHook leaves signal handling to the caller's context.
func withNoShutdownHook() option {
	return func(o []func(*profile.Profile)) []func(*profile.Profile) {
		return append(o, profile.NoShutdownHook)
	}
}
