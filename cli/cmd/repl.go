package cmd

import (
	"context"
	"os"

	"github.com/ardnew/kaleido/cli/cmd/repl"
	"github.com/ardnew/kaleido/log"
)

// Repl runs the interactive driving loop.
type Repl struct {
	Plain   bool `help:"Use the line-oriented loop even on a terminal"`
	History bool `default:"true" help:"Persist input history in the cache directory" negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var cacheDir string

	if ktx := kongContextFrom(ctx); ktx != nil && r.History {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, repl.Config{
		In:       os.Stdin,
		Out:      os.Stderr,
		Logger:   log.Default(),
		CacheDir: cacheDir,
		Options:  settingsFrom(ctx).Options(""),
		Plain:    r.Plain,
	})
}
