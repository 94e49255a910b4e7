package cli

import (
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kaleido/cli/cmd"
	"github.com/ardnew/kaleido/lang"
	"github.com/ardnew/kaleido/pkg"
)

type langConfig struct {
	Binop           []string `help:"Define binary operator OP with precedence PREC (repeatable)" placeholder:"OP=PREC" short:"b"`
	NoDefaultBinops bool     `help:"Start from an empty operator table"`
	MaxDepth        int      `default:"${maxDepth}" help:"Maximum expression nesting depth"`
	CommaNumbers    bool     `help:"Continue numeric literals with ',' instead of '.'"`
	Path            []string `help:"Directories searched for relative source names (searched before ${pathEnv})" type:"path"`
}

func (*langConfig) vars() kong.Vars {
	return kong.Vars{
		"maxDepth": strconv.Itoa(lang.DefaultMaxDepth),
		"pathEnv":  pkg.PathEnv(),
	}
}

func (*langConfig) group() kong.Group {
	return kong.Group{Key: "lang", Title: "Language options"}
}

// settings validates the flags and builds the settings shared by commands.
func (f *langConfig) settings() (cmd.Settings, error) {
	prec := lang.DefaultPrecedence()
	if f.NoDefaultBinops {
		prec = lang.NewPrecedence()
	}

	for _, def := range f.Binop {
		op, p, err := lang.ParseBinaryOperator(def)
		if err != nil {
			return cmd.Settings{}, err
		}

		if err := prec.Set(op, p); err != nil {
			return cmd.Settings{}, err
		}
	}

	return cmd.Settings{
		Precedence:   prec,
		Search:       pkg.SearchPath(f.Path...),
		MaxDepth:     f.MaxDepth,
		CommaNumbers: f.CommaNumbers,
	}, nil
}
