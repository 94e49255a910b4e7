package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func TestLoadYAML(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want config
	}{
		{
			name: "empty",
			doc:  "",
			want: config{},
		},
		{
			name: "flat keys",
			doc:  "log-level: debug\nmax_depth: 64\ncomma-numbers: true\n",
			want: config{"log-level": "debug", "max-depth": "64", "comma-numbers": true},
		},
		{
			name: "nested keys",
			doc:  "log:\n  level: trace\n  pretty: false\n",
			want: config{"log-level": "trace", "log-pretty": false},
		},
		{
			name: "sequences",
			doc:  "binop: [\"^=50\", \"%=40\"]\npath:\n  - /a\n  - /b\n",
			want: config{"binop": "^=50,%=40", "path": "/a,/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := loadYAML(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.want, r.(config)); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadYAML_Invalid(t *testing.T) {
	if _, err := loadYAML(strings.NewReader("log: [unterminated\n")); err == nil {
		t.Error("expected a decode error")
	}
}

func TestConfig_AppliesToFlags(t *testing.T) {
	var cli struct {
		Lang langConfig `embed:""`
		Log  logConfig  `embed:"" prefix:"log-"`
	}

	r, err := loadYAML(strings.NewReader(
		"max-depth: 12\nbinop: [\"^=50\"]\nlog:\n  level: debug\n  caller: true\n"))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli,
		kong.Resolvers(r),
		cli.Lang.vars(),
		cli.Log.vars(),
		kong.Exit(func(int) { t.Fatal("exit called") }),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--max-depth=20"}); err != nil {
		t.Fatal(err)
	}

	if cli.Lang.MaxDepth != 20 {
		t.Errorf("MaxDepth = %d, want command line value 20", cli.Lang.MaxDepth)
	}

	if diff := cmp.Diff([]string{"^=50"}, cli.Lang.Binop); diff != "" {
		t.Errorf("Binop mismatch (-want +got):\n%s", diff)
	}

	if cli.Log.Level != "debug" || !cli.Log.Caller {
		t.Errorf("log config = %+v", cli.Log)
	}
}
