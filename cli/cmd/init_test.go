package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

type initCLI struct {
	Verbose bool     `name:"verbose"`
	Output  string   `name:"output"`
	Empty   string   `name:"empty"`
	Count   int      `name:"count"`
	Binop   []string `name:"binop"`
	Secret  string   `hidden:""      name:"secret"`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInit_WritesFlagValues(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "config.yaml")

	ctx := initContext(t, confPath,
		"--verbose", "--output=out.txt", "--count=5", "--binop=^=50", "--secret=x")

	if err := (&Init{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	type config struct {
		Output  string   `yaml:"output"`
		Binop   []string `yaml:"binop"`
		Count   int      `yaml:"count"`
		Verbose bool     `yaml:"verbose"`
	}

	var got config
	if err := yaml.UnmarshalWithOptions(data, &got, yaml.Strict()); err != nil {
		t.Fatalf("invalid YAML %q: %v", data, err)
	}

	want := config{Output: "out.txt", Binop: []string{"^=50"}, Count: 5, Verbose: true}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestInit_Force(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := initContext(t, confPath, "--count=1")

	err := (&Init{}).Run(ctx)
	if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, ErrFileExists) {
		t.Errorf("error = %v, want ErrWriteConfig wrapping ErrFileExists", err)
	}

	if err := (&Init{Force: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "count: 1\nverbose: false\n" {
		t.Errorf("config = %q", data)
	}
}

func TestConfigValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"", nil},
		{"x", "x"},
		{[]string{}, nil},
		{[]string{"a"}, []string{"a"}},
		{false, false},
		{3, 3},
		{struct{ A int }{1}, "{1}"},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, configValue(tt.in)); diff != "" {
			t.Errorf("configValue(%#v) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
