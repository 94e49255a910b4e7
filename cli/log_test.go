package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/kaleido/log"
)

func TestLogConfig_Scan(t *testing.T) {
	defer log.SetDefault(log.Default())

	tests := []struct {
		name string
		args []string
		init logConfig
		want logConfig
	}{
		{
			name: "separate operands",
			args: []string{"--log-level", "debug", "--log-format", "json", "parse"},
			want: logConfig{Level: "debug", Format: "json"},
		},
		{
			name: "assigned operands",
			args: []string{"parse", "--log-level=trace", "x.ks"},
			want: logConfig{Level: "trace"},
		},
		{
			name: "booleans",
			args: []string{"--log-caller", "--no-log-pretty"},
			init: logConfig{Pretty: true},
			want: logConfig{Caller: true, Pretty: false},
		},
		{
			name: "assigned booleans",
			args: []string{"--log-pretty=false", "--no-log-caller=false"},
			init: logConfig{Pretty: true},
			want: logConfig{Caller: true, Pretty: false},
		},
		{
			name: "invalid boolean ignored",
			args: []string{"--log-pretty=maybe"},
			init: logConfig{Pretty: true},
			want: logConfig{Pretty: true},
		},
		{
			name: "missing operand",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Level: "", Caller: true},
		},
		{
			name: "stops at double dash",
			args: []string{"--", "--log-level=debug"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.init
			got.scan(tt.args)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
