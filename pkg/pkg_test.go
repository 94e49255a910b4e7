package pkg

import (
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "kaleido" {
		t.Errorf("expected Name to be %q, got %q", "kaleido", Name)
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := EnvPrefix(); got != "KALEIDO_" {
		t.Errorf("expected env prefix %q, got %q", "KALEIDO_", got)
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

	if v := Version(); !semver.MatchString(v) {
		t.Errorf("embedded version %q is not a semantic version", v)
	}
}
