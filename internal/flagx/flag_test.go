package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", "http://localhost:8080", "-x", "ignored"}, []string{"-a"})
	require.Equal(t, []string{"-a", "http://localhost:8080"}, got)
}

func TestFilterArgs_CombinedValue(t *testing.T) {
	got := FilterArgs([]string{"--addr=http://localhost", "-other=1"}, []string{"--addr"})
	require.Equal(t, []string{"--addr=http://localhost"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	got := FilterArgs([]string{"-v", "-a", "x"}, []string{"-v"})
	require.Equal(t, []string{"-v"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "x"}, nil)
	require.Empty(t, got)
}
