package entrypoint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		output   string
		expected string
	}{
		{"codex-cli 0.39.0\n", "0.39.0"},
		{"v1.2.3", "1.2.3"},
		{"tool version 2.0", "2.0.0"},
		{"codex 1.0.0-beta.2 (build abc)", "1.0.0-beta.2"},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			v, err := ExtractVersion(tt.output)
			require.NoError(t, err)
			require.Equal(t, tt.expected, v.String())
		})
	}
}

func TestExtractVersion_NoVersion(t *testing.T) {
	_, err := ExtractVersion("no digits here")
	require.Error(t, err)
}

func TestCheckMinimum(t *testing.T) {
	v, err := CheckMinimum("codex-cli 0.39.0", "0.20.0")
	require.NoError(t, err)
	require.Equal(t, "0.39.0", v.String())

	_, err = CheckMinimum("codex-cli 0.39.0", "v0.39.0")
	require.NoError(t, err)

	_, err = CheckMinimum("codex-cli 0.19.4", "0.20.0")
	require.Error(t, err)
	require.Contains(t, err.Error(), "older than required")
}

func TestCheckMinimum_EmptyMinimumAlwaysPasses(t *testing.T) {
	v, err := CheckMinimum("garbage", "")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestCheckMinimum_UnparsableOutput(t *testing.T) {
	_, err := CheckMinimum("garbage", "1.0.0")
	require.Error(t, err)
}
