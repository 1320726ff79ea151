package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken_Sizes(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128 bits", TokenSize128, 22},
		{"256 bits", TokenSize256, 43},
		{"512 bits", TokenSize512, 86},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, a, tt.wantLen)

			b, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, a, b)
		})
	}
}

func TestGenerateToken_RejectsNonPositive(t *testing.T) {
	for _, size := range []int{0, -8} {
		tok, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, tok)

		hx, err := GenerateHex(size)
		require.Error(t, err)
		require.Empty(t, hx)
	}
}

func TestGenerateHex_State(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		state, err := GenerateHex(16)
		require.NoError(t, err)
		require.Len(t, state, 32)

		raw, err := hex.DecodeString(state)
		require.NoError(t, err)
		require.Len(t, raw, 16)

		require.NotContains(t, seen, state)
		seen[state] = struct{}{}
	}
}

func TestFingerprintToken_Deterministic(t *testing.T) {
	a := FingerprintToken("eyJhbGciOiJIUzI1NiJ9.a.b")
	require.Equal(t, a, FingerprintToken("eyJhbGciOiJIUzI1NiJ9.a.b"))
	require.NotEqual(t, a, FingerprintToken("eyJhbGciOiJIUzI1NiJ9.a.c"))
	require.Len(t, a, 43)
}
