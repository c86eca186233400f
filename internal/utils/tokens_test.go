package utils

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResetCode(t *testing.T) {
	code, err := NewResetCode(16)
	require.NoError(t, err)
	require.Len(t, code, 32)

	_, err = hex.DecodeString(code)
	require.NoError(t, err)

	other, err := NewResetCode(16)
	require.NoError(t, err)
	require.NotEqual(t, code, other)
}

func TestNewResetCodeDefaultSize(t *testing.T) {
	code, err := NewResetCode(0)
	require.NoError(t, err)
	require.Len(t, code, 64)
}

func TestNewUsername(t *testing.T) {
	name := NewUsername()
	require.True(t, strings.HasPrefix(name, "user-"))
	require.Len(t, name, len("user-")+12)
	require.NotEqual(t, name, NewUsername())
}
