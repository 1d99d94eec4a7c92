package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWTSecret_ReadAtCallTime(t *testing.T) {
	// The signing key must pick up values set after package init, e.g. a
	// .env file loaded by LoadEnv in main.
	t.Setenv("JWT_SECRET", "runtime-secret")
	require.Equal(t, []byte("runtime-secret"), JWTSecret())
}

func TestJWTSecret_Fallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NotEmpty(t, JWTSecret())
}
