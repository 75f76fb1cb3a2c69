// Package tester holds short assertion helpers for table-light tests.
// Each helper stops the test on failure.
package tester

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Eq[T any](t testing.TB, got, want T, msgAndArgs ...any) {
	t.Helper()
	require.Equal(t, want, got, msgAndArgs...)
}

func True(t testing.TB, cond bool, msgAndArgs ...any) {
	t.Helper()
	require.True(t, cond, msgAndArgs...)
}

func False(t testing.TB, cond bool, msgAndArgs ...any) {
	t.Helper()
	require.False(t, cond, msgAndArgs...)
}

func NoErr(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// ErrIs asserts errors.Is(err, target).
func ErrIs(t testing.TB, err, target error, msgAndArgs ...any) {
	t.Helper()
	require.ErrorIs(t, err, target, msgAndArgs...)
}

func Contains(t testing.TB, s, sub string, msgAndArgs ...any) {
	t.Helper()
	require.Contains(t, s, sub, msgAndArgs...)
}
