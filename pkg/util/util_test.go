package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("disk on fire")
	err := WrapErrorf(orig, ErrNotFound, "route %d missing", 7)

	var typed *Error
	require.True(t, errors.As(err, &typed))
	require.ErrorIs(t, typed.Code(), ErrNotFound)
	require.Equal(t, "route 7 missing", err.Error())
	require.ErrorIs(t, err, orig)
}

func TestReverseG(t *testing.T) {
	in := []int{1, 2, 3, 4}
	out := ReverseG(in)
	require.Equal(t, []int{4, 3, 2, 1}, out)
	// input untouched
	require.Equal(t, []int{1, 2, 3, 4}, in)

	require.Empty(t, ReverseG([]int{}))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, Clamp(-1.5, 0, 1))
	require.Equal(t, 1.0, Clamp(7.0, 0, 1))
	require.Equal(t, 0.4, Clamp(0.4, 0, 1))
}

func TestMinMax(t *testing.T) {
	require.Equal(t, 2, Min(2, 5))
	require.Equal(t, 5, Max(2, 5))
	require.Equal(t, "a", Min("a", "b"))
}

func TestRoundFloat(t *testing.T) {
	require.Equal(t, 1.23, RoundFloat(1.2312, 2))
	require.Equal(t, 1.235, RoundFloat(1.2346, 3))
}
