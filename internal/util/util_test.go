package util

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleIsDeterministicPermutation(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	seed := SeedFromKey("attempt-1")

	first := Shuffle(items, seed)
	second := Shuffle(items, seed)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, items, "input must not be mutated")

	sorted := append([]string(nil), first...)
	sort.Strings(sorted)
	assert.Equal(t, items, sorted)

	assert.Empty(t, Shuffle([]string{}, seed))
}

func TestSeedFromKey(t *testing.T) {
	assert.Equal(t, SeedFromKey("x"), SeedFromKey("x"))
	assert.NotEqual(t, SeedFromKey("x"), SeedFromKey("y"))
}

func TestRound2(t *testing.T) {
	score, total := 2.75, 5.0
	cases := []struct {
		in, want float64
	}{
		{55.0, 55.0},
		{score / total * 100, 55.0},
		{33.333333, 33.33},
		{66.666666, 66.67},
		{12.345, 12.35},
		{-5.0, -5.0},
		{-0.125, -0.12},
		{-12.345, -12.34},
		{-33.333333, -33.33},
		{-66.666666, -66.67},
		{0, 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, Round2(tc.in), 1e-9, "Round2(%v)", tc.in)
	}
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 3, ParseIntDefault("3", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("x", 1))
}

func TestStatusFor(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", ErrAlreadySubmitted)
	assert.Equal(t, http.StatusConflict, StatusFor(wrapped))
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrNotFound))
	assert.Equal(t, http.StatusForbidden, StatusFor(ErrNotAssigned))
	assert.Equal(t, 0, StatusFor(errors.New("boom")))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("student-1", RoleStudent, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.UserID)
	assert.Equal(t, RoleStudent, claims.Role)

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)

	expired, err := GenerateJWT("student-1", RoleStudent, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	c := &FixedClock{T: base}
	c.Advance(time.Minute)
	assert.Equal(t, base.Add(time.Minute), c.Now())
}
