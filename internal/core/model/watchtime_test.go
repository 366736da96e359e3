package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTimePackLayout(t *testing.T) {
	value := WatchTime{Hours: 11, Minutes: 22, Seconds: 33, Cents: 44}
	packed := value.Pack()

	assert.Equal(t, uint32(11), uint32(packed.Hi>>32))
	assert.Equal(t, uint32(22), uint32(packed.Hi))
	assert.Equal(t, uint32(33), uint32(packed.Lo>>32))
	assert.Equal(t, uint32(44), uint32(packed.Lo))
}

func TestWatchTimeOrdering(t *testing.T) {
	base := WatchTime{Hours: 11, Minutes: 22, Seconds: 33, Cents: 44}
	later := base
	later.Hours++

	assert.True(t, base.Equal(base))
	assert.False(t, base.Equal(later))
	assert.True(t, base.Less(later))
	assert.False(t, later.Less(base))

	cases := []struct {
		name string
		a, b WatchTime
		want int
	}{
		{"hours dominate minutes", WatchTime{Hours: 1}, WatchTime{Minutes: 59, Seconds: 59, Cents: 99}, 1},
		{"minutes dominate seconds", WatchTime{Minutes: 1}, WatchTime{Seconds: 59, Cents: 99}, 1},
		{"seconds dominate cents", WatchTime{Seconds: 1}, WatchTime{Cents: 99}, 1},
		{"cents break ties", WatchTime{Seconds: 5, Cents: 1}, WatchTime{Seconds: 5, Cents: 2}, -1},
		{"equal", WatchTime{Hours: 3, Minutes: 4}, WatchTime{Hours: 3, Minutes: 4}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Compare(tc.b))
			assert.Equal(t, -tc.want, tc.b.Compare(tc.a))
			assert.Equal(t, tc.want, tc.a.Pack().Compare(tc.b.Pack()))
		})
	}
}

func TestWatchTimeNormalize(t *testing.T) {
	value := WatchTime{Hours: 20, Minutes: 119, Seconds: 125, Cents: 150}
	value.Normalize()

	assert.Equal(t, WatchTime{Hours: 22, Minutes: 1, Seconds: 6, Cents: 50}, value)
}

func TestWatchTimeNormalizeWrapsHours(t *testing.T) {
	value := WatchTime{Hours: 99, Minutes: 59, Seconds: 59, Cents: 100}
	value.Normalize()

	assert.True(t, value.IsZero(), "got %s", value)
}

func TestWatchTimeNormalizeIdempotent(t *testing.T) {
	inputs := []WatchTime{
		{},
		{Cents: 12345},
		{Hours: 250, Minutes: 7000, Seconds: 61, Cents: 99},
		{Hours: 1 << 20, Minutes: 1 << 20, Seconds: 1 << 20, Cents: 1 << 20},
		{Hours: 99, Minutes: 59, Seconds: 59, Cents: 99},
	}
	for _, input := range inputs {
		once := input.Normalized()
		twice := once.Normalized()
		assert.Equal(t, once, twice, "input %+v", input)
		require.NoError(t, once.Validate())
	}
}

func TestWatchTimeValidate(t *testing.T) {
	cases := []struct {
		value WatchTime
		field string
	}{
		{WatchTime{Cents: 100}, "centiseconds"},
		{WatchTime{Seconds: 60}, "seconds"},
		{WatchTime{Minutes: 60}, "minutes"},
		{WatchTime{Hours: 100}, "hours"},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			err := tc.value.Validate()
			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tc.field, rangeErr.Field)
		})
	}

	require.NoError(t, WatchTime{Hours: 99, Minutes: 59, Seconds: 59, Cents: 99}.Validate())
}

func TestWatchTimeString(t *testing.T) {
	assert.Equal(t, "01:02:03.04", WatchTime{Hours: 1, Minutes: 2, Seconds: 3, Cents: 4}.String())
}

func TestFromClock(t *testing.T) {
	now := time.Date(2024, 5, 6, 13, 14, 15, 987_654_321, time.Local)
	assert.Equal(t, WatchTime{Hours: 13, Minutes: 14, Seconds: 15, Cents: 98}, FromClock(now))
}
