package savedata

import (
	"testing"

	"skinwatch/internal/core/model"
	"skinwatch/internal/sexpr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolsMatchNames(t *testing.T) {
	assert.Equal(t, model.SkinID("watch_mode"), SymbolWatchMode)
	assert.Equal(t, model.SkinID("stopwatch"), SymbolStopwatch)
	assert.Equal(t, model.SkinID("clock"), SymbolClock)
	assert.Equal(t, model.SkinID("stopwatch_time"), SymbolStopwatchTime)
}

func TestRoundTrip(t *testing.T) {
	stopwatchTime := model.WatchTime{Hours: 10, Minutes: 20, Seconds: 30, Cents: 40}
	cases := []struct {
		mode model.WatchMode
		want model.WatchMode
	}{
		{model.ModeClock, model.ModeClock},
		{model.ModeStopwatchStopped, model.ModeStopwatchStopped},
		{model.ModeStopwatchRunning, model.ModeStopwatchStopped},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			record := Record{Mode: tc.mode, StopwatchTime: stopwatchTime, SavedTime: 0.003}

			decoded, ok := Decode(Encode(record))
			require.True(t, ok)
			assert.Equal(t, tc.want, decoded.Mode)
			assert.Equal(t, stopwatchTime, decoded.StopwatchTime)
			assert.Equal(t, float32(0.003), decoded.SavedTime)
			assert.True(t, decoded.Equal(record))
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	record := Record{Mode: model.ModeStopwatchRunning, StopwatchTime: model.WatchTime{Minutes: 5}, SavedTime: 0.25}

	var encoder Encoder
	first := encoder.Encode(record)
	encoder.Encode(Record{Mode: model.ModeClock})
	second := encoder.Encode(record)

	assert.Equal(t, first, second)
	assert.Equal(t, first, Encode(record))
}

func TestEncodeLayout(t *testing.T) {
	data := Encode(Record{Mode: model.ModeClock, StopwatchTime: model.WatchTime{Hours: 1, Minutes: 2, Seconds: 3, Cents: 4}, SavedTime: 0.5})

	root, err := sexpr.Parse(data)
	require.NoError(t, err)
	entries, err := root.Items()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	modeEntry, err := entries[0].Items()
	require.NoError(t, err)
	require.Len(t, modeEntry, 2)
	tag, err := modeEntry[0].U64()
	require.NoError(t, err)
	assert.Equal(t, SymbolWatchMode, tag)
	mode, err := modeEntry[1].U64()
	require.NoError(t, err)
	assert.Equal(t, SymbolClock, mode)

	timeEntry, err := entries[1].Items()
	require.NoError(t, err)
	require.Len(t, timeEntry, 6)
	kinds := []sexpr.Kind{sexpr.KindU64, sexpr.KindU32, sexpr.KindU32, sexpr.KindU32, sexpr.KindU32, sexpr.KindF32}
	for index, kind := range kinds {
		assert.Equal(t, kind, timeEntry[index].Kind(), "field %d", index)
	}
}

func TestRecordEqualIgnoresSavedTime(t *testing.T) {
	a := Record{Mode: model.ModeClock, StopwatchTime: model.WatchTime{Seconds: 1}, SavedTime: 0.1}
	b := a
	b.SavedTime = 0.9
	assert.True(t, a.Equal(b))

	b.StopwatchTime.Cents = 1
	assert.False(t, a.Equal(b))

	c := a
	c.Mode = model.ModeStopwatchStopped
	assert.False(t, a.Equal(c))
}

func buildRecord(t *testing.T, build func(b *sexpr.Builder)) []byte {
	t.Helper()
	var builder sexpr.Builder
	build(&builder)
	data, err := builder.Bytes()
	require.NoError(t, err)
	return data
}

func modeEntry(b *sexpr.Builder, symbol uint64) {
	b.BeginList().U64(SymbolWatchMode).U64(symbol).EndList()
}

func timeEntry(b *sexpr.Builder) {
	b.BeginList().U64(SymbolStopwatchTime).U32(1).U32(2).U32(3).U32(4).F32(0.5).EndList()
}

func TestDecodeRejects(t *testing.T) {
	valid := Encode(Record{Mode: model.ModeClock, StopwatchTime: model.WatchTime{Seconds: 9}})

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, sexpr.ErrTruncated},
		{"truncated", valid[:len(valid)-3], sexpr.ErrTruncated},
		{"unknown top-level tag", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			modeEntry(b, SymbolClock)
			timeEntry(b)
			b.BeginList().U64(model.SkinID("window_position")).U32(1).EndList()
			b.EndList()
		}), ErrUnknownTag},
		{"missing mode", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			timeEntry(b)
			b.EndList()
		}), ErrMissingTag},
		{"missing time", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			modeEntry(b, SymbolStopwatch)
			b.EndList()
		}), ErrMissingTag},
		{"unknown mode", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			modeEntry(b, model.SkinID("timer"))
			timeEntry(b)
			b.EndList()
		}), ErrUnknownMode},
		{"short stopwatch_time", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			modeEntry(b, SymbolClock)
			b.BeginList().U64(SymbolStopwatchTime).U32(1).U32(2).U32(3).EndList()
			b.EndList()
		}), ErrShape},
		{"wrong field width", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			modeEntry(b, SymbolClock)
			b.BeginList().U64(SymbolStopwatchTime).U32(1).U64(2).U32(3).U32(4).F32(0).EndList()
			b.EndList()
		}), sexpr.ErrKind},
		{"saved time not f32", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			modeEntry(b, SymbolClock)
			b.BeginList().U64(SymbolStopwatchTime).U32(1).U32(2).U32(3).U32(4).U32(0).EndList()
			b.EndList()
		}), sexpr.ErrKind},
		{"tag not u64", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			b.BeginList().U32(1).U64(SymbolClock).EndList()
			timeEntry(b)
			b.EndList()
		}), sexpr.ErrKind},
		{"entry not a list", buildRecord(t, func(b *sexpr.Builder) {
			b.BeginList()
			b.U64(SymbolWatchMode)
			b.EndList()
		}), sexpr.ErrKind},
		{"root not a list", buildRecord(t, func(b *sexpr.Builder) {
			b.U64(SymbolWatchMode)
		}), sexpr.ErrKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeErr(tc.data)
			require.ErrorIs(t, err, tc.want)

			record, ok := Decode(tc.data)
			assert.False(t, ok)
			assert.Equal(t, Record{}, record)
		})
	}
}

func TestDecodeTruncatedStopwatchTimeNeverPanics(t *testing.T) {
	valid := Encode(Record{Mode: model.ModeStopwatchRunning, StopwatchTime: model.WatchTime{Hours: 2}})
	for cut := 0; cut < len(valid); cut++ {
		assert.NotPanics(t, func() {
			_, ok := Decode(valid[:cut])
			assert.False(t, ok, "cut at %d", cut)
		})
	}
}

func TestDecodeAcceptsEntriesInAnyOrder(t *testing.T) {
	data := buildRecord(t, func(b *sexpr.Builder) {
		b.BeginList()
		timeEntry(b)
		modeEntry(b, SymbolStopwatch)
		b.EndList()
	})

	record, ok := Decode(data)
	require.True(t, ok)
	assert.Equal(t, model.ModeStopwatchStopped, record.Mode)
	assert.Equal(t, model.WatchTime{Hours: 1, Minutes: 2, Seconds: 3, Cents: 4}, record.StopwatchTime)
}
