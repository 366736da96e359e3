// Package savedata encodes the watch state that survives a restart.
//
// The record is a sexpr list of two tagged entries:
//
//	( (watch_mode stopwatch|clock)
//	  (stopwatch_time hours minutes seconds cents saved_time) )
//
// Tags and mode values are FNV-1a 64 symbols of the names above. Only
// stopwatch vs. clock is stored; a restored stopwatch is always stopped.
package savedata

import (
	"errors"
	"fmt"

	"skinwatch/internal/core/model"
	"skinwatch/internal/sexpr"
)

// Symbols are model.SkinID of their names, fixed so the format needs no
// string table.
const (
	SymbolWatchMode     uint64 = 0x88e8983b3a4ae222
	SymbolStopwatch     uint64 = 0x73d0846b19b8efe8
	SymbolClock         uint64 = 0x9e8c579513934bbd
	SymbolStopwatchTime uint64 = 0xd32cee6f88098a34
)

var (
	// ErrUnknownTag indicates a top-level entry this version does not know.
	ErrUnknownTag = errors.New("savedata: unknown tag")
	// ErrMissingTag indicates a required top-level entry is absent.
	ErrMissingTag = errors.New("savedata: missing tag")
	// ErrUnknownMode indicates an unrecognized watch mode symbol.
	ErrUnknownMode = errors.New("savedata: unknown watch mode")
	// ErrShape indicates an entry with the wrong number of fields.
	ErrShape = errors.New("savedata: malformed entry")
)

// Record is the persisted subset of watch state.
type Record struct {
	Mode          model.WatchMode
	StopwatchTime model.WatchTime
	SavedTime     float32
}

// Equal compares mode and whole-unit stopwatch time; SavedTime is ignored.
func (record Record) Equal(other Record) bool {
	return record.Mode.Persisted() == other.Mode.Persisted() &&
		record.StopwatchTime.Equal(other.StopwatchTime)
}

// Encoder serializes records, reusing its scratch buffer between calls.
type Encoder struct {
	builder sexpr.Builder
}

// Encode returns the byte form of record. Identical records always encode
// to identical bytes.
func (encoder *Encoder) Encode(record Record) []byte {
	builder := &encoder.builder
	builder.Reset()

	modeSymbol := SymbolClock
	if record.Mode.IsStopwatch() {
		modeSymbol = SymbolStopwatch
	}

	builder.BeginList()
	builder.BeginList().U64(SymbolWatchMode).U64(modeSymbol).EndList()
	builder.BeginList().
		U64(SymbolStopwatchTime).
		U32(record.StopwatchTime.Hours).
		U32(record.StopwatchTime.Minutes).
		U32(record.StopwatchTime.Seconds).
		U32(record.StopwatchTime.Cents).
		F32(record.SavedTime).
		EndList()
	builder.EndList()

	data, err := builder.Bytes()
	if err != nil {
		// lists above are balanced by construction
		panic(fmt.Sprintf("savedata: encode: %v", err))
	}
	return data
}

// Encode serializes record with a fresh Encoder.
func Encode(record Record) []byte {
	var encoder Encoder
	return encoder.Encode(record)
}

// Decode parses data, reporting false for anything that is not a complete
// record of this format.
func Decode(data []byte) (Record, bool) {
	record, err := DecodeErr(data)
	if err != nil {
		return Record{}, false
	}
	return record, true
}

// DecodeErr is Decode with the reason for rejection.
func DecodeErr(data []byte) (Record, error) {
	root, err := sexpr.Parse(data)
	if err != nil {
		return Record{}, err
	}
	entries, err := root.Items()
	if err != nil {
		return Record{}, err
	}

	var (
		record   Record
		haveMode bool
		haveTime bool
	)
	for _, entry := range entries {
		fields, err := entry.Items()
		if err != nil {
			return Record{}, err
		}
		if len(fields) == 0 {
			return Record{}, fmt.Errorf("%w: empty entry", ErrShape)
		}
		tag, err := fields[0].U64()
		if err != nil {
			return Record{}, err
		}

		switch tag {
		case SymbolWatchMode:
			mode, err := decodeWatchMode(fields[1:])
			if err != nil {
				return Record{}, err
			}
			record.Mode = mode
			haveMode = true
		case SymbolStopwatchTime:
			stopwatchTime, savedTime, err := decodeStopwatchTime(fields[1:])
			if err != nil {
				return Record{}, err
			}
			record.StopwatchTime = stopwatchTime
			record.SavedTime = savedTime
			haveTime = true
		default:
			return Record{}, fmt.Errorf("%w: %016x", ErrUnknownTag, tag)
		}
	}

	if !haveMode {
		return Record{}, fmt.Errorf("%w: watch_mode", ErrMissingTag)
	}
	if !haveTime {
		return Record{}, fmt.Errorf("%w: stopwatch_time", ErrMissingTag)
	}
	return record, nil
}

func decodeWatchMode(fields []sexpr.Node) (model.WatchMode, error) {
	if len(fields) != 1 {
		return "", fmt.Errorf("%w: watch_mode has %d values", ErrShape, len(fields))
	}
	symbol, err := fields[0].U64()
	if err != nil {
		return "", err
	}
	switch symbol {
	case SymbolStopwatch:
		return model.ModeStopwatchStopped, nil
	case SymbolClock:
		return model.ModeClock, nil
	}
	return "", fmt.Errorf("%w: %016x", ErrUnknownMode, symbol)
}

func decodeStopwatchTime(fields []sexpr.Node) (model.WatchTime, float32, error) {
	if len(fields) != 5 {
		return model.WatchTime{}, 0, fmt.Errorf("%w: stopwatch_time has %d values", ErrShape, len(fields))
	}
	var units [4]uint32
	for index := range units {
		value, err := fields[index].U32()
		if err != nil {
			return model.WatchTime{}, 0, err
		}
		units[index] = value
	}
	savedTime, err := fields[4].F32()
	if err != nil {
		return model.WatchTime{}, 0, err
	}
	return model.WatchTime{
		Hours:   units[0],
		Minutes: units[1],
		Seconds: units[2],
		Cents:   units[3],
	}, savedTime, nil
}
