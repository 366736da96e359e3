package model

import (
	"fmt"
	"time"
)

// Field limits of a normalized WatchTime.
const (
	MaxCents   = 99
	MaxSeconds = 59
	MaxMinutes = 59
	MaxHours   = 99
)

// WatchTime is a display time with centisecond resolution.
type WatchTime struct {
	Hours   uint32
	Minutes uint32
	Seconds uint32
	Cents   uint32
}

// Packed is the 128-bit packing of a WatchTime, hours in the top 32 bits
// of Hi and cents in the low 32 bits of Lo.
type Packed struct {
	Hi uint64
	Lo uint64
}

// Compare orders packed values as unsigned 128-bit integers.
func (value Packed) Compare(other Packed) int {
	switch {
	case value.Hi < other.Hi:
		return -1
	case value.Hi > other.Hi:
		return 1
	case value.Lo < other.Lo:
		return -1
	case value.Lo > other.Lo:
		return 1
	}
	return 0
}

// Pack returns the 128-bit packed form used for ordering.
func (t WatchTime) Pack() Packed {
	return Packed{
		Hi: uint64(t.Hours)<<32 | uint64(t.Minutes),
		Lo: uint64(t.Seconds)<<32 | uint64(t.Cents),
	}
}

// Compare returns -1, 0 or 1 depending on the packed order of t and other.
func (t WatchTime) Compare(other WatchTime) int {
	return t.Pack().Compare(other.Pack())
}

// Less reports whether t is before other.
func (t WatchTime) Less(other WatchTime) bool {
	return t.Compare(other) < 0
}

// Equal reports whether t and other pack to the same value.
func (t WatchTime) Equal(other WatchTime) bool {
	return t.Compare(other) == 0
}

// IsZero reports whether every field is zero.
func (t WatchTime) IsZero() bool {
	return t == WatchTime{}
}

// Normalize carries overflow upward and wraps hours at 100.
func (t *WatchTime) Normalize() {
	t.Seconds += t.Cents / 100
	t.Minutes += t.Seconds / 60
	t.Hours += t.Minutes / 60

	t.Cents %= 100
	t.Seconds %= 60
	t.Minutes %= 60
	t.Hours %= 100
}

// Normalized returns a normalized copy of t.
func (t WatchTime) Normalized() WatchTime {
	t.Normalize()
	return t
}

// Validate checks that every field is already within its display range.
func (t WatchTime) Validate() error {
	switch {
	case t.Cents > MaxCents:
		return &RangeError{Field: "centiseconds", Value: t.Cents, Max: MaxCents}
	case t.Seconds > MaxSeconds:
		return &RangeError{Field: "seconds", Value: t.Seconds, Max: MaxSeconds}
	case t.Minutes > MaxMinutes:
		return &RangeError{Field: "minutes", Value: t.Minutes, Max: MaxMinutes}
	case t.Hours > MaxHours:
		return &RangeError{Field: "hours", Value: t.Hours, Max: MaxHours}
	}
	return nil
}

// String formats t as hh:mm:ss.cc.
func (t WatchTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%02d", t.Hours, t.Minutes, t.Seconds, t.Cents)
}

// FromClock samples the local wall time of now.
func FromClock(now time.Time) WatchTime {
	now = now.Local()
	return WatchTime{
		Hours:   uint32(now.Hour()),
		Minutes: uint32(now.Minute()),
		Seconds: uint32(now.Second()),
		Cents:   uint32(now.Nanosecond() / 10_000_000),
	}
}

// RangeError reports a time field outside its display range.
type RangeError struct {
	Field string
	Value uint32
	Max   uint32
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range (max %d)", err.Field, err.Value, err.Max)
}
