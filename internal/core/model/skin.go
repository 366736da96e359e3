package model

import (
	"hash/fnv"
	"sort"
)

// SkinID returns the 64-bit FNV-1a identifier of a skin name.
func SkinID(name string) uint64 {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(name))
	return hash.Sum64()
}

// SkinSwitchEvent selects SkinID once the domain time reaches From.
type SkinSwitchEvent struct {
	SkinID uint64
	From   WatchTime
}

// SkinTable maps one time domain to skin ids. Events are kept sorted
// descending by threshold.
type SkinTable struct {
	events    []SkinSwitchEvent
	defaultID uint64
}

// NewSkinTable normalizes and sorts a copy of events.
func NewSkinTable(events []SkinSwitchEvent, defaultID uint64) SkinTable {
	sorted := make([]SkinSwitchEvent, len(events))
	copy(sorted, events)
	for index := range sorted {
		sorted[index].From.Normalize()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[j].From.Less(sorted[i].From)
	})
	return SkinTable{events: sorted, defaultID: defaultID}
}

// Resolve returns the skin of the greatest threshold not after t, or the
// default skin when t precedes every threshold.
func (table SkinTable) Resolve(t WatchTime) uint64 {
	index := sort.Search(len(table.events), func(i int) bool {
		return !t.Less(table.events[i].From)
	})
	if index < len(table.events) {
		return table.events[index].SkinID
	}
	return table.defaultID
}

// DefaultID returns the skin used below every threshold.
func (table SkinTable) DefaultID() uint64 {
	return table.defaultID
}

// Events returns a copy of the sorted events.
func (table SkinTable) Events() []SkinSwitchEvent {
	return append([]SkinSwitchEvent(nil), table.events...)
}

// Len returns the number of events.
func (table SkinTable) Len() int {
	return len(table.events)
}
