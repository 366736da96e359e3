package model

// WatchConfig contains the preprocessed settings for the watch state machine.
type WatchConfig struct {
	DefaultMode WatchMode
	Stopwatch   SkinTable
	Clock       SkinTable
}
