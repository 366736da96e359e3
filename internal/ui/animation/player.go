package animation

import (
	"math"
	"math/rand"
	"sync"
)

// Source is a random source shared by every player of a window. It is
// safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a Source seeded with seed.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a number in [0, 1).
func (source *Source) Float64() float64 {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.rng.Float64()
}

// Config describes a looping sequence of text frames. A nil Probability
// loops forever. Otherwise the player rests on the first frame and, once
// per idle second, plays a single pass with the given probability.
type Config struct {
	Frames      []string
	FPS         float32
	Probability *float64
}

// Player advances an animation by elapsed time.
type Player struct {
	config Config
	source *Source

	frame   int
	elapsed float32
	idle    float32
	playing bool
}

// NewPlayer creates a player. source may be nil for players without a
// probability.
func NewPlayer(config Config, source *Source) *Player {
	return &Player{config: config, source: source}
}

// Reset rewinds to the first frame and stops a gated pass.
func (player *Player) Reset() {
	player.frame = 0
	player.elapsed = 0
	player.idle = 0
	player.playing = false
}

// Playing reports whether a gated pass is in progress. Ungated players
// always play.
func (player *Player) Playing() bool {
	return player.config.Probability == nil || player.playing
}

// Frame returns the current frame, or "" without frames.
func (player *Player) Frame() string {
	if len(player.config.Frames) == 0 {
		return ""
	}
	return player.config.Frames[player.frame]
}

// Advance moves the animation forward by dt seconds and returns the
// current frame.
func (player *Player) Advance(dt float32) string {
	count := len(player.config.Frames)
	if count == 0 || player.config.FPS <= 0 {
		return player.Frame()
	}
	if !(dt > 0) || math.IsInf(float64(dt), 1) {
		dt = 0
	}

	probability := player.config.Probability
	if probability == nil {
		loop := float32(count) / player.config.FPS
		player.elapsed = float32(math.Mod(float64(player.elapsed+dt), float64(loop)))
		player.frame = frameAt(player.elapsed, player.config.FPS, count)
		return player.Frame()
	}

	if player.playing {
		player.elapsed += dt
		index := int(player.elapsed * player.config.FPS)
		if index >= count {
			player.Reset()
		} else {
			player.frame = index
		}
		return player.Frame()
	}

	player.idle += dt
	if player.idle >= 1 {
		player.idle = 0
		if player.source != nil && player.source.Float64() <= *probability {
			player.playing = true
			player.elapsed = 0
		}
	}
	return player.Frame()
}

func frameAt(elapsed, fps float32, count int) int {
	index := int(elapsed * fps)
	if index >= count {
		return count - 1
	}
	return index
}
