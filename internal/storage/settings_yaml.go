package storage

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"skinwatch/internal/core/model"

	"gopkg.in/yaml.v3"
)

const (
	defaultSaveDataFile = "skinwatch.sav"
	defaultWindowWidth  = 240
	defaultWindowHeight = 120
)

var (
	// ErrUnknownSkin indicates a reference to a skin name that is not defined.
	ErrUnknownSkin = errors.New("unknown skin")
	// ErrDuplicateSkin indicates two skins sharing one name.
	ErrDuplicateSkin = errors.New("duplicate skin name")
	// ErrInvalidColor indicates a colour that is not #rrggbb or #rrggbbaa.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidAnimation indicates an animation with no frames, a
	// non-positive fps or a probability outside [0, 1].
	ErrInvalidAnimation = errors.New("invalid animation")
)

// EventError reports a rejected skin switch event.
type EventError struct {
	Domain string
	Index  int
	Err    error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Domain, e.Index, e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}

// WindowSize is the widget size in device independent pixels.
type WindowSize struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Animation is a looping sequence of text frames. Without a probability
// it loops forever; with one it plays once each time a draw made every
// idle second succeeds.
type Animation struct {
	Frames      []string `yaml:"frames"`
	FPS         float32  `yaml:"fps"`
	Probability *float64 `yaml:"probability"`
}

// Skin is the look selected by the skin tables.
type Skin struct {
	Name       string     `yaml:"name"`
	Foreground string     `yaml:"foreground"`
	Background string     `yaml:"background"`
	Animation  *Animation `yaml:"animation"`
}

// ID returns the identifier the watch core uses for the skin.
func (skin Skin) ID() uint64 {
	return model.SkinID(skin.Name)
}

// Colors parses the foreground and background colours.
func (skin Skin) Colors() (foreground, background color.NRGBA, err error) {
	if foreground, err = ParseColor(skin.Foreground); err != nil {
		return foreground, background, fmt.Errorf("skin %q foreground: %w", skin.Name, err)
	}
	if background, err = ParseColor(skin.Background); err != nil {
		return foreground, background, fmt.Errorf("skin %q background: %w", skin.Name, err)
	}
	return foreground, background, nil
}

// TimeValue is a threshold as written in the settings file.
type TimeValue struct {
	Hours        uint32 `yaml:"hours"`
	Minutes      uint32 `yaml:"minutes"`
	Seconds      uint32 `yaml:"seconds"`
	Centiseconds uint32 `yaml:"centiseconds"`
}

// WatchTime converts the value without normalizing it.
func (value TimeValue) WatchTime() model.WatchTime {
	return model.WatchTime{
		Hours:   value.Hours,
		Minutes: value.Minutes,
		Seconds: value.Seconds,
		Cents:   value.Centiseconds,
	}
}

// SkinEvent switches to SkinName once the domain time reaches From.
type SkinEvent struct {
	SkinName string    `yaml:"skin_name"`
	From     TimeValue `yaml:"from"`
}

// Settings is the user settings file.
type Settings struct {
	WindowSize               WindowSize  `yaml:"window_size"`
	SaveDataFile             string      `yaml:"save_data_file"`
	DefaultMode              string      `yaml:"default_mode"`
	DefaultStopwatchSkinName string      `yaml:"default_stopwatch_skin_name"`
	DefaultClockSkinName     string      `yaml:"default_clock_skin_name"`
	Skins                    []Skin      `yaml:"skins"`
	StopwatchEvents          []SkinEvent `yaml:"stopwatch_events"`
	ClockEvents              []SkinEvent `yaml:"clock_events"`

	// Dir is the directory of the settings file; relative paths resolve
	// against it.
	Dir string `yaml:"-"`
}

// LoadSettings reads and parses the settings file at path.
func LoadSettings(path string) (Settings, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	settings, err := ParseSettings(rawData)
	if err != nil {
		return Settings{}, err
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		return Settings{}, fmt.Errorf("resolve settings path: %w", err)
	}
	settings.Dir = filepath.Dir(absolute)
	return settings, nil
}

// ParseSettings parses settings YAML and fills unset optional fields.
func ParseSettings(rawData []byte) (Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(rawData, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings yaml: %w", err)
	}
	applyDefaults(&settings)
	return settings, nil
}

func applyDefaults(settings *Settings) {
	if settings.WindowSize.Width <= 0 {
		settings.WindowSize.Width = defaultWindowWidth
	}
	if settings.WindowSize.Height <= 0 {
		settings.WindowSize.Height = defaultWindowHeight
	}
	if strings.TrimSpace(settings.SaveDataFile) == "" {
		settings.SaveDataFile = defaultSaveDataFile
	}
}

// SaveDataPath returns the save file location.
func (settings Settings) SaveDataPath() string {
	if filepath.IsAbs(settings.SaveDataFile) || settings.Dir == "" {
		return settings.SaveDataFile
	}
	return filepath.Join(settings.Dir, settings.SaveDataFile)
}

// SkinsByID indexes skins by their core identifier.
func (settings Settings) SkinsByID() map[uint64]Skin {
	skins := make(map[uint64]Skin, len(settings.Skins))
	for _, skin := range settings.Skins {
		skins[skin.ID()] = skin
	}
	return skins
}

// WatchConfig validates the settings and converts them into the
// preprocessed form the watch core runs on.
func (settings Settings) WatchConfig() (model.WatchConfig, error) {
	defaultMode, err := model.ParseDefaultMode(settings.DefaultMode)
	if err != nil {
		return model.WatchConfig{}, err
	}

	names := make(map[string]struct{}, len(settings.Skins))
	for _, skin := range settings.Skins {
		if _, exists := names[skin.Name]; exists {
			return model.WatchConfig{}, fmt.Errorf("%w: %q", ErrDuplicateSkin, skin.Name)
		}
		names[skin.Name] = struct{}{}
		if _, _, err := skin.Colors(); err != nil {
			return model.WatchConfig{}, err
		}
		if err := validateAnimation(skin.Animation); err != nil {
			return model.WatchConfig{}, fmt.Errorf("skin %q: %w", skin.Name, err)
		}
	}

	lookup := func(name string) (uint64, error) {
		if _, ok := names[name]; !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownSkin, name)
		}
		return model.SkinID(name), nil
	}

	stopwatchDefault, err := lookup(settings.DefaultStopwatchSkinName)
	if err != nil {
		return model.WatchConfig{}, fmt.Errorf("default_stopwatch_skin_name: %w", err)
	}
	clockDefault, err := lookup(settings.DefaultClockSkinName)
	if err != nil {
		return model.WatchConfig{}, fmt.Errorf("default_clock_skin_name: %w", err)
	}

	stopwatchEvents, err := convertEvents("stopwatch_events", settings.StopwatchEvents, lookup)
	if err != nil {
		return model.WatchConfig{}, err
	}
	clockEvents, err := convertEvents("clock_events", settings.ClockEvents, lookup)
	if err != nil {
		return model.WatchConfig{}, err
	}

	return model.WatchConfig{
		DefaultMode: defaultMode,
		Stopwatch:   model.NewSkinTable(stopwatchEvents, stopwatchDefault),
		Clock:       model.NewSkinTable(clockEvents, clockDefault),
	}, nil
}

func convertEvents(domain string, events []SkinEvent, lookup func(string) (uint64, error)) ([]model.SkinSwitchEvent, error) {
	converted := make([]model.SkinSwitchEvent, 0, len(events))
	for index, event := range events {
		from := event.From.WatchTime()
		if err := from.Validate(); err != nil {
			return nil, &EventError{Domain: domain, Index: index, Err: err}
		}
		id, err := lookup(event.SkinName)
		if err != nil {
			return nil, &EventError{Domain: domain, Index: index, Err: err}
		}
		converted = append(converted, model.SkinSwitchEvent{SkinID: id, From: from})
	}
	return converted, nil
}

func validateAnimation(animation *Animation) error {
	if animation == nil {
		return nil
	}
	if len(animation.Frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrInvalidAnimation)
	}
	if animation.FPS <= 0 {
		return fmt.Errorf("%w: fps %v", ErrInvalidAnimation, animation.FPS)
	}
	if p := animation.Probability; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("%w: probability %v", ErrInvalidAnimation, *p)
	}
	return nil
}

// ParseColor parses #rrggbb or #rrggbbaa.
func ParseColor(value string) (color.NRGBA, error) {
	digits, ok := strings.CutPrefix(strings.TrimSpace(value), "#")
	if !ok || (len(digits) != 6 && len(digits) != 8) {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	parsed := color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}
	if len(raw) == 4 {
		parsed.A = raw[3]
	}
	return parsed, nil
}
