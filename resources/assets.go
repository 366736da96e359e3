package resources

import (
	_ "embed"
	"sync"

	"fyne.io/fyne/v2"
)

//go:embed default.yaml
var defaultSettings []byte

//go:embed icon.svg
var iconData []byte

var (
	iconOnce     sync.Once
	iconResource fyne.Resource
)

// DefaultSettings returns a copy of the starter settings file.
func DefaultSettings() []byte {
	return append([]byte(nil), defaultSettings...)
}

// Icon returns the application and tray icon.
func Icon() fyne.Resource {
	iconOnce.Do(func() {
		iconResource = fyne.NewStaticResource("skinwatch.svg", iconData)
	})
	return iconResource
}
