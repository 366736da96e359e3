//go:build !windows

package overlay

// applyNativeOpacity is a no-op here. The skin background alpha is still
// drawn by the background rectangle, so a translucent skin shows through
// to whatever the driver composites behind the canvas.
func (face *Window) applyNativeOpacity(alpha uint8) {}
