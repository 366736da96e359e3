//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

const (
	gwlExStyle  int32 = -20
	wsExLayered       = 0x00080000
	lwaAlpha          = 0x2
)

var (
	user32DLL                      = syscall.NewLazyDLL("user32.dll")
	procGetWindowLongPtrW          = user32DLL.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32DLL.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttributes = user32DLL.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity sets the alpha of the whole native window, controls
// included, to the skin background alpha. Windows only blends a window
// that has WS_EX_LAYERED, so the style is added the first time a
// translucent skin is applied. An opaque skin leaves a never-layered
// window alone and sets a layered one back to 0xff, so switching from a
// translucent skin to an opaque one restores full opacity.
func (face *Window) applyNativeOpacity(alpha uint8) {
	nativeWindow, ok := face.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		hwnd := windowHandle(context)
		if hwnd == 0 {
			return
		}

		style, _, _ := procGetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle))
		if alpha == 0xff && style&wsExLayered == 0 {
			return
		}
		if style&wsExLayered == 0 {
			procSetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle), style|wsExLayered)
		}
		procSetLayeredWindowAttributes.Call(hwnd, 0, uintptr(alpha), uintptr(lwaAlpha))
	})
}

// windowHandle extracts the HWND from the context RunNative passes in.
// It returns 0 for any other driver context.
func windowHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		return value.HWND
	}
	return 0
}

// int32ToUintptr passes a negative index such as GWL_EXSTYLE as its
// 32-bit pattern.
func int32ToUintptr(value int32) uintptr {
	return uintptr(uint32(value))
}
