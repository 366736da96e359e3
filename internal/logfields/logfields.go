package logfields

import (
	"fmt"
	"log/slog"
)

// Canonical log field names shared by every package.
const (
	KeyMode   = "mode"
	KeySkin   = "skin"
	KeySkinID = "skin_id"
	KeyPath   = "path"
	KeyButton = "button"
	KeyError  = "error"
)

func Mode(mode string) slog.Attr     { return slog.String(KeyMode, mode) }
func Skin(name string) slog.Attr     { return slog.String(KeySkin, name) }
func Path(path string) slog.Attr     { return slog.String(KeyPath, path) }
func Button(button string) slog.Attr { return slog.String(KeyButton, button) }

// SkinID renders ids in hex so they match `skinwatch check` output.
func SkinID(id uint64) slog.Attr { return slog.String(KeySkinID, fmt.Sprintf("%016x", id)) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
