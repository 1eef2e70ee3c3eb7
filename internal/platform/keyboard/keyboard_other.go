//go:build !darwin || !cgo

package keyboard

import "os"

// CurrentLayoutRaw has no input source API to ask off macOS; the layout can
// be supplied through TATEMEMO_KEYBOARD_LAYOUT instead.
func CurrentLayoutRaw() string {
	return os.Getenv("TATEMEMO_KEYBOARD_LAYOUT")
}
