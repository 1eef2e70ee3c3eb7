//go:build darwin && cgo

package keyboard

/*
#cgo LDFLAGS: -framework Carbon -framework CoreFoundation
#include <Carbon/Carbon.h>
#include <CoreFoundation/CoreFoundation.h>

static int tatememo_copy_property(TISInputSourceRef source, CFStringRef key, char *buf, int size) {
    CFStringRef prop = TISGetInputSourceProperty(source, key);
    if (!prop) return 0;
    return CFStringGetCString(prop, buf, size, kCFStringEncodingUTF8) ? 1 : 0;
}

// Writes the input mode of the active source (Kotoeri reports hiragana,
// katakana and so on here) or its source ID into buf. Returns 0 when
// neither is available.
static int tatememo_current_input_source(char *buf, int size) {
    CFRunLoopRunInMode(kCFRunLoopDefaultMode, 0, false);

    TISInputSourceRef source = TISCopyCurrentKeyboardInputSource();
    if (!source) return 0;
    int ok = tatememo_copy_property(source, kTISPropertyInputModeID, buf, size) ||
        tatememo_copy_property(source, kTISPropertyInputSourceID, buf, size) ||
        tatememo_copy_property(source, kTISPropertyLocalizedName, buf, size);
    CFRelease(source);
    return ok;
}
*/
import "C"

import "strings"

const inputSourceBufSize = 256

// CurrentLayoutRaw returns the input mode or source ID of the active macOS
// input source, e.g. "com.apple.inputmethod.Japanese.Katakana".
func CurrentLayoutRaw() string {
	var buf [inputSourceBufSize]C.char
	if C.tatememo_current_input_source(&buf[0], C.int(len(buf))) == 0 {
		return ""
	}
	return strings.TrimSpace(C.GoString(&buf[0]))
}
