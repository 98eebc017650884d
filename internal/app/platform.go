package app

import (
	"github.com/atotto/clipboard"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// clipboardAvailable reports whether a system clipboard backend was found
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
func clipboardAvailable() bool {
	return !clipboard.Unsupported
}
