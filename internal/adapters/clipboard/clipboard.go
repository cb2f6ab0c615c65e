package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
var ErrUnsupported = errors.New("clipboard not available: install xclip, xsel or wl-clipboard")

// System implements ports.Clipboard on the system clipboard
type System struct{}

// New returns the system clipboard
func New() System {
	return System{}
}

// Available reports whether the platform has a clipboard we can write to
func (System) Available() bool {
	return !clipboard.Unsupported
}

// WriteAll copies text to the clipboard
func (s System) WriteAll(text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
