package ports

import "os/exec"

// EditorOpener builds the command that opens a file in the user's editor
type EditorOpener interface {
	// Command returns an exec.Cmd for opening a file in the editor. The
	// caller starts it and waits for it to exit.
	Command(path string) (*exec.Cmd, error)
}

// Previewer renders note text for read-only display
type Previewer interface {
	Render(label, text string) (string, error)
}

// Clipboard copies text to the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}
