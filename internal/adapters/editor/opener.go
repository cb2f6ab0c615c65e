package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Opener implements ports.EditorOpener
type Opener struct {
	editor string
}

// NewOpener creates an opener for editor, a command line such as
// "code --wait". Empty means $VISUAL, $EDITOR, then common editors.
func NewOpener(editor string) *Opener {
	return &Opener{editor: editor}
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := strings.Fields(o.findEditor())
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR or the editor config key")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor command line to use
func (o *Opener) findEditor() string {
	if o.editor != "" {
		return o.editor
	}

	// $VISUAL is meant for full-screen editors, so it wins over $EDITOR
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
