package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"folio/internal/ports"
)

// ErrNoEditor is returned when no editor command can be found
var ErrNoEditor = errors.New("no editor found: set $EDITOR or editor in the config file")

// fallbacks are tried in order when neither the config nor the
// environment names an editor
var fallbacks = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	command  string
	lookPath func(string) (string, error)
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates an opener. command overrides $VISUAL and $EDITOR
// when non-empty and may carry arguments, e.g. "code --wait".
func NewOpener(command string) *Opener {
	return &Opener{command: command, lookPath: exec.LookPath}
}

// OpenFile opens path and waits for the editor to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}
	return nil
}

// Command returns the editor invocation for path, wired to the
// terminal, for use with tea.ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	if path == "" {
		return nil, fmt.Errorf("nothing to edit: the node has no backing file")
	}

	argv := o.resolve()
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// resolve returns the editor argv: config, then $VISUAL, then $EDITOR,
// then the first fallback on $PATH
func (o *Opener) resolve() []string {
	for _, candidate := range []string{o.command, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if argv := strings.Fields(candidate); len(argv) > 0 {
			return argv
		}
	}

	for _, name := range fallbacks {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}
		}
	}
	return nil
}
