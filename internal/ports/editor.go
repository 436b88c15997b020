package ports

import "os/exec"

// EditorOpener opens notebook files in an external editor
type EditorOpener interface {
	// OpenFile opens path in the user's preferred editor and waits for it
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening path, for use with
	// bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
