// Package editor launches the user's preferred text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// command resolves the editor from $EDITOR, then $VISUAL, falling back to
// vi. The value may carry arguments ("code --wait").
func command() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return strings.Fields(v)
		}
	}
	return []string{"vi"}
}

// Open runs the editor on path, attached to the current terminal, and waits
// for it to exit.
func Open(path string) error {
	argv := append(command(), path)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", argv[0], err)
	}
	return nil
}
