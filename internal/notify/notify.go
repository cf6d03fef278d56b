package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// command builds the platform notifier invocation. Nil means the platform
// has no supported notifier.
func command(title, message string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q sound name "Glass"`, message, title)
		return exec.Command("osascript", "-e", script)
	case "linux":
		return exec.Command("notify-send", "--app-name=meetsched", title, message)
	}
	return nil
}

// Available reports whether a desktop notifier can be found on PATH
func Available() bool {
	cmd := command("", "")
	if cmd == nil {
		return false
	}
	_, err := exec.LookPath(cmd.Path)
	return err == nil
}

// Send raises a desktop notification. Unsupported platforms and missing
// notifiers are ignored.
func Send(title, message string) error {
	cmd := command(title, message)
	if cmd == nil || cmd.Err != nil {
		return nil
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
